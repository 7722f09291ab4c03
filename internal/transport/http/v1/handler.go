// Package v1 provides the HTTP handlers of the LearnHub API.
package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rahhal10/Final-Backend/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers the API at the root and, when prefix is set,
// again under prefix.
func (h *Handler) RegisterRoutes(e *echo.Echo, prefix string) {
	h.register(e.Group(""))

	prefix = "/" + strings.Trim(prefix, "/")
	if prefix != "/" {
		h.register(e.Group(prefix))
	}

	e.GET("/health", h.Health)
}

func (h *Handler) register(g *echo.Group) {
	// Assistant
	g.POST("/ai-chat", h.Chat)

	// Catalog
	g.GET("/courses", h.ListCourses)
	g.GET("/assignments", h.ListTasks)

	// Enrollments
	g.POST("/user-courses", h.UserCourses)
	g.POST("/addcoursestouser", h.Enroll)

	// Cart
	g.POST("/addCart", h.AddToCart)
	g.POST("/showcart", h.ShowCart)
	g.PUT("/updatecartquantity", h.UpdateCartQuantity)
	g.DELETE("/delcart", h.DeleteCartItem)

	// Accounts
	g.POST("/signup", h.Signup)
	g.POST("/Login", h.Login)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	if err := h.service.Health(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
