package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// Signup creates an account.
func (h *Handler) Signup(c echo.Context) error {
	var req domain.SignupRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	user, err := h.service.Signup(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusCreated, map[string]any{"user": user})
}

// Login checks a user's credentials.
func (h *Handler) Login(c echo.Context) error {
	var req domain.LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	user, err := h.service.Login(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, domain.LoginResponse{Role: user.Role, Username: user.Username})
}
