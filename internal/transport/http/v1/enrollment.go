package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// UserCourses returns the courses a user is enrolled in.
func (h *Handler) UserCourses(c echo.Context) error {
	var req domain.UserCoursesRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	courses, err := h.service.UserCourses(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, courses)
}

// Enroll records a course enrollment.
func (h *Handler) Enroll(c echo.Context) error {
	var req domain.EnrollRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	enrolled, err := h.service.Enroll(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusCreated, map[string]any{"enrolled": enrolled})
}
