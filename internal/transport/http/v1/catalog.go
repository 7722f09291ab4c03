package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListCourses returns the course catalog.
func (h *Handler) ListCourses(c echo.Context) error {
	courses, err := h.service.ListCourses(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, courses)
}

// ListTasks returns the task list.
func (h *Handler) ListTasks(c echo.Context) error {
	tasks, err := h.service.ListTasks(c.Request().Context())
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, tasks)
}
