package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/repository"
	"github.com/rahhal10/Final-Backend/internal/service"
)

const msgStoreServerError = "Server error."

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "Invalid request body"})
}

// writeStoreError maps errors from the passthrough operations. withDetails
// attaches the error text to 500 responses.
func writeStoreError(c echo.Context, err error, withDetails bool) error {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: vErr.Message})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "Item not found."})
	case errors.Is(err, store.ErrConflict):
		return c.JSON(http.StatusConflict, domain.ErrorResponse{Error: "Account already exists."})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, domain.ErrorResponse{Error: "Invalid email or password."})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("store operation failed")
	body := domain.ErrorResponse{Error: msgStoreServerError}
	if withDetails {
		body.Details = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, body)
}
