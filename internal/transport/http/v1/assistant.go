package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahhal10/Final-Backend/internal/adapter/inference"
	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/service"
)

// Chat handles the assistant endpoint.
func (h *Handler) Chat(c echo.Context) error {
	var req domain.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, domain.ErrorResponse{Error: "Invalid request body"})
	}

	ctx := c.Request().Context()
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		ctx = inference.WithRequestID(ctx, id)
	}

	resp, err := h.service.Chat(ctx, req)
	if err != nil {
		return h.writeGatewayError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// writeGatewayError maps a pipeline failure to its status and body.
func (h *Handler) writeGatewayError(c echo.Context, err error) error {
	var gwErr *domain.GatewayError
	if !errors.As(err, &gwErr) {
		gwErr = domain.NewGatewayError(domain.ErrorKindInternal, service.MsgServerError, err)
	}

	body := domain.ErrorResponse{Error: gwErr.Message}
	if h.service.Config().ExposeErrorDetails && gwErr.Kind != domain.ErrorKindInternal {
		body.Details = gwErr.Detail
	}
	return c.JSON(statusForKind(gwErr.Kind), body)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindInvalidRequest:
		return http.StatusBadRequest
	case domain.ErrorKindPolicyDenied:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
