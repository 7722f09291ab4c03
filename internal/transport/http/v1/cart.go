package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

// AddToCart places a course in a user's cart.
func (h *Handler) AddToCart(c echo.Context) error {
	var req domain.AddCartRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	product, err := h.service.AddToCart(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, true)
	}
	return c.JSON(http.StatusCreated, map[string]any{"product": product})
}

// ShowCart returns the cart of a user.
func (h *Handler) ShowCart(c echo.Context) error {
	var req domain.ShowCartRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	items, err := h.service.ShowCart(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateCartQuantity sets the quantity of a cart row.
func (h *Handler) UpdateCartQuantity(c echo.Context) error {
	var req domain.UpdateCartQuantityRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	updated, err := h.service.UpdateCartQuantity(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, map[string]any{"updated": updated})
}

// DeleteCartItem removes a cart row.
func (h *Handler) DeleteCartItem(c echo.Context) error {
	var req domain.DeleteCartRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}

	deleted, err := h.service.DeleteCartItem(c.Request().Context(), req)
	if err != nil {
		return writeStoreError(c, err, false)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": deleted})
}
