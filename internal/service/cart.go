package service

import (
	"context"
	"fmt"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

func (s *Service) AddToCart(ctx context.Context, req domain.AddCartRequest) (*domain.CartItem, error) {
	if !req.Complete() || req.Quantity == nil {
		return nil, invalid("All fields are required.")
	}

	item := &domain.CartItem{
		Username:     req.Username,
		Email:        req.Email,
		CourseFields: req.Fields(),
		Quantity:     *req.Quantity,
	}
	if err := s.store.CreateCartItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return item, nil
}

// ShowCart returns the cart of one user, oldest row first.
func (s *Service) ShowCart(ctx context.Context, req domain.ShowCartRequest) ([]domain.CartItem, error) {
	if req.Email == "" {
		return nil, invalid("Email is required.")
	}

	items, err := s.store.ListCartItems(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

func (s *Service) UpdateCartQuantity(ctx context.Context, req domain.UpdateCartQuantityRequest) (*domain.CartItem, error) {
	if req.ID == 0 || req.Quantity == nil {
		return nil, invalid("ID and quantity are required.")
	}

	item, err := s.store.UpdateCartItemQuantity(ctx, req.ID, *req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item %d: %w", req.ID, err)
	}
	return item, nil
}

func (s *Service) DeleteCartItem(ctx context.Context, req domain.DeleteCartRequest) (*domain.CartItem, error) {
	if req.ID == 0 {
		return nil, invalid("ID is required.")
	}

	item, err := s.store.DeleteCartItem(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete cart item %d: %w", req.ID, err)
	}
	return item, nil
}
