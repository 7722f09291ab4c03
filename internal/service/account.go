package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/repository"
)

// Signup creates an account. It returns store.ErrConflict when the email or
// the username is already taken.
func (s *Service) Signup(ctx context.Context, req domain.SignupRequest) (*domain.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		return nil, invalid("All fields are required.")
	}

	exists, err := s.store.UserExists(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check account: %w", err)
	}
	if exists {
		return nil, store.ErrConflict
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the account on success.
// Accounts still holding a plaintext password are rehashed on their first
// successful login.
func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, invalid("Email and password are required.")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if _, err := bcrypt.Cost([]byte(user.PasswordHash)); err != nil {
		if subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(req.Password)) != 1 {
			return nil, ErrInvalidCredentials
		}
		s.upgradePassword(ctx, user, req.Password)
		return user, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordDigest(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) upgradePassword(ctx context.Context, user *domain.User, password string) {
	hash, err := hashPassword(password)
	if err == nil {
		err = s.store.UpdateUserPassword(ctx, user.ID, hash)
	}
	if err != nil {
		log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to rehash legacy password")
		return
	}
	user.PasswordHash = hash
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// passwordDigest maps a password of any length to 44 bytes so it stays
// within bcrypt's 72-byte input limit.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
