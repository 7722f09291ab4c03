// Package store defines the record store interface and its SQL implementations.
package store

import (
	"context"
	"errors"

	"github.com/rahhal10/Final-Backend/internal/domain"
)

var (
	// ErrNotFound is returned when a command targets a row that does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a row with the same identity already exists.
	ErrConflict = errors.New("record already exists")
	// ErrUnknownDataset is returned for a DatasetQuery with an unsupported name.
	ErrUnknownDataset = errors.New("unknown dataset")
)

// DatasetReader runs the read queries that feed the assistant.
// Implementations must be safe for concurrent use.
type DatasetReader interface {
	QueryDataset(ctx context.Context, q domain.DatasetQuery) ([]domain.Record, error)
}

// Store defines the interface for data persistence.
type Store interface {
	DatasetReader

	// Catalog operations
	ListCourses(ctx context.Context) ([]domain.Course, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// Enrollment operations
	ListEnrollments(ctx context.Context, email, username string) ([]domain.Enrollment, error)
	CreateEnrollment(ctx context.Context, enrollment *domain.Enrollment) error

	// Cart operations
	CreateCartItem(ctx context.Context, item *domain.CartItem) error
	ListCartItems(ctx context.Context, email string) ([]domain.CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, id int64, quantity int) (*domain.CartItem, error)
	DeleteCartItem(ctx context.Context, id int64) (*domain.CartItem, error)

	// Account operations
	UserExists(ctx context.Context, email, username string) (bool, error)
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Close() error
}
