package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rahhal10/Final-Backend/internal/adapter/inference"
	"github.com/rahhal10/Final-Backend/internal/config"
	"github.com/rahhal10/Final-Backend/internal/domain"
	"github.com/rahhal10/Final-Backend/internal/repository"
	"github.com/rahhal10/Final-Backend/tests/helpers"
)

func newStoreService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	db := helpers.NewTestSQLiteStore(t)
	svc := New(db, inference.NewMockClient(), config.Default(), nil)
	return svc, db
}

func TestSignupAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, db := newStoreService(t)

	user, err := svc.Signup(ctx, domain.SignupRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "s3cret",
		Role:     "student",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	stored, err := db.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)

	got, err := svc.Login(ctx, domain.LoginRequest{Email: "a@x.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "student", got.Role)
	assert.Equal(t, "alice", got.Username)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "b@x.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupAndLoginLongPassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t)

	password := strings.Repeat("p", 80)
	_, err := svc.Signup(ctx, domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: password, Role: "student"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@x.com", Password: password})
	require.NoError(t, err)

	// Passwords sharing the first 72 bytes must still differ.
	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@x.com", Password: strings.Repeat("p", 72) + "qqqqqqqq"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRehashesPlaintextPassword(t *testing.T) {
	ctx := context.Background()
	svc, db := newStoreService(t)

	require.NoError(t, db.CreateUser(ctx, &domain.User{Username: "legacy", Email: "l@x.com", PasswordHash: "plain", Role: "student"}))

	_, err := svc.Login(ctx, domain.LoginRequest{Email: "l@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	got, err := svc.Login(ctx, domain.LoginRequest{Email: "l@x.com", Password: "plain"})
	require.NoError(t, err)
	assert.Equal(t, "legacy", got.Username)

	stored, err := db.GetUserByEmail(ctx, "l@x.com")
	require.NoError(t, err)
	_, err = bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "l@x.com", Password: "plain"})
	require.NoError(t, err)

	// The stored hash is no longer accepted as a plaintext password.
	_, err = svc.Login(ctx, domain.LoginRequest{Email: "l@x.com", Password: stored.PasswordHash})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignupConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t)

	_, err := svc.Signup(ctx, domain.SignupRequest{Username: "alice", Email: "a@x.com", Password: "p", Role: "student"})
	require.NoError(t, err)

	_, err = svc.Signup(ctx, domain.SignupRequest{Username: "other", Email: "a@x.com", Password: "p", Role: "student"})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = svc.Signup(ctx, domain.SignupRequest{Username: "alice", Email: "c@x.com", Password: "p", Role: "student"})
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestAccountValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t)

	var vErr *ValidationError
	_, err := svc.Signup(ctx, domain.SignupRequest{Username: "alice"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "All fields are required.", vErr.Message)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "a@x.com"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email and password are required.", vErr.Message)
}

func courseInput(username, email, title string) domain.CourseInput {
	description := "An introduction"
	price := 19.99
	lessons := 12
	rating := 4.5
	return domain.CourseInput{
		Username:     username,
		Email:        email,
		Title:        title,
		Description:  &description,
		Instructor:   "Ada",
		Price:        &price,
		Category:     "Programming",
		Duration:     "6h",
		LessonsCount: &lessons,
		Rating:       &rating,
		ImageURL:     "https://img/x.png",
	}
}

func TestCartLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t)

	qty := 1
	item, err := svc.AddToCart(ctx, domain.AddCartRequest{CourseInput: courseInput("alice", "a@x.com", "Go"), Quantity: &qty})
	require.NoError(t, err)
	require.NotZero(t, item.ID)

	items, err := svc.ShowCart(ctx, domain.ShowCartRequest{Email: "a@x.com"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Go", items[0].Title)

	newQty := 3
	updated, err := svc.UpdateCartQuantity(ctx, domain.UpdateCartQuantityRequest{ID: item.ID, Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)

	deleted, err := svc.DeleteCartItem(ctx, domain.DeleteCartRequest{ID: item.ID})
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted.ID)

	_, err = svc.DeleteCartItem(ctx, domain.DeleteCartRequest{ID: item.ID})
	assert.ErrorIs(t, err, store.ErrNotFound)

	var vErr *ValidationError
	_, err = svc.AddToCart(ctx, domain.AddCartRequest{CourseInput: courseInput("alice", "a@x.com", "Go")})
	assert.ErrorAs(t, err, &vErr)
	_, err = svc.ShowCart(ctx, domain.ShowCartRequest{})
	assert.ErrorAs(t, err, &vErr)
	_, err = svc.UpdateCartQuantity(ctx, domain.UpdateCartQuantityRequest{ID: item.ID})
	assert.ErrorAs(t, err, &vErr)
}

func TestEnrollAndUserCourses(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t)

	enrolled, err := svc.Enroll(ctx, domain.EnrollRequest{CourseInput: courseInput("alice", "a@x.com", "Go")})
	require.NoError(t, err)
	assert.NotZero(t, enrolled.ID)

	_, err = svc.Enroll(ctx, domain.EnrollRequest{CourseInput: courseInput("bob", "a@x.com", "Rust")})
	require.NoError(t, err)

	courses, err := svc.UserCourses(ctx, domain.UserCoursesRequest{Email: "a@x.com", Username: "alice"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go", courses[0].Title)

	var vErr *ValidationError
	_, err = svc.UserCourses(ctx, domain.UserCoursesRequest{Email: "a@x.com"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Email and username are required.", vErr.Message)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStoreService(t)

	courses, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, courses)

	tasks, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, tasks)

}
