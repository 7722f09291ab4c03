package domain

import "encoding/json"

// ChatRequest is the body accepted by the assistant endpoint.
type ChatRequest struct {
	Message    string          `json:"message"`
	Email      string          `json:"email,omitempty"`
	Username   string          `json:"username,omitempty"`
	Context    json.RawMessage `json:"context,omitempty"`
	PromptType string          `json:"prompt_type,omitempty"`
}

// ChatResponse is the success body of the assistant endpoint.
type ChatResponse struct {
	Reply   string            `json:"reply"`
	Actions []json.RawMessage `json:"actions"`
}

// ErrorResponse is the failure body shared by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CourseInput carries the course columns supplied when enrolling or adding
// to the cart. Numeric fields are pointers so that an explicit zero is told
// apart from an absent field.
type CourseInput struct {
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	Instructor   string   `json:"instructor"`
	Price        *float64 `json:"price"`
	Category     string   `json:"category"`
	Duration     string   `json:"duration"`
	LessonsCount *int     `json:"lessons_count"`
	Rating       *float64 `json:"rating"`
	ImageURL     string   `json:"image_url"`
}

// Complete reports whether every course column is present. Text fields
// must be non-empty; numeric fields only need to be present.
func (in CourseInput) Complete() bool {
	return in.Username != "" && in.Email != "" && in.Title != "" &&
		in.Description != nil && in.Instructor != "" && in.Price != nil &&
		in.Category != "" && in.Duration != "" && in.LessonsCount != nil &&
		in.Rating != nil && in.ImageURL != ""
}

// Fields converts a complete input into stored course columns.
func (in CourseInput) Fields() CourseFields {
	f := CourseFields{
		Title:      in.Title,
		Instructor: in.Instructor,
		Category:   in.Category,
		Duration:   in.Duration,
		ImageURL:   in.ImageURL,
	}
	if in.Description != nil {
		f.Description = *in.Description
	}
	if in.Price != nil {
		f.Price = *in.Price
	}
	if in.LessonsCount != nil {
		f.LessonsCount = *in.LessonsCount
	}
	if in.Rating != nil {
		f.Rating = *in.Rating
	}
	return f
}

// EnrollRequest enrolls a user in a course.
type EnrollRequest struct {
	CourseInput
}

// AddCartRequest places a course in a user's cart.
type AddCartRequest struct {
	CourseInput
	Quantity *int `json:"quantity"`
}

// UserCoursesRequest selects the enrollments of one user.
type UserCoursesRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ShowCartRequest selects the cart of one user.
type ShowCartRequest struct {
	Email string `json:"email"`
}

// UpdateCartQuantityRequest sets the quantity of a cart row.
type UpdateCartQuantityRequest struct {
	ID       int64 `json:"id"`
	Quantity *int  `json:"quantity"`
}

// DeleteCartRequest removes a cart row.
type DeleteCartRequest struct {
	ID int64 `json:"id"`
}

// SignupRequest creates an account.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest checks an account's credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Role     string `json:"role"`
	Username string `json:"username"`
}
