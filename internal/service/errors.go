package service

import "errors"

// ErrInvalidCredentials is returned by Login when the email is unknown or
// the password does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports a request that is missing required fields.
// Message is shown to callers as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) error {
	return &ValidationError{Message: message}
}
