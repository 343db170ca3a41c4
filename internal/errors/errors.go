package errors

import "errors"

var (
	// ErrEmailTaken is returned when registering or updating to an email
	// that already belongs to another user.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrEmailNotFound is returned on login when no user matches the email.
	ErrEmailNotFound = errors.New("invalid email")
	// ErrWrongPassword is returned on login when the password does not match.
	ErrWrongPassword = errors.New("invalid password")
	// ErrUserNotFound is returned when a target user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole is returned when a role value is outside the closed set.
	ErrInvalidRole = errors.New("invalid role")
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
