package domain

import "errors"

// Sentinel errors returned by repositories and services. Handlers map
// them to HTTP status codes with errors.Is.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrTodoNotFound = errors.New("todo not found")
)
