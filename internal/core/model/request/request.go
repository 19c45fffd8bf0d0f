package request

import "time"

type UserRequest struct {
	Username string `json:"username,omitempty" validate:"max=255"`
	FullName string `json:"fullName,omitempty" validate:"max=255"`
	Email    string `json:"email,omitempty" validate:"max=255"`
	Password string `json:"password,omitempty" validate:"max=255"`
}

type TodoRequest struct {
	Title       string    `json:"title,omitempty" validate:"max=255"`
	Description string    `json:"description,omitempty" validate:"max=1000"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}
