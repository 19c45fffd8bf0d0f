package domain

import "time"

// Todo belongs to exactly one user. CreatedAt and UpdatedAt are supplied
// by the caller and persisted verbatim; the service never stamps them.
type Todo struct {
	ID          int64
	Title       string `validate:"max=255"`
	Description string `validate:"max=1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
}

func (t *Todo) BelongsToUser(userID int64) bool {
	return t.UserID == userID
}
