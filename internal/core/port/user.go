package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user domain.User) (domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	// Delete removes the user and all todos owned by it.
	Delete(ctx context.Context, id int64) error
}

type UserService interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}
