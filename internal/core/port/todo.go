package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type TodoRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Todo, error)
	GetByUser(ctx context.Context, userID int64) ([]domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type TodoService interface {
	Create(ctx context.Context, userID int64, todo domain.Todo) (domain.Todo, error)
	GetByID(ctx context.Context, id int64) (domain.Todo, error)
	GetByUser(ctx context.Context, userID int64) ([]domain.Todo, error)
	Update(ctx context.Context, id int64, todo domain.Todo) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}
