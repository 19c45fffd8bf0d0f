package service

import (
	"context"
	"log/slog"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

// TodoService enforces the ownership rules: a todo is created against an
// existing user and never changes owner afterwards. Timestamps come from
// the caller and are persisted verbatim. Concurrent updates to the same
// todo are last-write-wins at the store.
type TodoService struct {
	todos port.TodoRepository
	users port.UserRepository
}

func NewTodoService(todos port.TodoRepository, users port.UserRepository) *TodoService {
	return &TodoService{todos: todos, users: users}
}

// Create resolves the owner first; when the user does not exist it fails
// with domain.ErrUserNotFound and nothing is persisted.
func (ts *TodoService) Create(ctx context.Context, userID int64, todo domain.Todo) (domain.Todo, error) {
	owner, err := ts.users.GetByID(ctx, userID)

	if err != nil {
		return domain.Todo{}, err
	}

	newTodo := domain.Todo{
		Title:       todo.Title,
		Description: todo.Description,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		UserID:      owner.ID,
	}

	saved, err := ts.todos.Create(ctx, newTodo)

	if err != nil {
		slog.Error("Error creating todo", "error", err, "user_id", userID)
		return domain.Todo{}, err
	}

	return saved, nil
}

func (ts *TodoService) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	return ts.todos.GetByID(ctx, id)
}

// GetByUser returns every todo owned by userID. A user without todos
// yields an empty slice, not an error.
func (ts *TodoService) GetByUser(ctx context.Context, userID int64) ([]domain.Todo, error) {
	return ts.todos.GetByUser(ctx, userID)
}

// Update overwrites title, description and both timestamps. The owning
// user is immutable; a todo cannot be reassigned through this operation.
func (ts *TodoService) Update(ctx context.Context, id int64, todo domain.Todo) (domain.Todo, error) {
	existing, err := ts.todos.GetByID(ctx, id)

	if err != nil {
		return domain.Todo{}, err
	}

	existing.Title = todo.Title
	existing.Description = todo.Description
	existing.CreatedAt = todo.CreatedAt
	existing.UpdatedAt = todo.UpdatedAt

	saved, err := ts.todos.Update(ctx, existing)

	if err != nil {
		slog.Error("Error updating todo", "error", err, "id", id)
		return domain.Todo{}, err
	}

	return saved, nil
}

// Delete removes a single todo. The owning user is untouched. Deleting
// an absent id returns domain.ErrTodoNotFound.
func (ts *TodoService) Delete(ctx context.Context, id int64) error {
	return ts.todos.Delete(ctx, id)
}
