package service

import (
	"context"
	"log/slog"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

// UserService owns the user business rules: existence checks, the
// immutable-username update contract and the cascade delete of owned
// todos. There is no locking; two concurrent updates to the same user
// race at the store and the last write wins.
type UserService struct {
	repo port.UserRepository
}

func NewUserService(repo port.UserRepository) *UserService {
	return &UserService{repo}
}

func (us *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	newUser := domain.User{
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Password: user.Password,
	}

	// Duplicate usernames are accepted; lookup by username resolves to
	// the earliest row.
	saved, err := us.repo.Create(ctx, newUser)

	if err != nil {
		slog.Error("Error creating user", "error", err, "username", user.Username)
		return domain.User{}, err
	}

	return saved, nil
}

func (us *UserService) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return us.repo.GetByID(ctx, id)
}

func (us *UserService) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return us.repo.GetByUsername(ctx, username)
}

func (us *UserService) GetAll(ctx context.Context) ([]domain.User, error) {
	return us.repo.GetAll(ctx)
}

// Update overwrites full name, email and password. Username is not part
// of the update contract and keeps its stored value.
func (us *UserService) Update(ctx context.Context, id int64, user domain.User) (domain.User, error) {
	existing, err := us.repo.GetByID(ctx, id)

	if err != nil {
		return domain.User{}, err
	}

	existing.FullName = user.FullName
	existing.Email = user.Email
	existing.Password = user.Password

	saved, err := us.repo.Update(ctx, existing)

	if err != nil {
		slog.Error("Error updating user", "error", err, "id", id)
		return domain.User{}, err
	}

	return saved, nil
}

// Delete removes the user and, transitively, every todo it owns.
// Deleting an absent id returns domain.ErrUserNotFound.
func (us *UserService) Delete(ctx context.Context, id int64) error {
	return us.repo.Delete(ctx, id)
}
