package repository

import (
	"context"
	"errors"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"todoapi/internal/adapter/database/postgres"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

var userColumns = []string{"id", "username", "full_name", "email", "password"}

type UserRepository struct {
	db *postgres.DB
}

func NewUserRepository(db *postgres.DB) port.UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) getOne(ctx context.Context, pred any) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		Where(pred).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var user domain.User

	err = ur.db.QueryRow(ctx, stmt, args...).
		Scan(&user.ID, &user.Username, &user.FullName, &user.Email, &user.Password)

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}

	if err != nil {
		return domain.User{}, err
	}

	return user, nil
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"id": id})
}

func (ur *UserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return ur.getOne(ctx, sq.Eq{"username": username})
}

func (ur *UserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Select(userColumns...).
		From("users").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, err
	}

	rows, err := ur.db.Query(ctx, stmt, args...)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	users := make([]domain.User, 0)

	for rows.Next() {
		var user domain.User

		if err := rows.Scan(&user.ID, &user.Username, &user.FullName, &user.Email, &user.Password); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}

func (ur *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Insert("users").
		Columns("username", "full_name", "email", "password").
		Values(user.Username, user.FullName, user.Email, user.Password).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	var id int64

	if err := ur.db.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		slog.Error("Error creating user", "error", err)
		return domain.User{}, err
	}

	return ur.GetByID(ctx, id)
}

func (ur *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	stmt, args, err := ur.db.QueryBuilder.Update("users").
		Set("full_name", user.FullName).
		Set("email", user.Email).
		Set("password", user.Password).
		Where(sq.Eq{"id": user.ID}).
		ToSql()

	if err != nil {
		return domain.User{}, err
	}

	tag, err := ur.db.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error updating user", "error", err, "id", user.ID)
		return domain.User{}, err
	}

	if tag.RowsAffected() == 0 {
		return domain.User{}, domain.ErrUserNotFound
	}

	return ur.GetByID(ctx, user.ID)
}

// Delete removes the user and its todos in one transaction; the FK also
// carries ON DELETE CASCADE.
func (ur *UserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := ur.db.Begin(ctx)

	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	stmt, args, err := ur.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"user_id": id}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, stmt, args...); err != nil {
		slog.Error("Error deleting user todos", "error", err, "user_id", id)
		return err
	}

	stmt, args, err = ur.db.QueryBuilder.Delete("users").
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, stmt, args...)

	if err != nil {
		slog.Error("Error deleting user", "error", err, "id", id)
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return tx.Commit(ctx)
}
