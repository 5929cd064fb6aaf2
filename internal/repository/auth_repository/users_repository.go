package auth_repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/szto/foxy-reminder/internal/model/auth_model"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type UserRepo struct {
	DB *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) Create(ctx context.Context, u *auth_model.User) error {
	q := r.DB.Rebind(`INSERT INTO users (username, password) VALUES (?, ?) RETURNING id, created_at`)
	err := r.DB.QueryRowContext(ctx, q, u.Username, u.Password).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth_model.User, error) {
	var u auth_model.User
	q := r.DB.Rebind(`SELECT id, username, password, created_at FROM users WHERE username = ?`)
	err := r.DB.GetContext(ctx, &u, q, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// isUniqueViolation matches the unique-constraint message of both supported
// drivers ("UNIQUE constraint failed" on sqlite, "duplicate key" on postgres).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "duplicate key")
}
