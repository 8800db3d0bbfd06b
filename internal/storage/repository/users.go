package repository

import (
	"context"
	"fmt"

	"github.com/sandropimentel/streamtrack/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) error {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (uid, username, email, password_hash)
			  VALUES ($1, $2, $3, $4)`
	if _, err := s.DB.ExecContext(ctx, query,
		user.UID, user.Username, user.Email, user.PasswordHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, username, email, password_hash
			  FROM users
			  WHERE username = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, username)
	if err := row.Scan(&u.UID, &u.Username, &u.Email, &u.PasswordHash); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
