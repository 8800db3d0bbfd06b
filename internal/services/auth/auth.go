// Package services реализует регистрацию и аутентификацию пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sandropimentel/streamtrack/internal/lib/jwt"
	"github.com/sandropimentel/streamtrack/internal/lib/password"
	"github.com/sandropimentel/streamtrack/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService реализует регистрацию и выдачу JWT токенов.
type AuthService struct {
	repo  UserRepository
	maker jwt.Maker
	log   *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo UserRepository, maker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		repo:  repo,
		maker: maker,
		log:   log,
	}
}

// Register создаёт нового пользователя с захешированным паролем.
func (s *AuthService) Register(ctx context.Context, username, email, rawPassword string) error {
	const op = "services.auth.Register"

	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		UID:          uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.repo.RegisterUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("registered new user", slog.String("username", username))
	return nil
}

// Login проверяет пару логин/пароль и возвращает JWT токен.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.maker.GenerateToken(user.Username, user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
