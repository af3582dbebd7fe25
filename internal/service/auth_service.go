package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-labs/ticketera/internal/auth"
	"github.com/helpdesk-labs/ticketera/internal/config"
	"github.com/helpdesk-labs/ticketera/internal/domain"
	"github.com/helpdesk-labs/ticketera/internal/repository"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords; callers must not reveal which field failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUsernameTaken is returned when bootstrapping an account whose username
// already exists.
var ErrUsernameTaken = errors.New("username already exists")

// AuthService coordinates login and account bootstrap.
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{users: users, bcryptCost: cfg.BcryptCost}
}

// Login authenticates a user by username and password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// CreateAdmin creates an account with the admin flag set. Used only by the
// createadmin command; refuses usernames that already exist.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
