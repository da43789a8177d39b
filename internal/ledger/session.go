package ledger

import (
	"context"
	"fmt"

	"gitlab.com/yelinaung/ledger-manager/internal/auth"
	"gitlab.com/yelinaung/ledger-manager/internal/logger"
	"gitlab.com/yelinaung/ledger-manager/internal/models"
)

// Register creates a user with a hashed password and returns it.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
	}

	taken, err := s.users.UsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username %q", ErrDuplicateName, username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.Info().Str("user", logger.HashUsername(username)).Msg("User registered")
	return user, nil
}

// UserByUsername resolves a username to its user.
func (s *Service) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, username)
	}
	return user, nil
}

// Authenticate verifies a username/password pair and returns the user.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}
	return user, nil
}
