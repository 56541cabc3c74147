package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// UserService exposes the read-only directory operations plus the
// development-only status simulation.
type UserService interface {
	// ListUsers returns all directory entries ordered by user ID.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// SetUserStatus activates or deactivates a directory entry.
	SetUserStatus(ctx context.Context, userID int64, status domain.UserStatus) (*domain.User, error)
}

type userServiceImpl struct {
	users store.UserDirectory
	log   *slog.Logger
}

// NewUserService creates a UserService. Returns an error if the directory is
// nil.
func NewUserService(users store.UserDirectory, log *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, errors.New("user service: users cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &userServiceImpl{
		users: users,
		log:   log.With(slog.String("component", "user_service")),
	}, nil
}

// ListUsers implements UserService.ListUsers.
func (s *userServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.ListAll(ctx)
}

// SetUserStatus implements UserService.SetUserStatus.
func (s *userServiceImpl) SetUserStatus(
	ctx context.Context,
	userID int64,
	status domain.UserStatus,
) (*domain.User, error) {
	if err := s.users.SetStatus(ctx, userID, status); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NewUserNotFoundError(userID)
		}
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}
