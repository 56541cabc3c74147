package store

import (
	"context"

	"github.com/ledgerline/taskboard-api/internal/domain"
)

// UserDirectory is the narrow contract against the externally managed user
// directory. Task creation only needs the existence/activity check; the
// listing and status calls back the read-only user endpoints.
type UserDirectory interface {
	// ExistsAndActive reports whether the user exists and is active.
	ExistsAndActive(ctx context.Context, userID int64) (bool, error)

	// GetByID retrieves a directory entry.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, userID int64) (*domain.User, error)

	// ListAll returns every directory entry ordered by user ID.
	ListAll(ctx context.Context) ([]*domain.User, error)

	// SetStatus changes a user's activation status.
	// Returns ErrUserNotFound if the user does not exist.
	SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error
}
