package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/ledgerline/taskboard-api/internal/domain"
)

// TaskStore defines the persistence contract for tasks. Every call is
// transactional on its own: implementations must never leave a
// partially-written task visible.
type TaskStore interface {
	// Save persists a new task. It validates the entity first and returns
	// the validation error unchanged if the data is invalid.
	Save(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update saves changes to an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// FindByOwner retrieves all tasks owned by the given user, ordered by
	// creation time ascending. Returns an empty slice when none match.
	FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// CountActiveByOwner counts the owner's tasks in a non-terminal state.
	// Used to enforce the per-user open task limit.
	CountActiveByOwner(ctx context.Context, ownerID int64) (int, error)

	// WithTx returns a TaskStore bound to the given transaction so multiple
	// operations can run atomically. The caller owns the transaction.
	WithTx(tx *sql.Tx) TaskStore
}
