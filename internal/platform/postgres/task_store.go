package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/platform/logger"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend.
type TaskStore struct {
	db  store.DBTX
	log *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of store.TaskStore.
// The database handle must be initialized and managed by the caller. A nil
// logger falls back to the process default.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TaskStore{
		db:  db,
		log: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx returns a TaskStore bound to the given transaction.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, log: s.log}
}

// Save implements store.TaskStore.Save. It validates the task and inserts a
// single row; a failed insert leaves nothing behind.
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.log)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during save",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (id, title, description, owner_id, status, priority, created_at, updated_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.OwnerID,
		task.Status,
		task.Priority,
		task.CreatedAt,
		task.UpdatedAt,
		task.CompletedAt,
	)
	if err != nil {
		log.Error("failed to save task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.Int64("owner_id", task.OwnerID))
		return mapError("save", err)
	}

	log.Info("task saved",
		slog.String("task_id", task.ID.String()),
		slog.Int64("owner_id", task.OwnerID),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	query := `
		SELECT id, title, description, owner_id, status, priority, created_at, updated_at, completed_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, mapError("get_by_id", err)
	}
	return task, nil
}

// Update implements store.TaskStore.Update.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.log)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, updated_at = $5, completed_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.UpdatedAt,
		task.CompletedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return mapError("update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return mapError("update", err)
	}
	if rowsAffected == 0 {
		log.Debug("task not found for update", slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// FindByOwner implements store.TaskStore.FindByOwner. Results are ordered by
// creation time ascending so listings are stable across calls.
func (s *TaskStore) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	query := `
		SELECT id, title, description, owner_id, status, priority, created_at, updated_at, completed_at
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to query tasks by owner",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return nil, mapError("find_by_owner", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []*domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, mapError("find_by_owner", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, mapError("find_by_owner", err)
	}

	log.Debug("found tasks by owner",
		slog.Int64("owner_id", ownerID),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// CountActiveByOwner implements store.TaskStore.CountActiveByOwner.
func (s *TaskStore) CountActiveByOwner(ctx context.Context, ownerID int64) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.log)

	query := `
		SELECT COUNT(*)
		FROM tasks
		WHERE owner_id = $1 AND status NOT IN ($2, $3)
	`

	var count int
	err := s.db.QueryRowContext(ctx, query, ownerID, domain.TaskStatusCompleted, domain.TaskStatusCancelled).
		Scan(&count)
	if err != nil {
		log.Error("failed to count active tasks",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", ownerID))
		return 0, mapError("count_active_by_owner", err)
	}
	return count, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		status      string
		priority    string
		completedAt sql.NullTime
	)
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.OwnerID,
		&status,
		&priority,
		&task.CreatedAt,
		&task.UpdatedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}
	task.Status = domain.TaskStatus(status)
	task.Priority = domain.TaskPriority(priority)
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		task.CompletedAt = &t
	}
	return &task, nil
}
