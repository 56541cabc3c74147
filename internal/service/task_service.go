package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/events"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// TaskRepository is the persistence contract consumed by the task use cases.
// It extends store.TaskStore with access to the underlying connection so use
// cases can run multi-step operations in one transaction.
type TaskRepository interface {
	store.TaskStore

	// DB returns the underlying database connection used to open
	// transactions.
	DB() *sql.DB
}

// CreateTaskInput carries the fields for CreateTask. An empty priority
// defaults to medium.
type CreateTaskInput struct {
	Title       string
	Description string
	OwnerID     int64
	Priority    domain.TaskPriority
}

// UpdateTaskInput carries the optional content changes for UpdateTask. Nil
// fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
}

// TaskService exposes the task use cases.
type TaskService interface {
	// CreateTask verifies the owner against the user directory, constructs
	// a pending task, persists it, and emits a task.created notification.
	CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error)

	// CompleteTask loads the task, applies the completed transition against
	// the freshly read state, and persists the result. Emits a
	// task.completed notification.
	CompleteTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)

	// StartTask transitions a pending task to in_progress and persists it.
	StartTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)

	// CancelTask transitions an active task to cancelled and persists it.
	// Emits a task.cancelled notification.
	CancelTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error)

	// UpdateTask changes a task's title and/or description and persists it.
	UpdateTask(ctx context.Context, taskID uuid.UUID, in UpdateTaskInput) (*domain.Task, error)

	// ListTasksByUser returns the user's tasks ordered by creation time
	// ascending. The owner must exist in the directory, active or not.
	ListTasksByUser(ctx context.Context, ownerID int64) ([]*domain.Task, error)
}

type taskServiceImpl struct {
	repo         TaskRepository
	users        store.UserDirectory
	emitter      events.Emitter
	log          *slog.Logger
	maxOpenTasks int
}

// NewTaskService creates a TaskService. maxOpenTasks limits the number of
// active tasks per owner; zero disables the limit. Returns an error if a
// required collaborator is nil.
func NewTaskService(
	repo TaskRepository,
	users store.UserDirectory,
	emitter events.Emitter,
	log *slog.Logger,
	maxOpenTasks int,
) (TaskService, error) {
	if repo == nil {
		return nil, errors.New("task service: repo cannot be nil")
	}
	if users == nil {
		return nil, errors.New("task service: users cannot be nil")
	}
	if emitter == nil {
		return nil, errors.New("task service: emitter cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &taskServiceImpl{
		repo:         repo,
		users:        users,
		emitter:      emitter,
		log:          log.With(slog.String("component", "task_service")),
		maxOpenTasks: maxOpenTasks,
	}, nil
}

// CreateTask implements TaskService.CreateTask. The owner check happens
// before entity construction, so nothing is ever persisted for an unknown or
// inactive owner.
func (s *taskServiceImpl) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	active, err := s.users.ExistsAndActive(ctx, in.OwnerID)
	if err != nil {
		s.log.Error("owner lookup failed",
			slog.String("error", err.Error()),
			slog.Int64("owner_id", in.OwnerID))
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if !active {
		return nil, domain.NewUserNotFoundError(in.OwnerID)
	}

	if s.maxOpenTasks > 0 {
		count, err := s.repo.CountActiveByOwner(ctx, in.OwnerID)
		if err != nil {
			return nil, err
		}
		if count >= s.maxOpenTasks {
			return nil, domain.NewMaxTasksExceededError(in.OwnerID, count, s.maxOpenTasks)
		}
	}

	task, err := domain.NewTask(in.Title, in.Description, in.OwnerID, in.Priority)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.repo.WithTx(tx).Save(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Int64("owner_id", task.OwnerID),
		slog.String("priority", string(task.Priority)))

	s.notify(ctx, events.TypeTaskCreated, task)
	return task, nil
}

// CompleteTask implements TaskService.CompleteTask. Load and update share a
// transaction so the transition is always applied to the current row: a
// second completion of the same task deterministically fails with
// TASK_ALREADY_COMPLETED.
func (s *taskServiceImpl) CompleteTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.transition(ctx, taskID, func(t *domain.Task) error { return t.Complete() })
	if err != nil {
		return nil, err
	}
	s.log.Info("task completed", slog.String("task_id", taskID.String()))
	s.notify(ctx, events.TypeTaskCompleted, task)
	return task, nil
}

// StartTask implements TaskService.StartTask.
func (s *taskServiceImpl) StartTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.transition(ctx, taskID, func(t *domain.Task) error { return t.Start() })
	if err != nil {
		return nil, err
	}
	s.log.Info("task started", slog.String("task_id", taskID.String()))
	return task, nil
}

// CancelTask implements TaskService.CancelTask.
func (s *taskServiceImpl) CancelTask(ctx context.Context, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.transition(ctx, taskID, func(t *domain.Task) error { return t.Cancel() })
	if err != nil {
		return nil, err
	}
	s.log.Info("task cancelled", slog.String("task_id", taskID.String()))
	s.notify(ctx, events.TypeTaskCancelled, task)
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	taskID uuid.UUID,
	in UpdateTaskInput,
) (*domain.Task, error) {
	return s.transition(ctx, taskID, func(t *domain.Task) error {
		return t.UpdateContent(in.Title, in.Description)
	})
}

// ListTasksByUser implements TaskService.ListTasksByUser. Existence is
// checked, not activity: deactivating an owner does not invalidate or hide
// their tasks.
func (s *taskServiceImpl) ListTasksByUser(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, domain.NewUserNotFoundError(ownerID)
		}
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	return s.repo.FindByOwner(ctx, ownerID)
}

// transition loads the task, applies fn to the freshly read state, and
// persists the result, all within one transaction. Domain errors from fn
// propagate unchanged.
func (s *taskServiceImpl) transition(
	ctx context.Context,
	taskID uuid.UUID,
	fn func(*domain.Task) error,
) (*domain.Task, error) {
	var task *domain.Task
	err := store.RunInTransaction(ctx, s.repo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.repo.WithTx(tx)

		loaded, err := txRepo.GetByID(ctx, taskID)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return domain.NewTaskNotFoundError(taskID.String())
			}
			return err
		}

		if err := fn(loaded); err != nil {
			return err
		}

		if err := txRepo.Update(ctx, loaded); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return domain.NewTaskNotFoundError(taskID.String())
			}
			return err
		}

		task = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// notify emits a lifecycle event. Notification failures are logged, not
// returned: the task row is already committed and the operation must not
// look failed to the caller.
func (s *taskServiceImpl) notify(ctx context.Context, eventType string, task *domain.Task) {
	payload := struct {
		TaskID  uuid.UUID `json:"task_id"`
		OwnerID int64     `json:"owner_id"`
	}{TaskID: task.ID, OwnerID: task.OwnerID}

	event, err := events.NewTaskEvent(eventType, payload)
	if err != nil {
		s.log.Error("failed to create task event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("task_id", task.ID.String()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.log.Error("failed to emit task event",
			slog.String("error", err.Error()),
			slog.String("event_type", eventType),
			slog.String("task_id", task.ID.String()))
	}
}
