package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values. Pending is the only valid initial state.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// IsValid reports whether s is one of the defined status values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

// Possible task priority values. Medium is the default.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

// IsValid reports whether p is one of the defined priority values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

// MaxTitleLength is the maximum number of characters allowed in a task title.
const MaxTitleLength = 200

// Task represents one unit of accounting work assigned to a user. A Task can
// only be obtained through NewTask, so an observable Task always satisfies
// its field invariants; status changes go through the lifecycle methods only.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	OwnerID     int64        `json:"owner_id"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// NewTask creates a new pending Task owned by ownerID. Title and description
// are trimmed and must be non-empty; the title is capped at MaxTitleLength
// characters. An empty priority defaults to medium. All field violations are
// collected and reported together in a single validation error.
func NewTask(title, description string, ownerID int64, priority TaskPriority) (*Task, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if priority == "" {
		priority = TaskPriorityMedium
	}

	fieldErrors := make(map[string]string)
	if title == "" {
		fieldErrors["title"] = "title cannot be empty or whitespace"
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		fieldErrors["title"] = fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)
	}
	if description == "" {
		fieldErrors["description"] = "description cannot be empty or whitespace"
	}
	if ownerID <= 0 {
		fieldErrors["owner_id"] = "owner_id must be a positive integer"
	}
	if !priority.IsValid() {
		fieldErrors["priority"] = "priority must be one of: low, medium, high, urgent"
	}
	if len(fieldErrors) > 0 {
		return nil, NewValidationError(fieldErrors)
	}

	now := time.Now().UTC()
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		Status:      TaskStatusPending,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Validate checks the Task's field and state invariants. Stores call this
// before persisting so an invalid row can never be written.
func (t *Task) Validate() error {
	fieldErrors := make(map[string]string)
	if t.ID == uuid.Nil {
		fieldErrors["id"] = "task ID cannot be empty"
	}
	if strings.TrimSpace(t.Title) == "" {
		fieldErrors["title"] = "title cannot be empty or whitespace"
	} else if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		fieldErrors["title"] = fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)
	}
	if strings.TrimSpace(t.Description) == "" {
		fieldErrors["description"] = "description cannot be empty or whitespace"
	}
	if t.OwnerID <= 0 {
		fieldErrors["owner_id"] = "owner_id must be a positive integer"
	}
	if !t.Status.IsValid() {
		fieldErrors["status"] = "status must be one of: pending, in_progress, completed, cancelled"
	}
	if !t.Priority.IsValid() {
		fieldErrors["priority"] = "priority must be one of: low, medium, high, urgent"
	}
	// completed_at is non-nil exactly when the task is completed
	if (t.Status == TaskStatusCompleted) != (t.CompletedAt != nil) {
		fieldErrors["completed_at"] = "completed_at must be set if and only if status is completed"
	}
	if len(fieldErrors) > 0 {
		return NewValidationError(fieldErrors)
	}
	return nil
}

// Start transitions the task from pending to in_progress and refreshes
// UpdatedAt. Terminal tasks fail with their state-specific error; any other
// state fails with an invalid-transition error.
func (t *Task) Start() error {
	if err := t.checkNotTerminal("start"); err != nil {
		return err
	}
	if t.Status != TaskStatusPending {
		return NewInvalidTransitionError(t.ID.String(), t.Status, TaskStatusInProgress)
	}
	t.Status = TaskStatusInProgress
	t.touch()
	return nil
}

// Complete transitions the task to completed, setting CompletedAt exactly
// once and refreshing UpdatedAt. Both pending and in_progress tasks may be
// completed; terminal tasks fail with their state-specific error.
func (t *Task) Complete() error {
	if err := t.checkNotTerminal("complete"); err != nil {
		return err
	}
	now := time.Now().UTC()
	t.Status = TaskStatusCompleted
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// Cancel transitions the task to cancelled and refreshes UpdatedAt. Terminal
// tasks fail with their state-specific error.
func (t *Task) Cancel() error {
	if err := t.checkNotTerminal("cancel"); err != nil {
		return err
	}
	t.Status = TaskStatusCancelled
	t.touch()
	return nil
}

// UpdateContent changes the task's title and/or description. A nil argument
// leaves the corresponding field untouched. Replacement values are validated
// the same way as at construction, so a previously valid field cannot be
// emptied. Refreshes UpdatedAt on success. Terminal tasks cannot be edited.
func (t *Task) UpdateContent(title, description *string) error {
	if err := t.checkNotTerminal("update"); err != nil {
		return err
	}

	fieldErrors := make(map[string]string)
	var newTitle, newDescription string
	if title != nil {
		newTitle = strings.TrimSpace(*title)
		if newTitle == "" {
			fieldErrors["title"] = "title cannot be empty or whitespace"
		} else if utf8.RuneCountInString(newTitle) > MaxTitleLength {
			fieldErrors["title"] = fmt.Sprintf("title cannot exceed %d characters", MaxTitleLength)
		}
	}
	if description != nil {
		newDescription = strings.TrimSpace(*description)
		if newDescription == "" {
			fieldErrors["description"] = "description cannot be empty or whitespace"
		}
	}
	if len(fieldErrors) > 0 {
		return NewValidationError(fieldErrors)
	}

	if title != nil {
		t.Title = newTitle
	}
	if description != nil {
		t.Description = newDescription
	}
	t.touch()
	return nil
}

// IsActive reports whether the task is still open for work.
func (t *Task) IsActive() bool {
	return !t.Status.IsTerminal()
}

// checkNotTerminal returns the state-specific business rule error when the
// task is in a terminal state.
func (t *Task) checkNotTerminal(operation string) error {
	switch t.Status {
	case TaskStatusCompleted:
		return NewTaskAlreadyCompletedError(t.ID.String(), operation)
	case TaskStatusCancelled:
		return NewTaskAlreadyCancelledError(t.ID.String(), operation)
	default:
		return nil
	}
}

// touch refreshes the UpdatedAt timestamp.
func (t *Task) touch() {
	t.UpdatedAt = time.Now().UTC()
}
