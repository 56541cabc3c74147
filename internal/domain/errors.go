package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure. The set is closed: the HTTP boundary
// switches over it exhaustively, so adding a kind requires extending the
// mapper as well.
type ErrorKind int

const (
	// ErrorKindValidation covers field-level validation failures.
	ErrorKindValidation ErrorKind = iota

	// ErrorKindNotFound covers lookups of tasks or users that do not exist.
	ErrorKindNotFound

	// ErrorKindBusinessRule covers violations of lifecycle and business rules.
	ErrorKindBusinessRule

	// ErrorKindDatabase covers persistence failures. The underlying driver
	// error is carried for logging but never exposed to clients.
	ErrorKindDatabase

	// ErrorKindRateLimit covers throttled requests at the HTTP boundary.
	ErrorKindRateLimit
)

// Stable machine-readable error codes. API consumers branch on these, not on
// messages.
const (
	CodeValidationError        = "VALIDATION_ERROR"
	CodeTaskNotFound           = "TASK_NOT_FOUND"
	CodeUserNotFound           = "USER_NOT_FOUND"
	CodeTaskAlreadyCompleted   = "TASK_ALREADY_COMPLETED"
	CodeTaskAlreadyCancelled   = "TASK_ALREADY_CANCELLED"
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
	CodeMaxTasksExceeded       = "MAX_TASKS_EXCEEDED"
	CodeDatabaseError          = "DATABASE_ERROR"
	CodeConnectionError        = "CONNECTION_ERROR"
	CodeRateLimitExceeded      = "RATE_LIMIT_EXCEEDED"
)

// Error is the single error type crossing the domain boundary. It carries a
// kind for status mapping, a stable code, a client-safe message, and optional
// structured details.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// NewValidationError reports one or more field validation failures. The
// fieldErrors map (field name to human-readable reason) is carried in
// Details under "field_errors" so multiple violations surface in one failure.
func NewValidationError(fieldErrors map[string]string) *Error {
	return &Error{
		Kind:    ErrorKindValidation,
		Code:    CodeValidationError,
		Message: "one or more fields failed validation",
		Details: map[string]any{"field_errors": fieldErrors},
	}
}

// NewTaskNotFoundError reports a lookup of a task that does not exist.
func NewTaskNotFoundError(taskID string) *Error {
	return &Error{
		Kind:    ErrorKindNotFound,
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("task with ID %q not found", taskID),
		Details: map[string]any{"task_id": taskID},
	}
}

// NewUserNotFoundError reports an owner that is absent from the user
// directory or not active.
func NewUserNotFoundError(userID int64) *Error {
	return &Error{
		Kind:    ErrorKindNotFound,
		Code:    CodeUserNotFound,
		Message: fmt.Sprintf("user with ID %d not found or not active", userID),
		Details: map[string]any{"user_id": userID},
	}
}

// NewTaskAlreadyCompletedError reports an operation attempted on a completed
// task.
func NewTaskAlreadyCompletedError(taskID string, operation string) *Error {
	return &Error{
		Kind:    ErrorKindBusinessRule,
		Code:    CodeTaskAlreadyCompleted,
		Message: fmt.Sprintf("cannot %s task %s: task is already completed", operation, taskID),
		Details: map[string]any{
			"task_id":             taskID,
			"current_status":      string(TaskStatusCompleted),
			"attempted_operation": operation,
		},
	}
}

// NewTaskAlreadyCancelledError reports an operation attempted on a cancelled
// task.
func NewTaskAlreadyCancelledError(taskID string, operation string) *Error {
	return &Error{
		Kind:    ErrorKindBusinessRule,
		Code:    CodeTaskAlreadyCancelled,
		Message: fmt.Sprintf("cannot %s task %s: task is already cancelled", operation, taskID),
		Details: map[string]any{
			"task_id":             taskID,
			"current_status":      string(TaskStatusCancelled),
			"attempted_operation": operation,
		},
	}
}

// NewInvalidTransitionError reports a status transition not present in the
// lifecycle table.
func NewInvalidTransitionError(taskID string, from, to TaskStatus) *Error {
	return &Error{
		Kind:    ErrorKindBusinessRule,
		Code:    CodeInvalidStateTransition,
		Message: fmt.Sprintf("cannot transition task %s from %q to %q", taskID, from, to),
		Details: map[string]any{
			"task_id":        taskID,
			"current_status": string(from),
			"target_status":  string(to),
		},
	}
}

// NewMaxTasksExceededError reports that an owner has reached the configured
// limit of open tasks.
func NewMaxTasksExceededError(userID int64, current, max int) *Error {
	return &Error{
		Kind:    ErrorKindBusinessRule,
		Code:    CodeMaxTasksExceeded,
		Message: fmt.Sprintf("user %d has reached the maximum number of open tasks (%d/%d)", userID, current, max),
		Details: map[string]any{
			"user_id":           userID,
			"open_task_count":   current,
			"max_allowed_tasks": max,
		},
	}
}

// NewDatabaseError wraps a persistence failure. The wrapped error is kept for
// logging; the message stays generic so no driver detail reaches clients.
func NewDatabaseError(operation string, err error) *Error {
	return &Error{
		Kind:    ErrorKindDatabase,
		Code:    CodeDatabaseError,
		Message: "a database error occurred",
		Details: map[string]any{"operation": operation},
		Err:     err,
	}
}

// NewConnectionError wraps a database connectivity failure.
func NewConnectionError(err error) *Error {
	return &Error{
		Kind:    ErrorKindDatabase,
		Code:    CodeConnectionError,
		Message: "the database is unavailable",
		Err:     err,
	}
}

// NewRateLimitError reports a throttled request. retryAfter is the number of
// seconds the client should wait before retrying.
func NewRateLimitError(retryAfter int) *Error {
	return &Error{
		Kind:    ErrorKindRateLimit,
		Code:    CodeRateLimitExceeded,
		Message: "rate limit exceeded, slow down",
		Details: map[string]any{"retry_after": retryAfter},
	}
}
