package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageFormat(t *testing.T) {
	t.Parallel()

	err := NewTaskNotFoundError("abc-123")
	want := `[TASK_NOT_FOUND] task with ID "abc-123" not found`
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	wrapped := NewDatabaseError("save", errors.New("broken pipe"))
	if wrapped.Error() != "[DATABASE_ERROR] a database error occurred: broken pipe" {
		t.Errorf("Unexpected wrapped message: %q", wrapped.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewConnectionError(cause)
	if !errors.Is(err, cause) {
		t.Error("Expected errors.Is to find the wrapped cause")
	}
}

func TestAsError(t *testing.T) {
	t.Parallel()

	domainErr := NewUserNotFoundError(42)
	wrapped := fmt.Errorf("create task: %w", domainErr)

	got, ok := AsError(wrapped)
	if !ok {
		t.Fatal("Expected AsError to extract the domain error through wrapping")
	}
	if got.Code != CodeUserNotFound {
		t.Errorf("Expected code %s, got %s", CodeUserNotFound, got.Code)
	}
	if got.Kind != ErrorKindNotFound {
		t.Errorf("Expected kind NotFound, got %v", got.Kind)
	}

	if _, ok := AsError(errors.New("plain")); ok {
		t.Error("Expected AsError to reject non-domain errors")
	}
}

func TestConstructorsAssignKindsAndDetails(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		err        *Error
		wantKind   ErrorKind
		wantCode   string
		detailKeys []string
	}{
		{
			name:       "validation",
			err:        NewValidationError(map[string]string{"title": "empty"}),
			wantKind:   ErrorKindValidation,
			wantCode:   CodeValidationError,
			detailKeys: []string{"field_errors"},
		},
		{
			name:       "task not found",
			err:        NewTaskNotFoundError("id-1"),
			wantKind:   ErrorKindNotFound,
			wantCode:   CodeTaskNotFound,
			detailKeys: []string{"task_id"},
		},
		{
			name:       "already completed",
			err:        NewTaskAlreadyCompletedError("id-1", "cancel"),
			wantKind:   ErrorKindBusinessRule,
			wantCode:   CodeTaskAlreadyCompleted,
			detailKeys: []string{"task_id", "current_status", "attempted_operation"},
		},
		{
			name:       "already cancelled",
			err:        NewTaskAlreadyCancelledError("id-1", "complete"),
			wantKind:   ErrorKindBusinessRule,
			wantCode:   CodeTaskAlreadyCancelled,
			detailKeys: []string{"task_id", "current_status", "attempted_operation"},
		},
		{
			name:       "invalid transition",
			err:        NewInvalidTransitionError("id-1", TaskStatusInProgress, TaskStatusInProgress),
			wantKind:   ErrorKindBusinessRule,
			wantCode:   CodeInvalidStateTransition,
			detailKeys: []string{"task_id", "current_status", "target_status"},
		},
		{
			name:       "max tasks exceeded",
			err:        NewMaxTasksExceededError(7, 50, 50),
			wantKind:   ErrorKindBusinessRule,
			wantCode:   CodeMaxTasksExceeded,
			detailKeys: []string{"user_id", "open_task_count", "max_allowed_tasks"},
		},
		{
			name:       "database",
			err:        NewDatabaseError("update", errors.New("boom")),
			wantKind:   ErrorKindDatabase,
			wantCode:   CodeDatabaseError,
			detailKeys: []string{"operation"},
		},
		{
			name:       "rate limit",
			err:        NewRateLimitError(30),
			wantKind:   ErrorKindRateLimit,
			wantCode:   CodeRateLimitExceeded,
			detailKeys: []string{"retry_after"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.err.Kind != tc.wantKind {
				t.Errorf("Expected kind %v, got %v", tc.wantKind, tc.err.Kind)
			}
			if tc.err.Code != tc.wantCode {
				t.Errorf("Expected code %s, got %s", tc.wantCode, tc.err.Code)
			}
			for _, key := range tc.detailKeys {
				if _, ok := tc.err.Details[key]; !ok {
					t.Errorf("Expected detail %q, got %v", key, tc.err.Details)
				}
			}
		})
	}
}
