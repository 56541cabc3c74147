package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		expectedType   string
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServerError,
			expectedType:   "internal_error",
		},
		{
			name:           "plain error",
			err:            errors.New("something broke"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   CodeInternalServerError,
			expectedType:   "internal_error",
		},
		{
			name:           "validation error",
			err:            domain.NewValidationError(map[string]string{"title": "empty"}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   domain.CodeValidationError,
			expectedType:   "validation_error",
		},
		{
			name:           "task not found",
			err:            domain.NewTaskNotFoundError("abc"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.CodeTaskNotFound,
			expectedType:   "resource_not_found",
		},
		{
			name:           "user not found",
			err:            domain.NewUserNotFoundError(7),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.CodeUserNotFound,
			expectedType:   "resource_not_found",
		},
		{
			name:           "wrapped domain error",
			err:            fmt.Errorf("complete task: %w", domain.NewTaskNotFoundError("abc")),
			expectedStatus: http.StatusNotFound,
			expectedCode:   domain.CodeTaskNotFound,
			expectedType:   "resource_not_found",
		},
		{
			name:           "already completed",
			err:            domain.NewTaskAlreadyCompletedError("abc", "complete"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   domain.CodeTaskAlreadyCompleted,
			expectedType:   "business_rule_violation",
		},
		{
			name:           "already cancelled",
			err:            domain.NewTaskAlreadyCancelledError("abc", "start"),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   domain.CodeTaskAlreadyCancelled,
			expectedType:   "business_rule_violation",
		},
		{
			name:           "invalid transition",
			err:            domain.NewInvalidTransitionError("abc", domain.TaskStatusInProgress, domain.TaskStatusInProgress),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   domain.CodeInvalidStateTransition,
			expectedType:   "business_rule_violation",
		},
		{
			name:           "max tasks exceeded",
			err:            domain.NewMaxTasksExceededError(1, 50, 50),
			expectedStatus: http.StatusUnprocessableEntity,
			expectedCode:   domain.CodeMaxTasksExceeded,
			expectedType:   "business_rule_violation",
		},
		{
			name:           "database error",
			err:            domain.NewDatabaseError("save", errors.New("duplicate key")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   domain.CodeDatabaseError,
			expectedType:   "database_error",
		},
		{
			name:           "connection error",
			err:            domain.NewConnectionError(errors.New("dial tcp: refused")),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   domain.CodeConnectionError,
			expectedType:   "database_error",
		},
		{
			name:           "rate limit",
			err:            domain.NewRateLimitError(30),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   domain.CodeRateLimitExceeded,
			expectedType:   "rate_limit_exceeded",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, detail := MapError(tc.err)
			assert.Equal(t, tc.expectedStatus, status)
			assert.Equal(t, tc.expectedCode, detail.Code)
			assert.Equal(t, tc.expectedType, detail.Type)
			assert.NotEmpty(t, detail.Message)
		})
	}
}

func TestMapErrorNeverLeaksInternalDetail(t *testing.T) {
	driverErr := errors.New(`pq: connection to "postgres://user:secret@db:5432" failed`)
	_, detail := MapError(domain.NewDatabaseError("save", driverErr))

	assert.NotContains(t, detail.Message, "secret")
	assert.NotContains(t, detail.Message, "postgres://")
	for _, v := range detail.Details {
		s, ok := v.(string)
		if ok {
			assert.NotContains(t, s, "secret")
		}
	}
}
