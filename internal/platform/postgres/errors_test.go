package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapError("save", nil))
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		err := mapError("save", fmt.Errorf("exec: %w", context.DeadlineExceeded))
		domainErr, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeConnectionError, domainErr.Code)
	})

	t.Run("connection done", func(t *testing.T) {
		err := mapError("save", sql.ErrConnDone)
		domainErr, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeConnectionError, domainErr.Code)
	})

	t.Run("class 08 connection failure", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "08006", Message: "connection failure"}
		err := mapError("get_by_id", pgErr)
		domainErr, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeConnectionError, domainErr.Code)
	})

	t.Run("check violation maps to invalid entity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23514", Message: "check constraint violated"}
		err := mapError("save", pgErr)
		assert.True(t, errors.Is(err, store.ErrInvalidEntity))
	})

	t.Run("not null violation maps to invalid entity", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23502", Message: "null value in column"}
		err := mapError("save", pgErr)
		assert.True(t, errors.Is(err, store.ErrInvalidEntity))
	})

	t.Run("anything else is a database error", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key"}
		err := mapError("save", pgErr)
		domainErr, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Equal(t, domain.CodeDatabaseError, domainErr.Code)
		assert.Equal(t, "save", domainErr.Details["operation"])
		assert.True(t, errors.Is(err, pgErr), "the driver error stays in the chain for logging")
	})
}
