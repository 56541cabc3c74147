package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// PostgreSQL error code classes and codes relevant to this store.
const (
	// connectionExceptionClass covers all class 08 connection failures.
	connectionExceptionClass = "08"

	// checkViolationCode is the code for check constraint violations.
	checkViolationCode = "23514"

	// notNullViolationCode is the code for not null violations.
	notNullViolationCode = "23502"
)

// mapError translates a raw driver error into the domain error taxonomy so
// no pgx detail crosses the store boundary. sql.ErrNoRows is NOT handled
// here: each query maps it to the entity-specific store sentinel itself.
func mapError(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return domain.NewConnectionError(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, connectionExceptionClass) {
			return domain.NewConnectionError(err)
		}
		switch pgErr.Code {
		case checkViolationCode, notNullViolationCode:
			// Constraint violations mean the entity slipped past Validate;
			// surface them as invalid entity rather than a generic failure.
			return store.ErrInvalidEntity
		}
	}

	return domain.NewDatabaseError(operation, err)
}
