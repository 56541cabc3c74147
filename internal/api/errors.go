package api

import (
	"log/slog"
	"net/http"

	"github.com/ledgerline/taskboard-api/internal/api/shared"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/redact"
)

// Error type labels exposed in the error envelope, one per domain error kind.
const (
	errorTypeValidation   = "validation_error"
	errorTypeNotFound     = "resource_not_found"
	errorTypeBusinessRule = "business_rule_violation"
	errorTypeDatabase     = "database_error"
	errorTypeRateLimit    = "rate_limit_exceeded"
	errorTypeInternal     = "internal_error"
)

// CodeInternalServerError is the code returned for errors that are not part
// of the domain taxonomy.
const CodeInternalServerError = "INTERNAL_SERVER_ERROR"

// MapError deterministically maps any error to an HTTP status code and the
// client-safe error detail. The switch over domain.ErrorKind is exhaustive;
// anything that is not a domain error becomes a generic 500 with no internal
// detail.
func MapError(err error) (int, shared.ErrorDetail) {
	domainErr, ok := domain.AsError(err)
	if !ok {
		return http.StatusInternalServerError, shared.ErrorDetail{
			Type:    errorTypeInternal,
			Code:    CodeInternalServerError,
			Message: "an unexpected error occurred",
		}
	}

	switch domainErr.Kind {
	case domain.ErrorKindValidation:
		return http.StatusBadRequest, detailOf(errorTypeValidation, domainErr)
	case domain.ErrorKindNotFound:
		return http.StatusNotFound, detailOf(errorTypeNotFound, domainErr)
	case domain.ErrorKindBusinessRule:
		return http.StatusUnprocessableEntity, detailOf(errorTypeBusinessRule, domainErr)
	case domain.ErrorKindDatabase:
		// Message and details on database errors are already generic; the
		// wrapped driver error stays out of the response entirely.
		return http.StatusInternalServerError, detailOf(errorTypeDatabase, domainErr)
	case domain.ErrorKindRateLimit:
		return http.StatusTooManyRequests, detailOf(errorTypeRateLimit, domainErr)
	default:
		return http.StatusInternalServerError, shared.ErrorDetail{
			Type:    errorTypeInternal,
			Code:    CodeInternalServerError,
			Message: "an unexpected error occurred",
		}
	}
}

func detailOf(errorType string, domainErr *domain.Error) shared.ErrorDetail {
	return shared.ErrorDetail{
		Type:    errorType,
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Details: domainErr.Details,
	}
}

// respondError maps err and writes the standard error envelope. The full
// (redacted) error is logged here so handlers don't repeat it.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := MapError(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("error", redact.Error(err)),
			slog.String("request_id", shared.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("method", r.Method))
	}
	shared.RespondWithError(w, r, status, detail)
}
