package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ErrorDetail is the machine-actionable part of an error response. Consumers
// must branch on Code; Message is safe to display but not stable across
// versions.
type ErrorDetail struct {
	Type    string         `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope returned by every endpoint.
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	Timestamp string      `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
	Path      string      `json:"path"`
	Method    string      `json:"method"`
}

// NewErrorResponse builds the envelope around the given detail, stamping the
// current UTC time and the request's correlation ID, path, and method.
func NewErrorResponse(r *http.Request, detail ErrorDetail) ErrorResponse {
	return ErrorResponse{
		Error:     detail,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: GetRequestID(r.Context()),
		Path:      r.URL.Path,
		Method:    r.Method,
	}
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes the standard error envelope with the given status
// code and detail, logging at a level chosen by status class: 5xx at ERROR,
// 429 at WARN, other 4xx at DEBUG.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, detail ErrorDetail) {
	response := NewErrorResponse(r, detail)

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	} else if status == http.StatusTooManyRequests {
		level = slog.LevelWarn
	}
	slog.LogAttrs(r.Context(), level, "API error response",
		slog.Int("status_code", status),
		slog.String("code", detail.Code),
		slog.String("request_id", response.RequestID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method))

	RespondWithJSON(w, r, status, response)
}
