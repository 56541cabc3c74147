// Package api implements the HTTP boundary: request decoding and validation,
// handlers for the task and user endpoints, and the centralized mapping from
// domain errors to structured JSON error responses.
package api
