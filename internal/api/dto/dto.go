// Package dto defines the JSON shapes of API responses.
package dto

import (
	"time"

	"github.com/cleared-dev/payrecon/internal/model"
)

// APIError represents a structured error response.
// All error responses from the API use this format.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeNotFound      = "not_found"
	ErrCodeBadRequest    = "bad_request"
	ErrCodeInternalError = "internal_error"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{Code: code, Message: message}
}

// NotFoundError creates a not found error response.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response stamped with now.
func NewHealthResponse(now time.Time) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: now.UTC().Format(time.RFC3339),
	}
}

// ResultsResponse is a filtered result listing.
type ResultsResponse struct {
	RunID   string         `json:"run_id"`
	Count   int            `json:"count"`
	Results []model.Result `json:"results"`
}
