package response

import (
	"encoding/json"
	"net/http"

	"github.com/Waynenyarky/capstone-booking/internal/domain"
	"github.com/Waynenyarky/capstone-booking/pkg/logger"
)

// ErrorResponse is the structured JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Common error codes
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeMismatch      = "MISMATCH"
	CodeIneligible    = "INELIGIBLE"
	CodeUnavailable   = "OUTSIDE_AVAILABILITY"
	CodeInternalError = "INTERNAL_ERROR"
)

func WriteError(w http.ResponseWriter, statusCode int, message string, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message, Code: code}); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

func Forbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message, CodeForbidden)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func Conflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message, CodeConflict)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

// WriteDomainError maps a classified error to its HTTP status and code.
// Unclassified errors are reported as internal without leaking detail.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	case domain.KindAvailability:
		WriteError(w, http.StatusBadRequest, err.Error(), CodeUnavailable)
	case domain.KindMismatch:
		WriteError(w, http.StatusBadRequest, err.Error(), CodeMismatch)
	case domain.KindIneligible:
		WriteError(w, http.StatusBadRequest, err.Error(), CodeIneligible)
	case domain.KindNotFound:
		WriteError(w, http.StatusNotFound, err.Error(), CodeNotFound)
	case domain.KindForbidden:
		WriteError(w, http.StatusForbidden, err.Error(), CodeForbidden)
	case domain.KindConflict:
		WriteError(w, http.StatusConflict, err.Error(), CodeConflict)
	default:
		logger.Error("unhandled error", "error", err)
		InternalError(w, "internal error")
	}
}
