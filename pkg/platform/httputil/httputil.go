// Package httputil writes JSON responses and translates domain errors into
// HTTP statuses with a single envelope: {"error", "message", "fields"}.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"givebridge/internal/validation"
	dErrors "givebridge/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

var statusByCode = map[dErrors.Code]int{
	dErrors.CodeValidation:         http.StatusBadRequest,
	dErrors.CodeBadRequest:         http.StatusBadRequest,
	dErrors.CodeInvalidEmail:       http.StatusBadRequest,
	dErrors.CodeWeakPassword:       http.StatusBadRequest,
	dErrors.CodeEmailInUse:         http.StatusConflict,
	dErrors.CodeAlreadyExists:      http.StatusConflict,
	dErrors.CodeInvalidCredentials: http.StatusUnauthorized,
	dErrors.CodeUnauthorized:       http.StatusUnauthorized,
	dErrors.CodeAccountNotFound:    http.StatusNotFound,
	dErrors.CodeNotFound:           http.StatusNotFound,
	dErrors.CodePostalCodeNotFound: http.StatusNotFound,
	dErrors.CodeAddressIncomplete:  http.StatusUnprocessableEntity,
	dErrors.CodeRateLimited:        http.StatusTooManyRequests,
	dErrors.CodeNetwork:            http.StatusServiceUnavailable,
	dErrors.CodeInternal:           http.StatusInternalServerError,
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     string                  `json:"error"`
	Message   string                  `json:"message,omitempty"`
	Retryable bool                    `json:"retryable,omitempty"`
	Fields    []validation.FieldError `json:"fields,omitempty"`
}

// StatusFor maps a domain code to its HTTP status.
func StatusFor(code dErrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an ErrorResponse. Errors without a domain code and
// internal errors never leak their message.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code == dErrors.CodeInternal {
		WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error:   string(dErrors.CodeInternal),
			Message: "something went wrong",
		})
		return
	}
	WriteJSON(w, StatusFor(de.Code), ErrorResponse{
		Error:     string(de.Code),
		Message:   de.Message,
		Retryable: dErrors.IsRetryable(err),
		Fields:    validation.FieldErrors(err),
	})
}

// Decode reads a JSON body into T. On failure it writes a bad_request reply
// and returns false.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&v); err != nil {
		logger.WarnContext(r.Context(), "invalid request body", "path", r.URL.Path, "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return &v, true
}
