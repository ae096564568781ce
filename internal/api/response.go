package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/matchpredict/matchpredict/internal/models"
)

// RequestError is a failure the caller can fix. It is reported with its own
// status instead of 500.
type RequestError struct {
	Status  int
	Message string
	Index   *int
}

func (e *RequestError) Error() string {
	if e.Index != nil {
		return fmt.Sprintf("%d: %s (entry %d)", e.Status, e.Message, *e.Index)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func badRequest(message string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message}
}

// handlerFunc is an HTTP handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle converts returned errors into JSON error bodies: RequestErrors keep
// their status, anything else becomes a 500 carrying the error message.
func handle(logger *slog.Logger, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var reqErr *RequestError
		if errors.As(err, &reqErr) {
			logger.Debug("rejected request", "method", r.Method, "path", r.URL.Path, "error", reqErr.Message)
			writeError(w, logger, reqErr.Status, models.ErrorResponse{Error: reqErr.Message, Index: reqErr.Index})
			return
		}

		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, logger, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}

// writeJSON marshals before touching the response so an encoding failure can
// still be reported as a clean 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
	return nil
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, body models.ErrorResponse) {
	if err := writeJSON(w, status, body); err != nil {
		logger.Error("failed to encode error response", "error", err)
		http.Error(w, body.Error, status)
	}
}
