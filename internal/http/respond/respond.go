// Package respond centralizes JSON encoding and the mapping from service
// errors to HTTP status codes.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/tally/internal/fault"
)

type errorResponse struct {
	Error string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes the status matching the error's kind. Validation errors and
// not-found errors carry safe messages; anything else hides the detail.
func Error(w http.ResponseWriter, err error) {
	switch {
	case fault.IsValidation(err):
		JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case fault.IsNotFound(err):
		JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		JSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
