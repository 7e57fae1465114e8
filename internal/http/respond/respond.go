package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hongminglow/cost-manager/internal/apperr"
)

// ErrorBody is the JSON shape of every failed response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Message writes an error body with an explicit status.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// Error maps err to a status and writes its client-facing message.
// Unexpected errors are logged with their cause.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.As(err)
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
	} else {
		slog.DebugContext(r.Context(), "request rejected",
			"status", status,
			"error", appErr.Message)
	}
	Message(w, status, appErr.Error())
}
