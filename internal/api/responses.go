package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	app_errors "plearn/backend/internal/errors"
	"plearn/backend/internal/model"
)

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to return.
type StatusResponse struct {
	Status string `json:"status"`
}

// CompleteResponse reports how many tasks a bulk completion changed.
type CompleteResponse struct {
	Updated int64 `json:"updated"`
}

// TaskRequest is the body of POST /api/todo.
type TaskRequest struct {
	UserID    string           `json:"user_id" validate:"required" example:"u-123"`
	Title     string           `json:"title" validate:"required,max=200" example:"Baca bab 3"`
	Desc      string           `json:"desc" validate:"max=2000"`
	Category  string           `json:"category" validate:"max=50" example:"Sekolah"`
	Prioritas string           `json:"prioritas" validate:"omitempty,oneof=low medium high" example:"medium"`
	Deadline  string           `json:"deadline" validate:"omitempty,datetime=2006-01-02" example:"2025-03-17"`
	Status    model.TaskStatus `json:"status" validate:"omitempty,oneof=Aktif Selesai" example:"Aktif"`
}

// UpdateTaskRequest relaxes TaskRequest: every field is optional.
type UpdateTaskRequest struct {
	Title     string           `json:"title" validate:"max=200"`
	Desc      string           `json:"desc" validate:"max=2000"`
	Category  string           `json:"category" validate:"max=50"`
	Prioritas string           `json:"prioritas" validate:"omitempty,oneof=low medium high"`
	Deadline  string           `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
	Status    model.TaskStatus `json:"status" validate:"omitempty,oneof=Aktif Selesai"`
}

// respondWithError maps business-layer sentinel errors to HTTP status codes.
// Internal details are logged, never sent.
func respondWithError(w http.ResponseWriter, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, app_errors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "The requested resource was not found."
	case errors.Is(err, app_errors.ErrValidation):
		statusCode = http.StatusBadRequest
		// Validation messages name the offending field and are safe to show.
		message = err.Error()
	default:
		statusCode = http.StatusInternalServerError
		message = "An unexpected internal server error occurred."
	}

	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)

	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
