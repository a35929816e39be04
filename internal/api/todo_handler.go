package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "plearn/backend/internal/errors"
	"plearn/backend/internal/interfaces"
	"plearn/backend/internal/service"
)

// TodoHandler serves the to-do REST endpoints.
type TodoHandler struct {
	service interfaces.TodoService
}

func NewTodoHandler(svc interfaces.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleList godoc
// @Summary      List tasks
// @Tags         Todo
// @Produce      json
// @Param        user_id  query     string  true  "Owner"
// @Success      200      {array}   model.Task
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/todo [get]
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tasks)
}

// HandleCreate godoc
// @Summary      Create a task
// @Tags         Todo
// @Accept       json
// @Produce      json
// @Param        task  body      TaskRequest  true  "New task"
// @Success      201   {object}  model.Task
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/todo [post]
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	task, err := h.service.Create(r.Context(), service.TaskInput{
		UserID:    req.UserID,
		Title:     req.Title,
		Desc:      req.Desc,
		Category:  req.Category,
		Prioritas: req.Prioritas,
		Deadline:  req.Deadline,
		Status:    req.Status,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, task)
}

// HandleCompleteAll godoc
// @Summary      Complete all tasks
// @Description  Marks every active task of the user as done.
// @Tags         Todo
// @Produce      json
// @Param        user_id  query     string  true  "Owner"
// @Success      200      {object}  CompleteResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/todo [patch]
func (h *TodoHandler) HandleCompleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.CompleteAll(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, CompleteResponse{Updated: n})
}

// HandleUpdate godoc
// @Summary      Update a task
// @Tags         Todo
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Task ID"
// @Param        task  body      UpdateTaskRequest  true  "Changed fields"
// @Success      200   {object}  model.Task
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /api/todo/{id} [put]
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	task, err := h.service.Update(r.Context(), id, service.TaskInput{
		Title:     req.Title,
		Desc:      req.Desc,
		Category:  req.Category,
		Prioritas: req.Prioritas,
		Deadline:  req.Deadline,
		Status:    req.Status,
	})
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, task)
}

// HandleDelete godoc
// @Summary      Delete a task
// @Tags         Todo
// @Param        id  path  string  true  "Task ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/todo/{id} [delete]
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
