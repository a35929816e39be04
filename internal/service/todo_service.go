package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	app_errors "plearn/backend/internal/errors"
	"plearn/backend/internal/metrics"
	"plearn/backend/internal/model"
	"plearn/backend/internal/parser"
	"plearn/backend/internal/repository"
)

// ListLimit caps the number of tasks returned by List.
const ListLimit = 200

// TaskInput carries the writable fields of a task.
type TaskInput struct {
	UserID    string
	Title     string
	Desc      string
	Category  string
	Prioritas string
	Deadline  string
	Status    model.TaskStatus
}

type TodoService struct {
	repo  repository.TaskRepository
	now   func() time.Time
	newID func() string
}

func NewTodoService(repo repository.TaskRepository) *TodoService {
	return &TodoService{repo: repo, now: time.Now, newID: uuid.NewString}
}

// List returns up to ListLimit tasks of userID, oldest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]model.Task, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", app_errors.ErrValidation)
	}
	tasks, err := s.repo.ListTasks(ctx, userID, ListLimit)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}
	return tasks, nil
}

// Create stores a new active task, filling category and priority defaults.
func (s *TodoService) Create(ctx context.Context, in TaskInput) (*model.Task, error) {
	if in.UserID == "" || in.Title == "" {
		return nil, fmt.Errorf("%w: user_id and title are required", app_errors.ErrValidation)
	}
	if in.Status == "" {
		in.Status = model.TaskActive
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", app_errors.ErrValidation, in.Status)
	}

	now := s.now().UTC()
	task := &model.Task{
		ID:        s.newID(),
		UserID:    in.UserID,
		Title:     in.Title,
		Desc:      in.Desc,
		Category:  orDefault(in.Category, parser.DefaultCategory),
		Prioritas: orDefault(in.Prioritas, parser.DefaultPriority),
		Deadline:  in.Deadline,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}
	metrics.TasksWritten.WithLabelValues("create").Inc()
	return task, nil
}

// Update replaces the writable fields of task id. Empty fields keep their
// stored value.
func (s *TodoService) Update(ctx context.Context, id string, in TaskInput) (*model.Task, error) {
	task, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, s.mapNotFound(err, id)
	}
	if in.Status != "" && !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", app_errors.ErrValidation, in.Status)
	}

	task.Title = orDefault(in.Title, task.Title)
	task.Desc = orDefault(in.Desc, task.Desc)
	task.Category = orDefault(in.Category, task.Category)
	task.Prioritas = orDefault(in.Prioritas, task.Prioritas)
	task.Deadline = orDefault(in.Deadline, task.Deadline)
	if in.Status != "" {
		task.Status = in.Status
	}
	task.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, s.mapNotFound(err, id)
	}
	metrics.TasksWritten.WithLabelValues("update").Inc()
	return task, nil
}

// Delete removes task id.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		return s.mapNotFound(err, id)
	}
	metrics.TasksWritten.WithLabelValues("delete").Inc()
	return nil
}

// CompleteAll marks every active task of userID as done.
func (s *TodoService) CompleteAll(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user_id is required", app_errors.ErrValidation)
	}
	n, err := s.repo.CompleteTasks(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("could not complete tasks: %w", err)
	}
	metrics.TasksWritten.WithLabelValues("complete").Add(float64(n))
	return n, nil
}

func (s *TodoService) mapNotFound(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: task %s", app_errors.ErrNotFound, id)
	}
	return fmt.Errorf("task %s: %w", id, err)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
