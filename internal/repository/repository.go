package repository

import (
	"context"

	"plearn/backend/internal/model"
)

// TaskRepository defines the storage operations for to-do tasks.
// SQLite and PostgreSQL implementations are interchangeable.
type TaskRepository interface {
	ListTasks(ctx context.Context, userID string, limit int) ([]model.Task, error)
	GetTask(ctx context.Context, id string) (*model.Task, error)
	CreateTask(ctx context.Context, task *model.Task) error
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id string) error
	// CompleteTasks marks every active task of userID as done and returns
	// the number of rows changed.
	CompleteTasks(ctx context.Context, userID string) (int64, error)
}
