package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"plearn/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) TaskRepository {
	return &sqliteRepository{db: db}
}

const taskColumns = `id, user_id, title, "desc", category, prioritas, deadline, status, created_at, updated_at`

func (r *sqliteRepository) ListTasks(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ? ORDER BY created_at ASC LIMIT ?"
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Desc, &t.Category, &t.Prioritas, &t.Deadline, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *sqliteRepository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE id = ?"
	row := r.db.QueryRowContext(ctx, query, id)
	var t model.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Desc, &t.Category, &t.Prioritas, &t.Deadline, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) CreateTask(ctx context.Context, t *model.Task) error {
	query := "INSERT INTO tasks (" + taskColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, t.ID, t.UserID, t.Title, t.Desc, t.Category, t.Prioritas, t.Deadline, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not insert task: %w", err)
	}
	return nil
}

func (r *sqliteRepository) UpdateTask(ctx context.Context, t *model.Task) error {
	query := `UPDATE tasks SET title = ?, "desc" = ?, category = ?, prioritas = ?, deadline = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, t.Title, t.Desc, t.Category, t.Prioritas, t.Deadline, t.Status, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	return expectRow(res)
}

func (r *sqliteRepository) DeleteTask(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}
	return expectRow(res)
}

func (r *sqliteRepository) CompleteTasks(ctx context.Context, userID string) (int64, error) {
	query := "UPDATE tasks SET status = ?, updated_at = ? WHERE user_id = ? AND status = ?"
	res, err := r.db.ExecContext(ctx, query, model.TaskDone, time.Now().UTC(), userID, model.TaskActive)
	if err != nil {
		return 0, fmt.Errorf("could not complete tasks: %w", err)
	}
	return res.RowsAffected()
}

// expectRow maps a zero-row write to ErrNotFound.
func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
