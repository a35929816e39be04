package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"plearn/backend/internal/model"
)

// pgxQuerier is the subset of *pgxpool.Pool the repository uses.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type postgresRepository struct {
	pool pgxQuerier
}

// NewPostgresRepository accepts a *pgxpool.Pool or a pgx.Tx.
func NewPostgresRepository(pool pgxQuerier) TaskRepository {
	return &postgresRepository{pool: pool}
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	var status string
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Desc, &t.Category, &t.Prioritas, &t.Deadline, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Status = model.TaskStatus(status)
	return &t, nil
}

func (r *postgresRepository) ListTasks(ctx context.Context, userID string, limit int) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+taskColumns+" FROM tasks WHERE user_id = $1 ORDER BY created_at ASC LIMIT $2", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *postgresRepository) GetTask(ctx context.Context, id string) (*model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresRepository) CreateTask(ctx context.Context, t *model.Task) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, t.ID, t.UserID, t.Title, t.Desc, t.Category, t.Prioritas, t.Deadline, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not insert task: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdateTask(ctx context.Context, t *model.Task) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tasks SET title = $1, "desc" = $2, category = $3, prioritas = $4, deadline = $5, status = $6, updated_at = $7
		WHERE id = $8
	`, t.Title, t.Desc, t.Category, t.Prioritas, t.Deadline, string(t.Status), t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteTask(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRepository) CompleteTasks(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE tasks SET status = $1, updated_at = $2 WHERE user_id = $3 AND status = $4",
		string(model.TaskDone), time.Now().UTC(), userID, string(model.TaskActive))
	if err != nil {
		return 0, fmt.Errorf("could not complete tasks: %w", err)
	}
	return tag.RowsAffected(), nil
}
