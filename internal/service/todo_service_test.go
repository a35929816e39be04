package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "plearn/backend/internal/errors"
	"plearn/backend/internal/model"
	"plearn/backend/internal/repository"
	mock_repo "plearn/backend/internal/repository/mocks"
	"plearn/backend/internal/service"
)

func setupTodoService(t *testing.T) (*service.TodoService, *mock_repo.MockTaskRepository) {
	repo := mock_repo.NewMockTaskRepository(t)
	return service.NewTodoService(repo), repo
}

func TestTodoService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Uses row limit", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		expected := []model.Task{{ID: "t1"}}
		repo.On("ListTasks", ctx, "u1", service.ListLimit).Return(expected, nil).Once()

		tasks, err := svc.List(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, expected, tasks)
	})

	t.Run("Failure - Missing user", func(t *testing.T) {
		svc, _ := setupTodoService(t)
		_, err := svc.List(ctx, "")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})
}

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Defaults", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		repo.On("CreateTask", ctx, mock.MatchedBy(func(task *model.Task) bool {
			return task.ID != "" && task.Category == "Lainnya" && task.Prioritas == "medium" &&
				task.Status == model.TaskActive && !task.CreatedAt.IsZero()
		})).Return(nil).Once()

		task, err := svc.Create(ctx, service.TaskInput{UserID: "u1", Title: "Baca"})

		require.NoError(t, err)
		assert.Equal(t, "Baca", task.Title)
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("Failure - Missing title", func(t *testing.T) {
		svc, _ := setupTodoService(t)
		_, err := svc.Create(ctx, service.TaskInput{UserID: "u1"})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - Bad status", func(t *testing.T) {
		svc, _ := setupTodoService(t)
		_, err := svc.Create(ctx, service.TaskInput{UserID: "u1", Title: "x", Status: "Done"})
		assert.ErrorIs(t, err, app_errors.ErrValidation)
	})

	t.Run("Failure - Repository error", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		repo.On("CreateTask", ctx, mock.Anything).Return(errors.New("locked")).Once()

		_, err := svc.Create(ctx, service.TaskInput{UserID: "u1", Title: "x"})
		assert.ErrorContains(t, err, "locked")
	})
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Merges fields", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		stored := &model.Task{ID: "t1", UserID: "u1", Title: "Baca", Category: "Sekolah", Prioritas: "low", Status: model.TaskActive}
		repo.On("GetTask", ctx, "t1").Return(stored, nil).Once()
		repo.On("UpdateTask", ctx, mock.MatchedBy(func(task *model.Task) bool {
			return task.Title == "Baca" && task.Category == "Sekolah" && task.Status == model.TaskDone
		})).Return(nil).Once()

		task, err := svc.Update(ctx, "t1", service.TaskInput{Status: model.TaskDone})

		require.NoError(t, err)
		assert.Equal(t, model.TaskDone, task.Status)
		assert.False(t, task.UpdatedAt.IsZero())
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		repo.On("GetTask", ctx, "nope").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Update(ctx, "nope", service.TaskInput{Title: "x"})
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		repo.On("DeleteTask", ctx, "t1").Return(nil).Once()
		assert.NoError(t, svc.Delete(ctx, "t1"))
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		repo.On("DeleteTask", ctx, "t1").Return(repository.ErrNotFound).Once()
		assert.ErrorIs(t, svc.Delete(ctx, "t1"), app_errors.ErrNotFound)
	})

	t.Run("Failure - Other error is internal", func(t *testing.T) {
		svc, repo := setupTodoService(t)
		repo.On("DeleteTask", ctx, "t1").Return(errors.New("disk full")).Once()
		err := svc.Delete(ctx, "t1")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestTodoService_CompleteAll(t *testing.T) {
	ctx := context.Background()
	svc, repo := setupTodoService(t)
	repo.On("CompleteTasks", ctx, "u1").Return(int64(2), nil).Once()

	n, err := svc.CompleteAll(ctx, "u1")

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = svc.CompleteAll(ctx, "")
	assert.ErrorIs(t, err, app_errors.ErrValidation)
}
