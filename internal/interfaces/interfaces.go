package interfaces

import (
	"context"

	"plearn/backend/internal/model"
	"plearn/backend/internal/service"
)

// Handlers depend on these contracts rather than on concrete services so
// they can be tested against mocks.

// ChatService answers chat, vision and speech requests.
type ChatService interface {
	Reply(ctx context.Context, req *model.ChatRequest) (string, error)
	Describe(ctx context.Context, prompt string, history []model.ChatTurn, image []byte, mimeType string) (string, error)
	Speak(ctx context.Context, text string) (*model.TTSResponse, error)
}

// TodoService manages persisted to-do tasks.
type TodoService interface {
	List(ctx context.Context, userID string) ([]model.Task, error)
	Create(ctx context.Context, in service.TaskInput) (*model.Task, error)
	Update(ctx context.Context, id string, in service.TaskInput) (*model.Task, error)
	Delete(ctx context.Context, id string) error
	CompleteAll(ctx context.Context, userID string) (int64, error)
}

var (
	_ ChatService = (*service.ChatService)(nil)
	_ TodoService = (*service.TodoService)(nil)
)
