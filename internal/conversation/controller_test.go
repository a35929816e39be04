package conversation_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"plearn/backend/internal/conversation"
	"plearn/backend/internal/conversation/mocks"
	"plearn/backend/internal/model"
)

var fixedNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

type toast struct {
	level   conversation.Level
	message string
}

type fakeNotifier struct {
	mu     sync.Mutex
	toasts []toast
}

func (n *fakeNotifier) Notify(level conversation.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toasts = append(n.toasts, toast{level, message})
}

type fakeClipboard struct{ text string }

func (c *fakeClipboard) WriteText(text string) error {
	c.text = text
	return nil
}

type fakeSpeaker struct {
	spoken []string
	err    error
}

func (s *fakeSpeaker) Speak(_ context.Context, text string) error {
	s.spoken = append(s.spoken, text)
	return s.err
}

type fixture struct {
	ctrl      *conversation.Controller
	backend   *mocks.MockBackend
	notifier  *fakeNotifier
	clipboard *fakeClipboard
	speaker   *fakeSpeaker
}

func setupController(t *testing.T) fixture {
	backend := mocks.NewMockBackend(t)
	f := fixture{
		backend:   backend,
		notifier:  &fakeNotifier{},
		clipboard: &fakeClipboard{},
		speaker:   &fakeSpeaker{},
	}
	var seq int
	f.ctrl = conversation.New(conversation.Config{
		Backend:   backend,
		Notifier:  f.notifier,
		Clipboard: f.clipboard,
		Speaker:   f.speaker,
		Now:       func() time.Time { return fixedNow },
		NewID: func() string {
			seq++
			return fmt.Sprintf("m%d", seq)
		},
	})
	return f
}

func lastTurn(req model.ChatRequest) model.ChatTurn {
	return req.Messages[len(req.Messages)-1]
}

func TestController_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("No-op on empty input", func(t *testing.T) {
		f := setupController(t)
		f.ctrl.SetInput("   ")
		assert.False(t, f.ctrl.Send(ctx))
		assert.Empty(t, f.ctrl.Messages())
	})

	t.Run("Balanced mode round trip", func(t *testing.T) {
		f := setupController(t)
		f.backend.On("Chat", ctx, mock.MatchedBy(func(req model.ChatRequest) bool {
			return req.AIMode == model.ModeBalanced &&
				len(req.Messages) == 1 &&
				lastTurn(req) == model.ChatTurn{Role: model.RoleUser, Content: "Apa itu atom?"}
		})).Return("Atom adalah partikel terkecil.", nil).Once()

		f.ctrl.SetInput("Apa itu atom?")
		require.True(t, f.ctrl.Send(ctx))

		msgs := f.ctrl.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, model.SenderUser, msgs[0].Sender)
		assert.Equal(t, "Apa itu atom?", msgs[0].Text)
		assert.Equal(t, model.SenderBot, msgs[1].Sender)
		assert.Equal(t, "Atom adalah partikel terkecil.", msgs[1].Text)
		assert.Nil(t, msgs[1].Payload)
		assert.Empty(t, f.ctrl.Input())
		assert.False(t, f.ctrl.IsTyping())
	})

	t.Run("History carries earlier turns", func(t *testing.T) {
		f := setupController(t)
		f.backend.On("Chat", ctx, mock.Anything).Return("pertama", nil).Once()
		f.ctrl.SetInput("satu")
		f.ctrl.Send(ctx)

		f.backend.On("Chat", ctx, mock.MatchedBy(func(req model.ChatRequest) bool {
			return len(req.Messages) == 3 &&
				req.Messages[0] == model.ChatTurn{Role: model.RoleUser, Content: "satu"} &&
				req.Messages[1] == model.ChatTurn{Role: model.RoleAssistant, Content: "pertama"} &&
				req.Messages[2] == model.ChatTurn{Role: model.RoleUser, Content: "dua"}
		})).Return("kedua", nil).Once()
		f.ctrl.SetInput("dua")
		require.True(t, f.ctrl.Send(ctx))
		assert.Len(t, f.ctrl.Messages(), 4)
	})

	t.Run("Quiz mode attaches parsed questions", func(t *testing.T) {
		f := setupController(t)
		require.NoError(t, f.ctrl.SetMode(model.ModeQuiz))
		reply := "```json\n[{\"question\":\"2+2?\",\"options\":[\"1\",\"2\",\"3\",\"4\"],\"correctAnswer\":3}]\n```"
		f.backend.On("Chat", ctx, mock.MatchedBy(func(req model.ChatRequest) bool {
			content := lastTurn(req).Content
			return req.AIMode == model.ModeQuiz &&
				strings.HasPrefix(content, "Matematika dasar") &&
				strings.Contains(content, "correctAnswer")
		})).Return(reply, nil).Once()

		f.ctrl.SetInput("Matematika dasar")
		require.True(t, f.ctrl.Send(ctx))

		bot := f.ctrl.Messages()[1]
		require.NotNil(t, bot.Payload)
		assert.Equal(t, model.PayloadQuiz, bot.Payload.Kind)
		require.Len(t, bot.Payload.QuizQuestions, 1)
		assert.Equal(t, 3, bot.Payload.QuizQuestions[0].CorrectAnswer)
	})

	t.Run("Quiz mode falls back to raw text", func(t *testing.T) {
		f := setupController(t)
		require.NoError(t, f.ctrl.SetMode(model.ModeQuiz))
		f.backend.On("Chat", ctx, mock.Anything).Return(`[{"question":"a","correctAnswer":"1"}]`, nil).Once()

		f.ctrl.SetInput("Sejarah")
		f.ctrl.Send(ctx)

		bot := f.ctrl.Messages()[1]
		assert.Nil(t, bot.Payload)
		assert.Equal(t, `[{"question":"a","correctAnswer":"1"}]`, bot.Text)
		assert.False(t, bot.Error)
	})

	t.Run("List mode attaches todo items with defaults", func(t *testing.T) {
		f := setupController(t)
		require.NoError(t, f.ctrl.SetMode(model.ModeList))
		f.backend.On("Chat", ctx, mock.MatchedBy(func(req model.ChatRequest) bool {
			return strings.Contains(lastTurn(req).Content, "2025-03-10")
		})).Return(`[{"title":"Baca bab 3"}]`, nil).Once()

		f.ctrl.SetInput("persiapan ujian")
		f.ctrl.Send(ctx)

		bot := f.ctrl.Messages()[1]
		require.NotNil(t, bot.Payload)
		assert.Equal(t, model.PayloadTodo, bot.Payload.Kind)
		assert.Equal(t, []model.TodoItem{{
			Title: "Baca bab 3", Category: "Lainnya", Priority: "medium", Deadline: "2025-03-17",
		}}, bot.Payload.TodoItems)
	})

	t.Run("Image goes to vision", func(t *testing.T) {
		f := setupController(t)
		img := &model.Image{Name: "soal.jpg", MimeType: "image/jpeg", Data: []byte{0xff}}
		f.backend.On("Vision", ctx, "jawab soal ini", []model.ChatTurn{}, img).Return("Jawabannya B", nil).Once()

		f.ctrl.SetInput("jawab soal ini")
		f.ctrl.StageImage(img)
		require.True(t, f.ctrl.Send(ctx))

		msgs := f.ctrl.Messages()
		require.Len(t, msgs, 2)
		assert.Same(t, img, msgs[0].Image)
		assert.Nil(t, f.ctrl.StagedImage())
		assert.Equal(t, "Jawabannya B", msgs[1].Text)
	})

	t.Run("Failure appends an error message and a toast", func(t *testing.T) {
		f := setupController(t)
		f.backend.On("Chat", ctx, mock.Anything).Return("", errors.New("upstream down")).Once()

		f.ctrl.SetInput("halo")
		require.True(t, f.ctrl.Send(ctx))

		msgs := f.ctrl.Messages()
		require.Len(t, msgs, 2)
		assert.True(t, msgs[1].Error)
		assert.Equal(t, conversation.ApologyText, msgs[1].Text)
		assert.Equal(t, "halo", msgs[1].RetryText)
		assert.False(t, f.ctrl.IsTyping())
		require.Len(t, f.notifier.toasts, 1)
		assert.Equal(t, conversation.LevelError, f.notifier.toasts[0].level)
	})
}

func TestController_Retry(t *testing.T) {
	ctx := context.Background()
	f := setupController(t)
	f.backend.On("Chat", ctx, mock.Anything).Return("", errors.New("timeout")).Once()
	f.ctrl.SetInput("halo")
	f.ctrl.Send(ctx)

	f.backend.On("Chat", ctx, mock.MatchedBy(func(req model.ChatRequest) bool {
		// Neither the failed reply nor the original prompt are repeated.
		return len(req.Messages) == 1 && req.Messages[0].Content == "halo"
	})).Return("Halo juga!", nil).Once()

	require.True(t, f.ctrl.Retry(ctx, "halo"))

	msgs := f.ctrl.Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[1].Error)
	assert.Equal(t, "Halo juga!", msgs[2].Text)
	assert.False(t, msgs[2].Error)
}

func TestController_SingleFlight(t *testing.T) {
	ctx := context.Background()
	f := setupController(t)

	started := make(chan struct{})
	release := make(chan struct{})
	f.backend.On("Chat", ctx, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return("selesai", nil).Once()

	f.ctrl.SetInput("pertama")
	done := make(chan bool)
	go func() { done <- f.ctrl.Send(ctx) }()

	<-started
	assert.True(t, f.ctrl.IsTyping())
	f.ctrl.SetInput("kedua")
	assert.False(t, f.ctrl.Send(ctx))
	assert.False(t, f.ctrl.Retry(ctx, "pertama"))

	close(release)
	assert.True(t, <-done)
	assert.False(t, f.ctrl.IsTyping())
	assert.Len(t, f.ctrl.Messages(), 2)
	assert.Equal(t, "kedua", f.ctrl.Input())
}

func TestController_MessageOperations(t *testing.T) {
	ctx := context.Background()
	f := setupController(t)
	f.backend.On("Chat", ctx, mock.Anything).Return("jawaban", nil).Once()
	f.ctrl.SetInput("pertanyaan")
	f.ctrl.Send(ctx)
	msgs := f.ctrl.Messages()
	userID, botID := msgs[0].ID, msgs[1].ID

	t.Run("Edit", func(t *testing.T) {
		assert.ErrorIs(t, f.ctrl.SaveEdit(userID, "x"), conversation.ErrNotEditing)
		require.NoError(t, f.ctrl.BeginEdit(userID))
		msg, _ := f.ctrl.Message(userID)
		assert.True(t, msg.Editing)

		require.NoError(t, f.ctrl.SaveEdit(userID, "pertanyaan baru"))
		msg, _ = f.ctrl.Message(userID)
		assert.False(t, msg.Editing)
		assert.Equal(t, "pertanyaan baru", msg.Text)

		require.NoError(t, f.ctrl.BeginEdit(userID))
		require.NoError(t, f.ctrl.CancelEdit(userID))
		msg, _ = f.ctrl.Message(userID)
		assert.Equal(t, "pertanyaan baru", msg.Text)
	})

	t.Run("Copy", func(t *testing.T) {
		require.NoError(t, f.ctrl.Copy(botID))
		assert.Equal(t, "jawaban", f.clipboard.text)
	})

	t.Run("Speak", func(t *testing.T) {
		require.NoError(t, f.ctrl.Speak(ctx, botID))
		assert.Equal(t, []string{"jawaban"}, f.speaker.spoken)

		f.speaker.err = errors.New("no audio")
		assert.Error(t, f.ctrl.Speak(ctx, botID))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, f.ctrl.Delete(userID))
		assert.Len(t, f.ctrl.Messages(), 1)
		assert.ErrorIs(t, f.ctrl.Delete(userID), conversation.ErrMessageNotFound)
	})
}

func TestController_Mode(t *testing.T) {
	f := setupController(t)
	assert.Equal(t, model.ModeBalanced, f.ctrl.Mode())
	assert.ErrorIs(t, f.ctrl.SetMode("turbo"), conversation.ErrInvalidMode)
	assert.Equal(t, model.ModeBalanced, f.ctrl.Mode())
	require.NoError(t, f.ctrl.SetMode(model.ModePrecise))
	assert.Equal(t, model.ModePrecise, f.ctrl.Mode())
}

func TestController_MissingCapabilities(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewMockBackend(t)
	backend.On("Chat", ctx, mock.Anything).Return("ok", nil).Once()
	ctrl := conversation.New(conversation.Config{Backend: backend})
	ctrl.SetInput("hai")
	ctrl.Send(ctx)
	id := ctrl.Messages()[1].ID

	assert.ErrorIs(t, ctrl.Copy(id), conversation.ErrUnavailable)
	assert.ErrorIs(t, ctrl.Speak(ctx, id), conversation.ErrUnavailable)
}
