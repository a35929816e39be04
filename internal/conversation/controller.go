// Package conversation holds the chat state (messages, input staging, mode)
// and drives the request/response cycle against the chat backend.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"plearn/backend/internal/model"
	"plearn/backend/internal/parser"
)

// ApologyText replaces the reply of a failed request.
const ApologyText = "Maaf, terjadi kesalahan saat memproses permintaan Anda. Silakan coba lagi."

// ErrorToast is shown when a request fails.
const ErrorToast = "Gagal mendapatkan balasan dari AI."

var (
	// ErrMessageNotFound is returned for an unknown message ID.
	ErrMessageNotFound = errors.New("conversation: message not found")
	// ErrInvalidMode is returned by SetMode for an unknown mode.
	ErrInvalidMode = errors.New("conversation: invalid mode")
	// ErrNotEditing is returned by SaveEdit when BeginEdit was not called.
	ErrNotEditing = errors.New("conversation: message is not being edited")
	// ErrUnavailable is returned when an optional capability is missing.
	ErrUnavailable = errors.New("conversation: capability unavailable")
)

// Backend sends prompts to the model.
type Backend interface {
	Chat(ctx context.Context, req model.ChatRequest) (string, error)
	Vision(ctx context.Context, prompt string, history []model.ChatTurn, img *model.Image) (string, error)
}

// Level is the severity of a notification.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Notifier shows transient notifications (toasts).
type Notifier interface {
	Notify(level Level, message string)
}

// Clipboard receives copied message text.
type Clipboard interface {
	WriteText(text string) error
}

// Speaker reads text aloud.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// Config holds the Controller's collaborators. Backend is required.
type Config struct {
	Backend   Backend
	Notifier  Notifier
	Clipboard Clipboard
	Speaker   Speaker
	Now       func() time.Time
	NewID     func() string
	Locale    string
	Logger    *slog.Logger
}

// Controller owns a single conversation. It is safe for concurrent use; the
// typing latch admits one request at a time.
type Controller struct {
	backend   Backend
	notifier  Notifier
	clipboard Clipboard
	speaker   Speaker
	parser    *parser.Parser
	now       func() time.Time
	newID     func() string
	locale    string
	logger    *slog.Logger

	mu       sync.Mutex
	messages []model.Message
	input    string
	image    *model.Image
	mode     model.AIMode
	typing   bool
}

// New creates a Controller in the default mode.
func New(cfg Config) *Controller {
	c := &Controller{
		backend:   cfg.Backend,
		notifier:  cfg.Notifier,
		clipboard: cfg.Clipboard,
		speaker:   cfg.Speaker,
		now:       cfg.Now,
		newID:     cfg.NewID,
		locale:    cfg.Locale,
		logger:    cfg.Logger,
		mode:      model.DefaultMode,
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.locale == "" {
		c.locale = parser.DefaultLocale
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.parser = parser.New(c.now)
	return c
}

// SetInput replaces the input buffer.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Input returns the input buffer.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// StageImage attaches img to the next Send.
func (c *Controller) StageImage(img *model.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = img
}

// ClearImage drops the staged image.
func (c *Controller) ClearImage() {
	c.StageImage(nil)
}

// StagedImage returns the image attached to the next Send, if any.
func (c *Controller) StagedImage() *model.Image {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image
}

// SetMode switches the active mode.
func (c *Controller) SetMode(m model.AIMode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = m
	return nil
}

// Mode returns the active mode.
func (c *Controller) Mode() model.AIMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// IsTyping reports whether a request is in flight.
func (c *Controller) IsTyping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// Messages returns a copy of the conversation.
func (c *Controller) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Clear removes every message.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// Send posts the input buffer and staged image. It returns false without
// doing anything when both are empty or a request is already in flight.
func (c *Controller) Send(ctx context.Context) bool {
	c.mu.Lock()
	text := strings.TrimSpace(c.input)
	img := c.image
	if (text == "" && img == nil) || c.typing {
		c.mu.Unlock()
		return false
	}
	c.messages = append(c.messages, model.Message{
		ID:        c.newID(),
		Text:      text,
		Sender:    model.SenderUser,
		Timestamp: c.now(),
		Image:     img,
	})
	c.input = ""
	c.image = nil
	c.typing = true
	c.mu.Unlock()

	c.fetchAIReply(ctx, text, img)
	return true
}

// FetchAIReply asks the model to answer prompt (with an optional image) and
// appends the reply. It returns false if a request is already in flight.
func (c *Controller) FetchAIReply(ctx context.Context, prompt string, img *model.Image) bool {
	c.mu.Lock()
	if c.typing {
		c.mu.Unlock()
		return false
	}
	c.typing = true
	c.mu.Unlock()

	c.fetchAIReply(ctx, prompt, img)
	return true
}

// Retry replays prompt. The failed message stays in the conversation.
func (c *Controller) Retry(ctx context.Context, prompt string) bool {
	return c.FetchAIReply(ctx, prompt, nil)
}

// fetchAIReply runs one request cycle. The caller must have set typing.
func (c *Controller) fetchAIReply(ctx context.Context, prompt string, img *model.Image) {
	defer func() {
		c.mu.Lock()
		c.typing = false
		c.mu.Unlock()
	}()

	c.mu.Lock()
	mode := c.mode
	history := c.historyLocked(prompt)
	c.mu.Unlock()

	augmented := c.augment(prompt, mode)

	var (
		reply string
		err   error
	)
	if img != nil {
		reply, err = c.backend.Vision(ctx, augmented, history, img)
	} else {
		turns := append(history, model.ChatTurn{Role: model.RoleUser, Content: augmented})
		reply, err = c.backend.Chat(ctx, model.ChatRequest{AIMode: mode, Messages: turns})
	}
	if err != nil {
		c.logger.Error("Failed to fetch AI reply", "mode", mode, "error", err)
		c.appendMessage(model.Message{
			ID:        c.newID(),
			Text:      ApologyText,
			Sender:    model.SenderBot,
			Timestamp: c.now(),
			Error:     true,
			RetryText: prompt,
		})
		c.notify(LevelError, ErrorToast)
		return
	}

	c.appendMessage(model.Message{
		ID:        c.newID(),
		Text:      reply,
		Sender:    model.SenderBot,
		Timestamp: c.now(),
		Payload:   c.parse(reply, mode),
	})
}

// augment rewrites prompt for the structured modes.
func (c *Controller) augment(prompt string, mode model.AIMode) string {
	switch mode {
	case model.ModeQuiz:
		return parser.QuizPrompt(prompt, c.locale)
	case model.ModeList:
		return parser.ListPrompt(prompt, c.now())
	default:
		return prompt
	}
}

// parse extracts the payload the mode expects, or nil.
func (c *Controller) parse(reply string, mode model.AIMode) *model.Payload {
	switch mode {
	case model.ModeList:
		if items, ok := c.parser.TodoItems(reply); ok {
			return &model.Payload{Kind: model.PayloadTodo, TodoItems: items}
		}
	case model.ModeQuiz:
		if questions, ok := c.parser.QuizQuestions(reply); ok {
			return &model.Payload{Kind: model.PayloadQuiz, QuizQuestions: questions}
		}
	}
	return nil
}

// historyLocked maps the conversation to role-tagged turns. Failed replies
// are skipped, as is the latest user message carrying prompt, which is sent
// separately in its augmented form.
func (c *Controller) historyLocked(prompt string) []model.ChatTurn {
	skip := -1
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Sender == model.SenderUser && c.messages[i].Text == prompt {
			skip = i
			break
		}
	}

	turns := make([]model.ChatTurn, 0, len(c.messages))
	for i, msg := range c.messages {
		if i == skip || msg.Error || msg.Text == "" {
			continue
		}
		role := model.RoleUser
		if msg.Sender == model.SenderBot {
			role = model.RoleAssistant
		}
		turns = append(turns, model.ChatTurn{Role: role, Content: msg.Text})
	}
	return turns
}

func (c *Controller) appendMessage(msg model.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

func (c *Controller) notify(level Level, message string) {
	if c.notifier != nil {
		c.notifier.Notify(level, message)
	}
}

// indexLocked returns the position of id.
func (c *Controller) indexLocked(id string) (int, error) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrMessageNotFound, id)
}

// BeginEdit puts a message into editing state.
func (c *Controller) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.indexLocked(id)
	if err != nil {
		return err
	}
	c.messages[i].Editing = true
	return nil
}

// SaveEdit replaces the text of a message in editing state.
func (c *Controller) SaveEdit(id, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.indexLocked(id)
	if err != nil {
		return err
	}
	if !c.messages[i].Editing {
		return ErrNotEditing
	}
	c.messages[i].Text = text
	c.messages[i].Editing = false
	return nil
}

// CancelEdit leaves editing state without changing the text.
func (c *Controller) CancelEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.indexLocked(id)
	if err != nil {
		return err
	}
	c.messages[i].Editing = false
	return nil
}

// Delete removes a message.
func (c *Controller) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.indexLocked(id)
	if err != nil {
		return err
	}
	c.messages = append(c.messages[:i], c.messages[i+1:]...)
	return nil
}

// Message returns a copy of a single message.
func (c *Controller) Message(id string) (model.Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, err := c.indexLocked(id)
	if err != nil {
		return model.Message{}, err
	}
	return c.messages[i], nil
}

// Copy writes a message's text to the clipboard.
func (c *Controller) Copy(id string) error {
	msg, err := c.Message(id)
	if err != nil {
		return err
	}
	if c.clipboard == nil {
		return fmt.Errorf("%w: clipboard", ErrUnavailable)
	}
	if err := c.clipboard.WriteText(msg.Text); err != nil {
		return fmt.Errorf("could not copy message: %w", err)
	}
	c.notify(LevelInfo, "Pesan disalin.")
	return nil
}

// Speak reads a message aloud.
func (c *Controller) Speak(ctx context.Context, id string) error {
	msg, err := c.Message(id)
	if err != nil {
		return err
	}
	if c.speaker == nil {
		return fmt.Errorf("%w: speech synthesis", ErrUnavailable)
	}
	if err := c.speaker.Speak(ctx, msg.Text); err != nil {
		c.notify(LevelError, "Gagal memutar suara.")
		return fmt.Errorf("could not speak message: %w", err)
	}
	return nil
}
