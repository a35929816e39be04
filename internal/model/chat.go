package model

import (
	"time"
)

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// AIMode selects how a prompt is augmented before it reaches the model.
type AIMode string

const (
	ModeFluent   AIMode = "fluent"
	ModeCreative AIMode = "creative"
	ModePrecise  AIMode = "precise"
	ModeBalanced AIMode = "balanced"
	ModeList     AIMode = "list"
	ModeQuiz     AIMode = "quiz"
)

// DefaultMode is the mode a fresh conversation starts in.
const DefaultMode = ModeBalanced

// Modes lists every supported mode in display order.
var Modes = []AIMode{ModeFluent, ModeCreative, ModePrecise, ModeBalanced, ModeList, ModeQuiz}

// Valid reports whether m is one of Modes.
func (m AIMode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// TodoItem is a to-do suggestion parsed out of a model reply. It is not
// persisted until the user submits it as a Task.
type TodoItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// PayloadKind tags the structured data attached to a bot message.
type PayloadKind string

const (
	PayloadTodo PayloadKind = "todo"
	PayloadQuiz PayloadKind = "quiz"
)

// Payload is structured data extracted from a model reply.
type Payload struct {
	Kind          PayloadKind    `json:"kind"`
	TodoItems     []TodoItem     `json:"todoItems,omitempty"`
	QuizQuestions []QuizQuestion `json:"quizQuestions,omitempty"`
}

// Image is a user-supplied picture sent to the vision endpoint.
type Image struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     []byte `json:"-"`
}

// Message is one entry of a conversation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Image     *Image    `json:"image,omitempty"`
	Payload   *Payload  `json:"payload,omitempty"`
	Error     bool      `json:"error,omitempty"`
	Editing   bool      `json:"editing,omitempty"`
	// RetryText is the prompt to replay when Error is set.
	RetryText string `json:"retry_text,omitempty"`
}

// Audio is decoded speech returned by the TTS endpoint.
type Audio struct {
	Data     []byte
	MimeType string
}
