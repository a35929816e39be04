// Package quiz runs a multiple-choice quiz loaded from local storage.
//
// The runtime moves idle → quiz → result. Reset returns to idle. Answering
// locks the current question and advances after AdvanceDelay; the stored
// payload is removed only when the quiz completes or is finished early.
package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"plearn/backend/internal/model"
	"plearn/backend/internal/parser"
)

// StorageKey holds the pending quiz as a JSON array.
const StorageKey = "activeQuiz"

// Skipped marks a question left unanswered by Finish.
const Skipped = -1

// AdvanceDelay is the pause between an answer and the next question.
const AdvanceDelay = 1500 * time.Millisecond

// TickInterval is the elapsed-time resolution.
const TickInterval = time.Second

// State is the runtime phase.
type State string

const (
	StateIdle   State = "idle"
	StateQuiz   State = "quiz"
	StateResult State = "result"
)

var (
	// ErrNotRunning is returned when an operation needs StateQuiz.
	ErrNotRunning = errors.New("quiz: not running")
	// ErrAnswered is returned when the current question is locked.
	ErrAnswered = errors.New("quiz: question already answered")
	// ErrOutOfRange is returned for an invalid question or option index.
	ErrOutOfRange = errors.New("quiz: index out of range")
)

// Storage is a string key-value store that survives restarts.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Stage persists questions so a later Load picks them up.
func Stage(s Storage, questions []model.QuizQuestion) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrOutOfRange)
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("could not marshal quiz: %w", err)
	}
	return s.Set(StorageKey, string(data))
}

// Snapshot is a copy of the runtime state.
type Snapshot struct {
	State     State                `json:"state"`
	Questions []model.QuizQuestion `json:"questions"`
	Index     int                  `json:"index"`
	Score     int                  `json:"score"`
	// Answers holds the chosen option per question; nil means not yet answered.
	Answers   []*int        `json:"answers"`
	Answered  bool          `json:"answered"`
	Uncertain []int         `json:"uncertain"`
	Elapsed   time.Duration `json:"elapsed"`
}

// Runtime is the quiz state machine. It is safe for concurrent use.
type Runtime struct {
	storage Storage
	sched   Scheduler
	parser  *parser.Parser
	logger  *slog.Logger

	mu        sync.Mutex
	state     State
	questions []model.QuizQuestion
	index     int
	score     int
	answers   []*int
	answered  bool
	uncertain map[int]bool
	elapsed   int
	ticker    Timer
	advance   Timer
	// gen invalidates callbacks scheduled before the last transition.
	gen int
}

// NewRuntime creates an idle runtime. A nil sched uses RealScheduler.
func NewRuntime(storage Storage, sched Scheduler) *Runtime {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Runtime{
		storage:   storage,
		sched:     sched,
		parser:    parser.New(nil),
		logger:    slog.Default(),
		state:     StateIdle,
		uncertain: make(map[int]bool),
	}
}

// Load hydrates the quiz from storage. It returns false, leaving the runtime
// idle, when nothing valid is stored. The payload stays in storage.
func (r *Runtime) Load() (bool, error) {
	raw, ok, err := r.storage.Get(StorageKey)
	if err != nil {
		return false, fmt.Errorf("could not read stored quiz: %w", err)
	}
	if !ok || raw == "" {
		return false, nil
	}
	questions, ok := r.parser.QuizQuestions(raw)
	if !ok {
		r.logger.Warn("Ignoring malformed stored quiz")
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	r.questions = questions
	r.answers = make([]*int, len(questions))
	r.state = StateQuiz
	gen := r.gen
	r.ticker = r.sched.Every(TickInterval, func() { r.tick(gen) })
	return true, nil
}

// Answer records choice for the current question, scores it and schedules
// the advance to the next question or to the result.
func (r *Runtime) Answer(choice int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateQuiz {
		return ErrNotRunning
	}
	if r.answered {
		return ErrAnswered
	}
	q := r.questions[r.index]
	if choice < 0 || choice >= len(q.Options) {
		return fmt.Errorf("%w: option %d", ErrOutOfRange, choice)
	}

	c := choice
	r.answers[r.index] = &c
	if choice == q.CorrectAnswer {
		r.score++
	}
	r.answered = true

	gen := r.gen
	r.advance = r.sched.AfterFunc(AdvanceDelay, func() { r.next(gen) })
	return nil
}

// next moves past an answered question.
func (r *Runtime) next(gen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.state != StateQuiz {
		return
	}
	r.advance = nil
	if r.index < len(r.questions)-1 {
		r.index++
		r.answered = r.answers[r.index] != nil
		return
	}
	r.completeLocked()
}

// Finish ends the quiz early. Unanswered questions become Skipped; the score
// is unchanged.
func (r *Runtime) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateQuiz {
		return ErrNotRunning
	}
	for i := range r.answers {
		if r.answers[i] == nil {
			skipped := Skipped
			r.answers[i] = &skipped
		}
	}
	r.completeLocked()
	return nil
}

// completeLocked transitions to StateResult and consumes the stored payload.
func (r *Runtime) completeLocked() {
	r.stopTimersLocked()
	r.state = StateResult
	if err := r.storage.Remove(StorageKey); err != nil {
		r.logger.Error("Failed to clear stored quiz", "error", err)
	}
}

// Reset clears every piece of quiz state and returns to StateIdle.
func (r *Runtime) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *Runtime) clearLocked() {
	r.stopTimersLocked()
	r.state = StateIdle
	r.questions = nil
	r.index = 0
	r.score = 0
	r.answers = nil
	r.answered = false
	r.uncertain = make(map[int]bool)
	r.elapsed = 0
}

func (r *Runtime) stopTimersLocked() {
	r.gen++
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
	if r.advance != nil {
		r.advance.Stop()
		r.advance = nil
	}
}

func (r *Runtime) tick(gen int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen || r.state != StateQuiz {
		return
	}
	r.elapsed++
}

// GoTo jumps to question i. It is refused while the current question is
// answered so answers cannot be revisited.
func (r *Runtime) GoTo(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != StateQuiz {
		return ErrNotRunning
	}
	if r.answered {
		return ErrAnswered
	}
	if i < 0 || i >= len(r.questions) {
		return fmt.Errorf("%w: question %d", ErrOutOfRange, i)
	}
	r.index = i
	r.answered = r.answers[i] != nil
	return nil
}

// ToggleUncertain flips the uncertain mark of question i. Marks do not
// affect scoring.
func (r *Runtime) ToggleUncertain(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.questions) {
		return fmt.Errorf("%w: question %d", ErrOutOfRange, i)
	}
	if r.uncertain[i] {
		delete(r.uncertain, i)
	} else {
		r.uncertain[i] = true
	}
	return nil
}

// State returns the current phase.
func (r *Runtime) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Snapshot returns a copy of the runtime state.
func (r *Runtime) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	answers := make([]*int, len(r.answers))
	for i, a := range r.answers {
		if a != nil {
			v := *a
			answers[i] = &v
		}
	}
	uncertain := make([]int, 0, len(r.uncertain))
	for i := range r.questions {
		if r.uncertain[i] {
			uncertain = append(uncertain, i)
		}
	}
	questions := make([]model.QuizQuestion, len(r.questions))
	copy(questions, r.questions)

	return Snapshot{
		State:     r.state,
		Questions: questions,
		Index:     r.index,
		Score:     r.score,
		Answers:   answers,
		Answered:  r.answered,
		Uncertain: uncertain,
		Elapsed:   time.Duration(r.elapsed) * TickInterval,
	}
}

// Close stops the timers without changing state.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTimersLocked()
}
