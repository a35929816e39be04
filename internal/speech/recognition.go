// Package speech adapts speech recognition and synthesis capabilities for the
// chat front-end.
package speech

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Fixed user-facing error strings.
const (
	ErrTextUnsupported = "Speech recognition is not supported in this browser."
	ErrTextStart       = "Gagal memulai pengenalan suara."
)

// DefaultLocale is the recognition language.
const DefaultLocale = "id-ID"

// RestartDelay separates stop and start when the engine was already running.
const RestartDelay = 100 * time.Millisecond

// ErrAlreadyStarted is returned by Engine.Start while recognition runs.
var ErrAlreadyStarted = errors.New("speech: recognition already started")

// Alternative is one hypothesis for a recognized segment.
type Alternative struct {
	Transcript string
	Confidence float64
}

// Result is a recognized segment with its alternatives.
type Result struct {
	Alternatives []Alternative
	Final        bool
}

// EngineConfig configures a recognition engine.
type EngineConfig struct {
	Continuous     bool
	InterimResults bool
	Lang           string
}

// Handlers receive engine events. Results always carries every segment of
// the current session.
type Handlers struct {
	OnResult func(results []Result)
	OnError  func(err error)
	OnEnd    func()
}

// Engine is a speech recognition backend.
type Engine interface {
	Configure(cfg EngineConfig, h Handlers)
	Start() error
	Stop() error
	Abort() error
}

// Capability is a recognition engine resolved once at startup.
type Capability struct {
	engine Engine
}

// Supported wraps an available engine.
func Supported(e Engine) Capability { return Capability{engine: e} }

// Unsupported reports that no engine exists.
func Unsupported() Capability { return Capability{} }

// Available reports whether an engine is present.
func (c Capability) Available() bool { return c.engine != nil }

// Recognizer turns engine events into a running transcript.
type Recognizer struct {
	engine    Engine
	afterFunc func(d time.Duration, f func())
	logger    *slog.Logger

	mu           sync.Mutex
	transcript   string
	listening    bool
	errText      string
	onTranscript func(string)
}

// RecognizerOption customizes a Recognizer.
type RecognizerOption func(*Recognizer)

// WithAfterFunc replaces the timer used for the restart delay.
func WithAfterFunc(f func(d time.Duration, fn func())) RecognizerOption {
	return func(r *Recognizer) { r.afterFunc = f }
}

// WithTranscriptHandler is called with the running transcript on every update.
func WithTranscriptHandler(f func(string)) RecognizerOption {
	return func(r *Recognizer) { r.onTranscript = f }
}

// NewRecognizer configures the engine of c, if any.
func NewRecognizer(c Capability, opts ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		engine: c.engine,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		r.errText = ErrTextUnsupported
		return r
	}
	r.engine.Configure(EngineConfig{
		Continuous:     false,
		InterimResults: true,
		Lang:           DefaultLocale,
	}, Handlers{
		OnResult: r.handleResult,
		OnError:  r.handleError,
		OnEnd:    r.handleEnd,
	})
	return r
}

// Supported reports whether recognition can run.
func (r *Recognizer) Supported() bool { return r.engine != nil }

// Start begins listening. An already running engine is stopped and started
// again after RestartDelay.
func (r *Recognizer) Start() {
	if r.engine == nil {
		return
	}
	r.mu.Lock()
	r.transcript = ""
	r.errText = ""
	r.mu.Unlock()

	err := r.engine.Start()
	switch {
	case err == nil:
		r.setListening(true)
	case errors.Is(err, ErrAlreadyStarted):
		if stopErr := r.engine.Stop(); stopErr != nil {
			r.logger.Debug("Failed to stop recognition before restart", "error", stopErr)
		}
		r.afterFunc(RestartDelay, func() {
			if err := r.engine.Start(); err != nil {
				r.fail(ErrTextStart, err)
				return
			}
			r.setListening(true)
		})
	default:
		r.fail(ErrTextStart, err)
	}
}

// Stop ends listening and keeps the transcript.
func (r *Recognizer) Stop() {
	if r.engine == nil {
		return
	}
	if err := r.engine.Stop(); err != nil {
		r.logger.Debug("Failed to stop recognition", "error", err)
	}
	r.setListening(false)
}

// Close aborts the engine. Abort errors are ignored.
func (r *Recognizer) Close() {
	if r.engine == nil {
		return
	}
	_ = r.engine.Abort()
	r.setListening(false)
}

// Transcript returns the text recognized so far.
func (r *Recognizer) Transcript() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transcript
}

// Listening reports whether the engine is running.
func (r *Recognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listening
}

// Err returns the user-facing error string, or "".
func (r *Recognizer) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errText
}

func (r *Recognizer) handleResult(results []Result) {
	var b strings.Builder
	for _, res := range results {
		for _, alt := range res.Alternatives {
			b.WriteString(alt.Transcript)
		}
	}
	text := b.String()

	r.mu.Lock()
	r.transcript = text
	cb := r.onTranscript
	r.mu.Unlock()

	if cb != nil {
		cb(text)
	}
}

func (r *Recognizer) handleError(err error) {
	r.fail(ErrTextStart, err)
}

func (r *Recognizer) handleEnd() {
	r.setListening(false)
}

func (r *Recognizer) setListening(v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listening = v
}

func (r *Recognizer) fail(text string, err error) {
	r.logger.Warn("Speech recognition error", "error", err)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errText = text
	r.listening = false
}
