package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"plearn/backend/internal/model"
)

// TTS fetches synthesized speech.
type TTS interface {
	Speak(ctx context.Context, text string) (*model.TTSResponse, error)
}

// Player plays an object URL and calls onEnded when playback finishes. A
// returned error means playback did not start.
type Player interface {
	Play(ctx context.Context, url string, onEnded func()) error
}

// ObjectURLs holds decoded audio blobs behind short-lived URLs.
type ObjectURLs struct {
	mu    sync.Mutex
	blobs map[string]model.Audio
}

// NewObjectURLs returns an empty registry.
func NewObjectURLs() *ObjectURLs {
	return &ObjectURLs{blobs: make(map[string]model.Audio)}
}

// Create registers a blob and returns its URL.
func (o *ObjectURLs) Create(a model.Audio) string {
	url := "blob:" + uuid.NewString()
	o.mu.Lock()
	defer o.mu.Unlock()
	o.blobs[url] = a
	return url
}

// Lookup returns the blob behind url.
func (o *ObjectURLs) Lookup(url string) (model.Audio, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	a, ok := o.blobs[url]
	return a, ok
}

// Revoke releases url.
func (o *ObjectURLs) Revoke(url string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.blobs, url)
}

// Len returns the number of live URLs.
func (o *ObjectURLs) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.blobs)
}

// Synthesizer reads text aloud through a TTS endpoint.
type Synthesizer struct {
	tts    TTS
	player Player
	urls   *ObjectURLs
	logger *slog.Logger
}

// NewSynthesizer wires a Synthesizer. urls must be the registry player
// resolves URLs from.
func NewSynthesizer(tts TTS, player Player, urls *ObjectURLs) *Synthesizer {
	return &Synthesizer{tts: tts, player: player, urls: urls, logger: slog.Default()}
}

// Speak fetches audio for text and starts playback. Fetch and decode errors
// are returned; playback errors are only logged.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	resp, err := s.tts.Speak(ctx, text)
	if err != nil {
		return fmt.Errorf("could not fetch speech: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(resp.Audio)
	if err != nil {
		return fmt.Errorf("could not decode speech audio: %w", err)
	}
	mimeType := resp.MimeType
	if mimeType == "" {
		mimeType = "audio/mpeg"
	}

	url := s.urls.Create(model.Audio{Data: data, MimeType: mimeType})
	if err := s.player.Play(ctx, url, func() { s.urls.Revoke(url) }); err != nil {
		s.logger.Error("Audio playback failed", "error", err)
		s.urls.Revoke(url)
	}
	return nil
}
