package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	app_errors "plearn/backend/internal/errors"
	"plearn/backend/internal/llm"
	"plearn/backend/internal/metrics"
	"plearn/backend/internal/model"
)

// DefaultVisionPrompt is used when an image arrives without text.
const DefaultVisionPrompt = "Jelaskan gambar ini."

// Models names the upstream models and voice the service uses.
type Models struct {
	Chat   string
	Vision string
	TTS    string
	Voice  string
}

type ChatService struct {
	llm     llm.Provider
	trimmer *llm.HistoryTrimmer
	models  Models
}

// NewChatService creates a ChatService. A nil trimmer sends history untrimmed.
func NewChatService(provider llm.Provider, trimmer *llm.HistoryTrimmer, models Models) *ChatService {
	return &ChatService{llm: provider, trimmer: trimmer, models: models}
}

// Reply answers a chat request. Requests carry either a bare Prompt (older
// callers) or a Messages history; a Prompt sent alongside Messages is
// appended as the final user turn.
func (s *ChatService) Reply(ctx context.Context, req *model.ChatRequest) (string, error) {
	mode := req.AIMode
	if mode == "" {
		mode = model.DefaultMode
	}
	if !mode.Valid() {
		return "", fmt.Errorf("%w: unknown aiMode %q", app_errors.ErrValidation, mode)
	}

	turns := toMessages(req.Messages)
	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		turns = append(turns, llm.Message{Role: llm.RoleUser, Content: prompt})
	}
	if len(turns) == 0 {
		return "", fmt.Errorf("%w: prompt or messages is required", app_errors.ErrValidation)
	}

	profile := profileFor(mode)
	msgs := s.trim(append([]llm.Message{{Role: llm.RoleSystem, Content: profile.system}}, turns...))

	reply, err := s.llm.Chat(ctx, &llm.ChatRequest{
		Model:       s.models.Chat,
		Messages:    msgs,
		Temperature: profile.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("could not generate reply: %w", err)
	}
	metrics.ChatReplies.WithLabelValues(string(mode)).Inc()
	slog.Debug("Generated chat reply", "mode", mode, "turns", len(msgs), "reply_len", len(reply))
	return reply, nil
}

// Describe answers prompt about an image, with history as context.
func (s *ChatService) Describe(ctx context.Context, prompt string, history []model.ChatTurn, image []byte, mimeType string) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: image is required", app_errors.ErrValidation)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: unsupported image type %q", app_errors.ErrValidation, mimeType)
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = DefaultVisionPrompt
	}

	profile := profileFor(model.DefaultMode)
	msgs := s.trim(append([]llm.Message{{Role: llm.RoleSystem, Content: profile.system}}, toMessages(history)...))

	reply, err := s.llm.Vision(ctx, &llm.VisionRequest{
		Model:       s.models.Vision,
		Messages:    msgs,
		Prompt:      prompt,
		Image:       image,
		MimeType:    mimeType,
		Temperature: profile.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("could not describe image: %w", err)
	}
	metrics.ChatReplies.WithLabelValues("vision").Inc()
	return reply, nil
}

// Speak synthesizes text as base64 MP3 audio.
func (s *ChatService) Speak(ctx context.Context, text string) (*model.TTSResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", app_errors.ErrValidation)
	}
	audio, err := s.llm.Speech(ctx, &llm.SpeechRequest{
		Model: s.models.TTS,
		Voice: s.models.Voice,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("could not synthesize speech: %w", err)
	}
	return &model.TTSResponse{
		Audio:    base64.StdEncoding.EncodeToString(audio),
		MimeType: "audio/mpeg",
	}, nil
}

func (s *ChatService) trim(msgs []llm.Message) []llm.Message {
	if s.trimmer == nil {
		return msgs
	}
	return s.trimmer.Trim(msgs)
}

// toMessages drops empty turns.
func toMessages(turns []model.ChatTurn) []llm.Message {
	out := make([]llm.Message, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		out = append(out, llm.Message{Role: t.Role, Content: t.Content})
	}
	return out
}
