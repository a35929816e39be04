package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"plearn/backend/internal/metrics"
)

// Roles accepted by the upstream API.
const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// ErrEmptyCompletion is returned when the upstream answers without choices.
var ErrEmptyCompletion = errors.New("llm: completion has no choices")

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
}

// VisionRequest sends Messages followed by a user turn carrying Prompt and
// the image.
type VisionRequest struct {
	Model       string
	Messages    []Message
	Prompt      string
	Image       []byte
	MimeType    string
	Temperature float32
}

type SpeechRequest struct {
	Model string
	Voice string
	Input string
}

// Provider defines the interface for interacting with a language model.
type Provider interface {
	Chat(ctx context.Context, req *ChatRequest) (string, error)
	Vision(ctx context.Context, req *VisionRequest) (string, error)
	Speech(ctx context.Context, req *SpeechRequest) ([]byte, error)
}

type openAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider talks to any OpenAI-compatible endpoint at baseURL.
func NewOpenAIProvider(baseURL, apiKey string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIProvider{client: openai.NewClientWithConfig(cfg)}
}

func (p *openAIProvider) Chat(ctx context.Context, req *ChatRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	return p.complete(ctx, "chat", openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
	})
}

func (p *openAIProvider) Vision(ctx context.Context, req *VisionRequest) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", req.MimeType, base64.StdEncoding.EncodeToString(req.Image))
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role: RoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURI,
				Detail: openai.ImageURLDetailAuto,
			}},
		},
	})
	return p.complete(ctx, "vision", openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    msgs,
		Temperature: req.Temperature,
	})
}

func (p *openAIProvider) complete(ctx context.Context, op string, req openai.ChatCompletionRequest) (string, error) {
	start := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, req)
	observe(op, start, err)
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *openAIProvider) Speech(ctx context.Context, req *SpeechRequest) ([]byte, error) {
	start := time.Now()
	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(req.Model),
		Input:          req.Input,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	observe("speech", start, err)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("could not read speech audio: %w", err)
	}
	return audio, nil
}

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.LLMRequestsTotal.WithLabelValues(op, outcome).Inc()
	metrics.LLMRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
