package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"plearn/backend/internal/model"
	"plearn/backend/internal/retry"
)

// Chat sends req to /api/chat and returns the reply text.
func (c *Client) Chat(ctx context.Context, req model.ChatRequest) (string, error) {
	resp, err := c.sendJSON(ctx, c.policy, http.MethodPost, "/api/chat", req)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", resp.apiError()
	}
	return DecodeReply(resp.body)
}

// Vision sends prompt, the serialized history and img as multipart form data
// to /api/vision and returns the reply text.
func (c *Client) Vision(ctx context.Context, prompt string, history []model.ChatTurn, img *model.Image) (string, error) {
	body, contentType, err := visionForm(prompt, history, img)
	if err != nil {
		return "", err
	}
	resp, err := c.send(ctx, c.policy, http.MethodPost, "/api/vision", contentType, body)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", resp.apiError()
	}
	return DecodeReply(resp.body)
}

func visionForm(prompt string, history []model.ChatTurn, img *model.Image) ([]byte, string, error) {
	if history == nil {
		history = []model.ChatTurn{}
	}
	messages, err := json.Marshal(history)
	if err != nil {
		return nil, "", fmt.Errorf("could not marshal history: %w", err)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("messages", string(messages)); err != nil {
		return nil, "", err
	}
	if img != nil {
		name := img.Name
		if name == "" {
			name = "image"
		}
		mimeType := img.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, name))
		h.Set("Content-Type", mimeType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// Speak asks /api/tts to synthesize text.
func (c *Client) Speak(ctx context.Context, text string) (*model.TTSResponse, error) {
	resp, err := c.sendJSON(ctx, retry.Once, http.MethodPost, "/api/tts", model.TTSRequest{Text: text})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.apiError()
	}
	var out model.TTSResponse
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("could not decode tts response: %w", err)
	}
	return &out, nil
}

// DecodeReply normalizes the reply shapes the chat endpoints have used:
// {"reply"}, {"data": {"reply"}}, {"choices": [{"message": {"content"}}]},
// a bare JSON string, or plain text. Any other JSON is returned verbatim.
func DecodeReply(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", ErrEmptyReply
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return string(trimmed), nil
	}

	switch val := v.(type) {
	case string:
		return val, nil
	case map[string]any:
		if s, ok := val["reply"].(string); ok {
			return s, nil
		}
		if data, ok := val["data"].(map[string]any); ok {
			if s, ok := data["reply"].(string); ok {
				return s, nil
			}
		}
		if choices, ok := val["choices"].([]any); ok && len(choices) > 0 {
			if choice, ok := choices[0].(map[string]any); ok {
				if msg, ok := choice["message"].(map[string]any); ok {
					if s, ok := msg["content"].(string); ok {
						return s, nil
					}
				}
			}
		}
	}
	return string(trimmed), nil
}
