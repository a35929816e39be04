package model

// Wire types shared by the HTTP server and the HTTP client.

// Chat roles a caller may send. The system prompt is chosen by the server
// from the AI mode.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatTurn is a role-tagged conversation turn.
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/chat. Older callers send Prompt and
// AIMode, newer ones send the full Messages history.
type ChatRequest struct {
	Prompt   string     `json:"prompt,omitempty" example:"Jelaskan fotosintesis"`
	AIMode   AIMode     `json:"aiMode,omitempty" example:"balanced"`
	Messages []ChatTurn `json:"messages,omitempty" validate:"dive"`
}

// ChatReply is the single response contract of /api/chat and /api/vision.
type ChatReply struct {
	Reply string `json:"reply"`
}

// TTSRequest is the body of POST /api/tts.
type TTSRequest struct {
	Text string `json:"text" validate:"required" example:"Halo"`
}

// TTSResponse carries base64 encoded audio.
type TTSResponse struct {
	Audio    string `json:"audio"`
	MimeType string `json:"mimeType"`
}
