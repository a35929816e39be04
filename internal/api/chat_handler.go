package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	app_errors "plearn/backend/internal/errors"
	"plearn/backend/internal/interfaces"
	"plearn/backend/internal/model"
)

// MaxImageBytes bounds the uploaded image of /api/vision.
const MaxImageBytes = 10 << 20

// ChatHandler serves the chat, vision and text-to-speech endpoints.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// HandleChat godoc
// @Summary      Chat with the assistant
// @Description  Accepts either {prompt, aiMode} or {messages, aiMode} and always answers {reply}.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.ChatRequest  true  "Prompt or conversation"
// @Success      200      {object}  model.ChatReply
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	reply, err := h.service.Reply(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, model.ChatReply{Reply: reply})
}

// HandleVision godoc
// @Summary      Ask about an image
// @Description  Multipart form with prompt, messages (JSON array of turns) and image.
// @Tags         Chat
// @Accept       multipart/form-data
// @Produce      json
// @Param        prompt    formData  string  false  "Question about the image"
// @Param        messages  formData  string  false  "Conversation history as JSON"
// @Param        image     formData  file    true   "Image file"
// @Success      200       {object}  model.ChatReply
// @Failure      400       {object}  ErrorResponse
// @Failure      500       {object}  ErrorResponse
// @Router       /api/vision [post]
func (h *ChatHandler) HandleVision(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(MaxImageBytes); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid multipart form: %s", app_errors.ErrValidation, err.Error()))
		return
	}

	var history []model.ChatTurn
	if raw := r.FormValue("messages"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			respondWithError(w, fmt.Errorf("%w: messages must be a JSON array of turns", app_errors.ErrValidation))
			return
		}
		for i := range history {
			if err := validateRequest(&history[i]); err != nil {
				respondWithError(w, err)
				return
			}
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			respondWithError(w, fmt.Errorf("%w: image is required", app_errors.ErrValidation))
			return
		}
		respondWithError(w, fmt.Errorf("%w: could not read image: %s", app_errors.ErrValidation, err.Error()))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, fmt.Errorf("could not read image: %w", err))
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	reply, err := h.service.Describe(r.Context(), r.FormValue("prompt"), history, data, mimeType)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, model.ChatReply{Reply: reply})
}

// HandleTTS godoc
// @Summary      Text to speech
// @Description  Synthesizes text and returns base64 encoded MP3 audio.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.TTSRequest  true  "Text to read"
// @Success      200      {object}  model.TTSResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/tts [post]
func (h *ChatHandler) HandleTTS(w http.ResponseWriter, r *http.Request) {
	var req model.TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}

	resp, err := h.service.Speak(r.Context(), req.Text)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}
