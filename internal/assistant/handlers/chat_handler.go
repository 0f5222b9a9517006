package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"carreto-freight-api/internal/assistant/services"
	"carreto-freight-api/internal/session"
	"carreto-freight-api/pkg/response"
)

// ChatHandler exposes the logistics assistant
type ChatHandler struct {
	chat   *services.ChatService
	logger *slog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *services.ChatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, logger: logger}
}

type chatRequest struct {
	Message string `json:"message" example:"Como embalar uma geladeira?"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat godoc
//
//	@Summary		Ask the logistics assistant
//	@Description	Stateless chat: the session's route and cargo state is rebuilt as context on every call.
//	@Tags			assistant
//	@Accept			json
//	@Produce		json
//	@Param			request	body		chatRequest	true	"User message"
//	@Success		200		{object}	chatResponse
//	@Failure		503		{object}	response.Response	"Assistant not configured"
//	@Router			/assistant/chat [post]
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, response.ValidationError("body", "invalid request format"))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		response.BadRequest(w, response.ValidationError("message", "message is required"))
		return
	}

	s := session.FromContext(r.Context())
	reply, err := h.chat.Chat(r.Context(), s, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrNotConfigured) {
			response.ServiceUnavailable(w, "assistant is not configured")
			return
		}
		h.logger.Error("assistant request failed", slog.String("error", err.Error()))
		response.InternalError(w, "assistant is unavailable right now")
		return
	}

	response.Success(w, chatResponse{Reply: reply})
}
