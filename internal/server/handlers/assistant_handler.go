package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assistantsvc "github.com/mamadbah2/agrilink/internal/service/assistant"
	"github.com/mamadbah2/agrilink/pkg/clients/anthropic"
)

// AssistantHandler exposes the AI chat and summary endpoints.
type AssistantHandler struct {
	svc    *assistantsvc.Service
	logger *zap.Logger
}

// NewAssistantHandler constructs the HTTP adapter for the assistant.
func NewAssistantHandler(svc *assistantsvc.Service, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{svc: svc, logger: logger}
}

type chatRequest struct {
	Message string              `json:"message" binding:"required"`
	History []anthropic.Message `json:"history"`
}

// Chat forwards a farming question to the AI provider.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid chat payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid_argument", "message": "invalid request body"})
		return
	}

	reply, err := h.svc.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "reply generated", gin.H{"reply": reply})
}

// Summary returns a narrative summary of the current aggregates.
func (h *AssistantHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondOK(c, http.StatusOK, "summary generated", gin.H{"summary": summary})
}
