// internal/handlers/assistant.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/utils"
)

type AssistantHandler struct {
	assistantService *services.AssistantService
}

func NewAssistantHandler(assistantService *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// POST /chat/sessions
func (h *AssistantHandler) CreateSession(c *gin.Context) {
	sessionID, messages, err := h.assistantService.CreateSession(c.Request.Context())
	if err != nil {
		// A missing credential or unreachable service is recoverable; the
		// widget simply stays without a session.
		utils.BadGatewayResponse(c, "The assistant is unavailable right now")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"session_id": sessionID,
		"messages":   messages,
	})
}

type SendMessageRequest struct {
	Text string `json:"text"`
}

// POST /chat/sessions/:id/messages
func (h *AssistantHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	reply, err := h.assistantService.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			utils.NotFoundResponse(c, "Chat session not found")
		case errors.Is(err, services.ErrEmptyMessage):
			utils.BadRequestResponse(c, "Message text is required", nil)
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{"message": reply})
}

// GET /chat/sessions/:id/messages
func (h *AssistantHandler) GetTranscript(c *gin.Context) {
	messages, err := h.assistantService.Transcript(c.Param("id"))
	if err != nil {
		utils.NotFoundResponse(c, "Chat session not found")
		return
	}

	utils.SuccessResponse(c, gin.H{"messages": messages})
}
