package handler

import (
	"log"
	"net/http"

	"feelre/internal/model"
	"feelre/internal/service"

	"github.com/gin-gonic/gin"
)

// MessageHandler handles conversational turns
type MessageHandler struct {
	agent *service.AgentService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(agent *service.AgentService) *MessageHandler {
	return &MessageHandler{agent: agent}
}

// Message handles POST /api/v1/message. A request that fails shape
// validation is rejected before any extraction runs; internal failures
// surface as a generic error with detail only in logs.
func (h *MessageHandler) Message(c *gin.Context) {
	var req model.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	reply, err := h.agent.Respond(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error: message turn failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, reply)
}
