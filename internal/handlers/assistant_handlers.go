package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jaswan333/hospital-golang/internal/logger"
)

// ChatInput defines the structure of the JSON request body.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
	Model   string `json:"model"`
}

// ChatAssistant handles the interaction with the admin assistant.
// POST /api/assistant/chat
func (h *Handlers) ChatAssistant(c *gin.Context) {
	// The assistant is optional; without an API key the endpoint is dark.
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Assistant is not configured"})
		return
	}

	// 1. Get User Context (set by AuthMiddleware)
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	userRole, _ := c.Get("userRole")

	// 2. Parse Input
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation failed", "error": err.Error()})
		return
	}

	// 3. Call the Assistant
	response, tokens, err := h.Assistant.GenerateResponse(c.Request.Context(), input.Message, input.Model)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Assistant unavailable", "error": err.Error()})
		return
	}

	// 4. Save to History
	// Failures here are logged but do not fail the request; the caller
	// already has their answer.
	_, dbErr := h.DB.Exec(`
		INSERT INTO ai_chat_history (user_id, user_role, user_message, ai_response, tokens_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, userRole, input.Message, response, tokens, time.Now(),
	)
	if dbErr != nil {
		logger.FromCtx(c.Request.Context()).Warn("failed to save chat history", zap.Error(dbErr))
	}

	// 5. Return the Answer
	c.JSON(http.StatusOK, gin.H{
		"response":   response,
		"tokensUsed": tokens,
	})
}
