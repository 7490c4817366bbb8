package handlers

import (
	"net/http"

	"codebot-backend/services"

	"github.com/gin-gonic/gin"
)

// TelegramWebhook receives bot updates. The transport is always
// acknowledged with 200 — Telegram redelivers anything else, and a
// redelivered update would duplicate generation side effects. Internal
// errors ride along in the body for diagnostics only.
func (h *Handler) TelegramWebhook(c *gin.Context) {
	var payload struct {
		Message *struct {
			Text string `json:"text"`
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
			From struct {
				ID       int64  `json:"id"`
				Username string `json:"username"`
			} `json:"from"`
		} `json:"message"`
	}

	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "status": "ignored"})
		return
	}

	// Edits, channel posts, callback queries: not ours, ack and move on.
	if payload.Message == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	username := payload.Message.From.Username
	if username == "" {
		username = "User"
	}

	msg := services.IncomingMessage{
		ChatID:     payload.Message.Chat.ID,
		TelegramID: payload.Message.From.ID,
		Username:   username,
		Text:       payload.Message.Text,
	}

	if err := h.webhook.ProcessMessage(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
