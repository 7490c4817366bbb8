package handlers

import (
	"errors"
	"net/http"

	"codebot-backend/apperrors"
	"codebot-backend/config"
	"codebot-backend/repository"
	"codebot-backend/services"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies for every endpoint. Wired once in
// main; no package-level state.
type Handler struct {
	cfg     *config.Config
	users   repository.UserRepository
	usage   repository.UsageRepository
	webhook *services.WebhookService
}

func NewHandler(cfg *config.Config, users repository.UserRepository, usage repository.UsageRepository, webhook *services.WebhookService) *Handler {
	return &Handler{cfg: cfg, users: users, usage: usage, webhook: webhook}
}

// respondError is the single boundary translator from error kind to
// HTTP status. The Telegram webhook does not use it; that boundary
// always acknowledges with 200.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrProvider):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// Helper to pull the authenticated user id set by the JWT middleware.
func getUserIDFromContext(c *gin.Context) uint {
	id, exists := c.Get("user_id")
	if !exists {
		return 0
	}
	return id.(uint)
}

func isAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == "admin"
}
