package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/user/profile
func (h *Handler) GetProfile(c *gin.Context) {
	userID := getUserIDFromContext(c)

	user, err := h.users.FindByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	remaining := user.FreeRequestsLimit - user.FreeRequestsUsed
	if remaining < 0 {
		remaining = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"user":               user,
		"requests_remaining": remaining,
	})
}

// GET /api/user/history
func (h *Handler) GetUsageHistory(c *gin.Context) {
	userID := getUserIDFromContext(c)

	records, err := h.usage.ListByUser(userID, 50)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}
