package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"codebot-backend/apperrors"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/users
func (h *Handler) GetAllUsers(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	users, err := h.users.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": users})
}

// GET /api/admin/users/:id/stats
func (h *Handler) GetUserStats(c *gin.Context) {
	if !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, fmt.Errorf("%w: id must be a number", apperrors.ErrValidation))
		return
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	generations, err := h.usage.CountByUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"stats": gin.H{
			"total_generations":   generations,
			"free_requests_used":  user.FreeRequestsUsed,
			"free_requests_limit": user.FreeRequestsLimit,
			"is_premium":          user.IsPremium,
		},
	})
}
