package services

import (
	"fmt"

	"codebot-backend/models"
)

// Allow reports whether the account may run another generation.
// Premium accounts are never limited; free accounts are limited to
// FreeRequestsLimit.
func Allow(user *models.User) bool {
	if user.IsPremium {
		return true
	}
	return user.FreeRequestsUsed < user.FreeRequestsLimit
}

// QuotaSummary renders the account's quota state for the status reply.
func QuotaSummary(user *models.User) string {
	status := "Free"
	if user.IsPremium {
		status = "Premium 💎"
	}
	return fmt.Sprintf("Requests used: %d/%d\nStatus: %s", user.FreeRequestsUsed, user.FreeRequestsLimit, status)
}
