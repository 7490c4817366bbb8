package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"codebot-backend/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Action string `json:"action"`
}

type stripeSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreatePaymentSession handles POST /payment. Two actions share the
// endpoint: "upgrade_to_premium" flips the premium flag directly, any
// other action creates a Stripe Checkout session for the $9.99 premium
// plan. Session creation persists nothing; the upgrade is the separate
// explicit action.
func (h *Handler) CreatePaymentSession(c *gin.Context) {
	var input PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, fmt.Errorf("%w: user_id required", apperrors.ErrValidation))
		return
	}

	if input.Action == "upgrade_to_premium" {
		user, err := h.users.UpgradeToPremium(input.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User upgraded to premium",
			"user":    user,
		})
		return
	}

	// No Stripe key configured: hand back a mock URL so the frontend
	// flow keeps working in development.
	if h.cfg.StripeSecretKey == "" {
		c.JSON(http.StatusOK, gin.H{
			"payment_url": fmt.Sprintf("https://example.com/payment?user_id=%d", input.UserID),
			"mock":        true,
			"message":     "Stripe not configured, using mock URL",
		})
		return
	}

	session, err := h.createStripeSession(input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_url": session.URL,
		"session_id":  session.ID,
	})
}

func (h *Handler) createStripeSession(userID uint) (*stripeSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price_data][currency]", "usd")
	form.Set("line_items[0][price_data][unit_amount]", "999")
	form.Set("line_items[0][price_data][product_data][name]", "Premium Plan")
	form.Set("line_items[0][price_data][product_data][description]", "Unlimited AI code generation")
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", fmt.Sprintf("%s?user_id=%d", h.cfg.PaymentSuccessURL, userID))
	form.Set("cancel_url", h.cfg.PaymentCancelURL)
	form.Set("metadata[user_id]", strconv.FormatUint(uint64(userID), 10))

	req, _ := http.NewRequest("POST", "https://api.stripe.com/v1/checkout/sessions", strings.NewReader(form.Encode()))
	req.Header.Set("Authorization", "Bearer "+h.cfg.StripeSecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: stripe: %v", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: stripe: status %d", apperrors.ErrProvider, resp.StatusCode)
	}

	var session stripeSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: stripe: malformed response: %v", apperrors.ErrProvider, err)
	}
	return &session, nil
}
