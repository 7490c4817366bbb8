package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"codebot-backend/apperrors"
	"codebot-backend/models"
	"codebot-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterInput struct {
	Email           string `json:"email" binding:"required,email"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// ResolveInput identifies an account by exactly one external identity.
type ResolveInput struct {
	TelegramID *int64  `json:"telegram_id"`
	Email      *string `json:"email"`
	Username   string  `json:"username"`
}

func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	user, err := h.users.FindByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong email or password"})
		return
	}

	token, err := generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload", "details": err.Error()})
		return
	}

	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password confirmation does not match"})
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)

	email := input.Email
	newUser := models.User{
		Email:    &email,
		Username: input.Username,
		Password: string(hashedPassword),
	}

	if err := h.users.Create(&newUser); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already registered"})
		return
	}

	token, err := generateToken(&newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Registered! You have %d free requests.", newUser.FreeRequestsLimit),
		"token":   token,
		"user":    newUser,
	})
}

// ResolveUser is the lookup-or-create endpoint the chat frontend calls
// on first contact. POST /auth with telegram_id or email.
func (h *Handler) ResolveUser(c *gin.Context) {
	var input ResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		return
	}

	username := input.Username
	if username == "" {
		username = "Guest"
	}

	var (
		user    *models.User
		created bool
		err     error
	)
	switch {
	case input.TelegramID != nil:
		user, created, err = h.users.ResolveByTelegramID(*input.TelegramID, username)
	case input.Email != nil && *input.Email != "":
		user, created, err = h.users.ResolveByEmail(*input.Email, username)
	default:
		respondError(c, fmt.Errorf("%w: telegram_id or email required", apperrors.ErrValidation))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "created": created})
}

// GetUser fetches an account by id. GET /auth?user_id=N
func (h *Handler) GetUser(c *gin.Context) {
	raw := c.Query("user_id")
	if raw == "" {
		respondError(c, fmt.Errorf("%w: user_id required", apperrors.ErrValidation))
		return
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(c, fmt.Errorf("%w: user_id must be a number", apperrors.ErrValidation))
		return
	}

	user, err := h.users.FindByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func generateToken(user *models.User) (string, error) {
	return utils.GenerateToken(user.ID, user.Role)
}
