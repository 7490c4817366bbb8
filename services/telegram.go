package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"codebot-backend/apperrors"
)

// Replier sends a message back to a chat. Fire-and-forget: the
// orchestrator only cares whether the send itself failed.
type Replier interface {
	SendMessage(chatID int64, text string) error
}

type telegramMessage struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// TelegramReplier posts replies through the Bot API sendMessage call.
type TelegramReplier struct {
	token  string
	client *http.Client
}

func NewTelegramReplier(token string) *TelegramReplier {
	return &TelegramReplier{
		token:  token,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *TelegramReplier) SendMessage(chatID int64, text string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", r.token)

	body, _ := json.Marshal(telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "Markdown",
	})

	resp, err := r.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("%w: telegram sendMessage: %v", apperrors.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: telegram sendMessage: status %d", apperrors.ErrProvider, resp.StatusCode)
	}
	return nil
}

// NoopReplier is used when no bot token is configured. Messages are
// logged and dropped.
type NoopReplier struct{}

func (NoopReplier) SendMessage(chatID int64, text string) error {
	log.Printf("INFO: [Replier] No bot token, dropping reply to chat %d (%d chars)", chatID, len(text))
	return nil
}
