package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"codebot-backend/apperrors"
	"codebot-backend/repository"
)

// IncomingMessage is one chat message after transport parsing.
type IncomingMessage struct {
	ChatID     int64
	TelegramID int64
	Username   string
	Text       string
}

// WebhookService sequences one inbound message: account resolution,
// classification, quota check, generation, persistence, reply.
type WebhookService struct {
	users     repository.UserRepository
	usage     repository.UsageRepository
	generator Generator
	replier   Replier
}

func NewWebhookService(users repository.UserRepository, usage repository.UsageRepository, generator Generator, replier Replier) *WebhookService {
	return &WebhookService{users: users, usage: usage, generator: generator, replier: replier}
}

func isStatusCommand(text string) bool {
	return strings.HasPrefix(text, "/start") || strings.HasPrefix(text, "/help")
}

// ProcessMessage handles one message end to end. The returned error is
// diagnostic only; the transport boundary acknowledges the webhook
// either way.
func (s *WebhookService) ProcessMessage(ctx context.Context, msg IncomingMessage) error {
	user, created, err := s.users.ResolveByTelegramID(msg.TelegramID, msg.Username)
	if err != nil {
		return err
	}

	// First contact: greet and explain the free quota. No generation,
	// nothing consumed.
	if created {
		welcome := fmt.Sprintf(
			"Hi, %s! 🚀\n\nI generate code with AI.\n\nYou have %d free requests.\n\nJust send me a task description!",
			user.Username, user.FreeRequestsLimit)
		return s.replier.SendMessage(msg.ChatID, welcome)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}

	if isStatusCommand(text) {
		status := fmt.Sprintf("Hi, %s! 👋\n\n%s\n\nSend a task description to generate code!",
			user.Username, QuotaSummary(user))
		return s.replier.SendMessage(msg.ChatID, status)
	}

	// Generation request.
	if !Allow(user) {
		return s.replier.SendMessage(msg.ChatID, limitNotice)
	}

	code, err := s.generator.Generate(ctx, text)
	if err != nil {
		// Failed generations leave no trace: no ledger row, no
		// counter mutation, just a visible notice.
		log.Printf("ERROR: [Webhook] Generation failed for user %d: %v", user.ID, err)
		if serr := s.replier.SendMessage(msg.ChatID, "⚠️ Code generation failed. Please try again later."); serr != nil {
			return serr
		}
		return err
	}

	if _, err := s.usage.RecordGeneration(user, text, code); err != nil {
		if errors.Is(err, apperrors.ErrQuotaExceeded) {
			// A concurrent delivery took the last free slot between the
			// policy check and the write.
			return s.replier.SendMessage(msg.ChatID, limitNotice)
		}
		log.Printf("ERROR: [Webhook] Persisting generation for user %d failed: %v", user.ID, err)
		if serr := s.replier.SendMessage(msg.ChatID, "⚠️ Something went wrong saving your request. Please try again."); serr != nil {
			return serr
		}
		return err
	}

	return s.replier.SendMessage(msg.ChatID, "✅ Code generated:\n\n"+code)
}

const limitNotice = "⚠️ Free request limit reached!\n\nUpgrade to Premium for unlimited code generation."
