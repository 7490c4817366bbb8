package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds every external setting the service reads from the
// environment. Loaded once in main after godotenv.
type Config struct {
	DatabasePath      string
	TelegramBotToken  string
	GeminiAPIKey      string
	StripeSecretKey   string
	JWTSecret         string
	FreeRequestsLimit int
	PaymentSuccessURL string
	PaymentCancelURL  string
}

// DefaultFreeRequests is the free generation quota for new accounts
// when FREE_REQUESTS_LIMIT is not set.
const DefaultFreeRequests = 10

func LoadConfig() *Config {
	cfg := &Config{
		DatabasePath:      getEnv("DATABASE_PATH", "codebot.db"),
		TelegramBotToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		StripeSecretKey:   os.Getenv("STRIPE_SECRET_KEY"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret-change-me"),
		FreeRequestsLimit: DefaultFreeRequests,
		PaymentSuccessURL: getEnv("PAYMENT_SUCCESS_URL", "https://codebot.app/success"),
		PaymentCancelURL:  getEnv("PAYMENT_CANCEL_URL", "https://codebot.app/cancel"),
	}

	if raw := os.Getenv("FREE_REQUESTS_LIMIT"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			log.Printf("WARN: [Config] Invalid FREE_REQUESTS_LIMIT %q, using default %d", raw, DefaultFreeRequests)
		} else {
			cfg.FreeRequestsLimit = limit
		}
	}

	if cfg.TelegramBotToken == "" {
		log.Println("WARN: [Config] TELEGRAM_BOT_TOKEN not set, webhook replies disabled")
	}
	if cfg.GeminiAPIKey == "" {
		log.Println("WARN: [Config] GEMINI_API_KEY not set, using stub code generator")
	}
	if cfg.StripeSecretKey == "" {
		log.Println("WARN: [Config] STRIPE_SECRET_KEY not set, payment sessions will return a mock URL")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
