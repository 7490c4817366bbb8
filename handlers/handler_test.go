package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codebot-backend/config"
	"codebot-backend/models"
	"codebot-backend/repository"
	"codebot-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	users  repository.UserRepository
	usage  repository.UsageRepository
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UsageRecord{}))

	cfg := &config.Config{
		FreeRequestsLimit: 10,
		JWTSecret:         "test-secret",
		PaymentSuccessURL: "https://codebot.app/success",
		PaymentCancelURL:  "https://codebot.app/cancel",
	}

	users := repository.NewUserRepository(db, cfg.FreeRequestsLimit)
	usage := repository.NewUsageRepository(db)
	webhook := services.NewWebhookService(users, usage, services.StubGenerator{}, services.NoopReplier{})

	h := NewHandler(cfg, users, usage, webhook)

	r := gin.New()
	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/auth", h.ResolveUser)
	r.GET("/auth", h.GetUser)
	r.POST("/payment", h.CreatePaymentSession)
	r.POST("/telegram/webhook", h.TelegramWebhook)

	return &testEnv{users: users, usage: usage, router: r}
}

func (e *testEnv) post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
