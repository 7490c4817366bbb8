package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayment_MockSessionWithoutStripeKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/payment", map[string]interface{}{"user_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["mock"])
	assert.Contains(t, body["payment_url"], "user_id=1")
}

func TestPayment_RequiresUserID(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/payment", map[string]interface{}{"action": "create_session"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayment_UpgradeToPremium(t *testing.T) {
	env := newTestEnv(t)

	user, _, err := env.users.ResolveByTelegramID(555, "alice")
	require.NoError(t, err)
	require.False(t, user.IsPremium)

	w := env.post(t, "/payment", map[string]interface{}{
		"user_id": user.ID,
		"action":  "upgrade_to_premium",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	fresh, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.True(t, fresh.IsPremium)
}

func TestPayment_UpgradeUnknownUserIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/payment", map[string]interface{}{
		"user_id": 999,
		"action":  "upgrade_to_premium",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}
