package repository

import (
	"errors"
	"fmt"
	"testing"

	"codebot-backend/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration_IncrementsCounterOnce(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, 10)
	usage := NewUsageRepository(db)

	user, _, err := users.ResolveByTelegramID(555, "alice")
	require.NoError(t, err)

	record, err := usage.RecordGeneration(user, "write a parser", "func Parse() {}")

	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	assert.Equal(t, "write a parser", record.Prompt)
	assert.Equal(t, 1, user.FreeRequestsUsed)

	fresh, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.FreeRequestsUsed)

	count, err := usage.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRecordGeneration_PremiumDoesNotConsumeQuota(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, 10)
	usage := NewUsageRepository(db)

	created, _, err := users.ResolveByTelegramID(555, "alice")
	require.NoError(t, err)
	user, err := users.UpgradeToPremium(created.ID)
	require.NoError(t, err)

	_, err = usage.RecordGeneration(user, "write a parser", "code")
	require.NoError(t, err)

	fresh, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.FreeRequestsUsed)

	count, err := usage.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// New account with limit 10: the first ten generations are charged,
// the eleventh rolls back entirely.
func TestRecordGeneration_StopsAtLimit(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, 10)
	usage := NewUsageRepository(db)

	user, _, err := users.ResolveByTelegramID(555, "alice")
	require.NoError(t, err)

	for i := 1; i <= 10; i++ {
		_, err := usage.RecordGeneration(user, fmt.Sprintf("task %d", i), "code")
		require.NoError(t, err)
		assert.Equal(t, i, user.FreeRequestsUsed)
	}

	_, err = usage.RecordGeneration(user, "task 11", "code")
	assert.True(t, errors.Is(err, apperrors.ErrQuotaExceeded))

	// Denied request leaves no partial writes behind.
	fresh, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fresh.FreeRequestsUsed)

	count, err := usage.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), count)
}

func TestRecordGeneration_StaleCounterCannotOvershoot(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, 1)
	usage := NewUsageRepository(db)

	user, _, err := users.ResolveByTelegramID(555, "alice")
	require.NoError(t, err)

	// Two handlers resolved the same account before either wrote. The
	// conditional UPDATE lets only one of them charge the last slot.
	stale, err := users.FindByID(user.ID)
	require.NoError(t, err)

	_, err = usage.RecordGeneration(user, "first", "code")
	require.NoError(t, err)

	_, err = usage.RecordGeneration(stale, "second", "code")
	assert.True(t, errors.Is(err, apperrors.ErrQuotaExceeded))

	fresh, err := users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.FreeRequestsUsed)

	count, err := usage.CountByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListByUser_MostRecentFirstCapped(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, 100)
	usage := NewUsageRepository(db)

	user, _, err := users.ResolveByTelegramID(555, "alice")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := usage.RecordGeneration(user, fmt.Sprintf("task %d", i), "code")
		require.NoError(t, err)
	}

	records, err := usage.ListByUser(user.ID, 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
