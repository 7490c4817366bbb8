package repository

import (
	"fmt"

	"codebot-backend/apperrors"
	"codebot-backend/models"

	"gorm.io/gorm"
)

// UsageRepository is the append-only generation ledger.
type UsageRepository interface {
	// RecordGeneration persists one accepted generation: the ledger row
	// and, for non-premium accounts, the counter increment, as one
	// atomic unit. Returns ErrQuotaExceeded (nothing written) when a
	// concurrent request consumed the last free slot first.
	RecordGeneration(user *models.User, prompt, generatedCode string) (*models.UsageRecord, error)
	ListByUser(userID uint, limit int) ([]models.UsageRecord, error)
	CountByUser(userID uint) (int64, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (r *usageRepository) RecordGeneration(user *models.User, prompt, generatedCode string) (*models.UsageRecord, error) {
	record := &models.UsageRecord{
		UserID:        user.ID,
		Prompt:        prompt,
		GeneratedCode: generatedCode,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("%w: insert usage record: %v", apperrors.ErrStorage, err)
		}

		// Premium accounts generate without consuming quota.
		if user.IsPremium {
			return nil
		}

		// Single conditional UPDATE so duplicate webhook deliveries
		// cannot lose an increment or push the counter past the limit.
		res := tx.Model(&models.User{}).
			Where("id = ? AND is_premium = ? AND free_requests_used < free_requests_limit", user.ID, false).
			Update("free_requests_used", gorm.Expr("free_requests_used + 1"))
		if res.Error != nil {
			return fmt.Errorf("%w: increment quota counter: %v", apperrors.ErrStorage, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %d: %w", user.ID, apperrors.ErrQuotaExceeded)
		}
		user.FreeRequestsUsed++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *usageRepository) ListByUser(userID uint, limit int) ([]models.UsageRecord, error) {
	var records []models.UsageRecord
	q := r.db.Where("user_id = ?", userID).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: list usage history: %v", apperrors.ErrStorage, err)
	}
	return records, nil
}

func (r *usageRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.UsageRecord{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: count usage history: %v", apperrors.ErrStorage, err)
	}
	return count, nil
}
