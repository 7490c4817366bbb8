package models

import "time"

// UsageRecord is one accepted generation request. Rows are append-only,
// never updated or deleted by the service.
type UsageRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `json:"user_id"`
	Prompt        string    `json:"prompt"`
	GeneratedCode string    `json:"generated_code"`
	CreatedAt     time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UsageRecord) TableName() string {
	return "usage_history"
}
