package models

import "time"

type User struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	TelegramID *int64  `gorm:"uniqueIndex" json:"telegram_id"`
	Email      *string `gorm:"uniqueIndex" json:"email"`
	Username   string  `json:"username"`
	Password   string  `json:"-"`
	Role       string  `json:"role"`

	// Quota state
	IsPremium         bool `json:"is_premium"`
	FreeRequestsUsed  int  `json:"free_requests_used"`
	FreeRequestsLimit int  `json:"free_requests_limit"`

	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
