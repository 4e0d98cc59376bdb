package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a player created on first verified web-app launch. TelegramID is the
// only join key used across the store and never changes after creation.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	TelegramID string         `gorm:"size:64;uniqueIndex;not null" json:"telegram_id"`
	Username   string         `gorm:"size:64" json:"username"`
	Points     int            `gorm:"default:0" json:"points"`
	Level      string         `gorm:"size:32;default:'recruit'" json:"level"`
	IsAdmin    bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
