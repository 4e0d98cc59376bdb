package models

import "time"

// UserDayAccess is the per-user unlock row for one day. Created for day 1 at
// sign-up and in bulk when an admin opens a day for everyone. Unlocking is
// one-directional; there is no relock transition.
type UserDayAccess struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_user_day;not null" json:"user_id"`
	Day       int       `gorm:"uniqueIndex:idx_user_day;not null" json:"day"`
	Unlocked  bool      `gorm:"default:true" json:"unlocked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
