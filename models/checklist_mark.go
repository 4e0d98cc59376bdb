package models

import "time"

// UserChecklistMark records one user's done state for one checklist item.
// Absence of a row means "not done". The (user, item) pair is unique so
// concurrent toggles collapse into a single row via upsert.
type UserChecklistMark struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex:idx_user_item;not null" json:"user_id"`
	ChecklistItemID uint      `gorm:"uniqueIndex:idx_user_item;not null" json:"checklist_item_id"`
	Done            bool      `gorm:"default:false" json:"done"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
