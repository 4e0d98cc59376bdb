package models

import "time"

// ChecklistItem belongs to exactly one task. Completion state is never stored
// here; it lives in UserChecklistMark keyed by (user, item).
type ChecklistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"index;not null" json:"task_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Position  int       `gorm:"default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
