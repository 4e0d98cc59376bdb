package models

import "time"

// Task is one day of game content. Day numbers are unique; the checklist
// catalog hanging off a task is shared by every user and never duplicated.
type Task struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Day         int             `gorm:"uniqueIndex;not null" json:"day"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Mission     string          `gorm:"type:text" json:"mission"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"default:false" json:"is_active"`
	Checklist   []ChecklistItem `json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
