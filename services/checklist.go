package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syndicate-game/backend/models"
)

// ChecklistRow is one merged line of a user's checklist view.
type ChecklistRow struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ChecklistService merges the shared item catalog with a user's sparse marks.
type ChecklistService struct {
	db     *gorm.DB
	unlock *UnlockService
}

// NewChecklistService creates the service around an injected store handle.
func NewChecklistService(db *gorm.DB, unlock *UnlockService) *ChecklistService {
	return &ChecklistService{db: db, unlock: unlock}
}

// Catalog resolves the task for a day and its items ordered by position. The
// catalog is user-independent, which is what makes it safe to cache. A day
// with no task yields (nil, nil, nil).
func (s *ChecklistService) Catalog(day int) (*models.Task, []models.ChecklistItem, error) {
	var task models.Task
	if err := s.db.Where("day = ?", day).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	var items []models.ChecklistItem
	if err := s.db.Where("task_id = ?", task.ID).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &task, items, nil
}

// MergeMarks builds the per-user view of a catalog: exactly one row per item,
// done=true only where a mark row with done=true exists. The catalog is the
// authoritative enumeration; a user with zero marks sees every item unchecked.
func (s *ChecklistService) MergeMarks(userID uint, items []models.ChecklistItem) ([]ChecklistRow, error) {
	rows := make([]ChecklistRow, 0, len(items))
	if len(items) == 0 {
		return rows, nil
	}

	itemIDs := make([]uint, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.ID)
	}

	var marks []models.UserChecklistMark
	if err := s.db.Where("user_id = ? AND checklist_item_id IN ?", userID, itemIDs).Find(&marks).Error; err != nil {
		return nil, err
	}
	done := make(map[uint]bool, len(marks))
	for _, m := range marks {
		if m.Done {
			done[m.ChecklistItemID] = true
		}
	}

	for _, it := range items {
		rows = append(rows, ChecklistRow{ID: it.ID, Title: it.Title, Done: done[it.ID]})
	}
	return rows, nil
}

// TaskView is Catalog followed by MergeMarks for one user.
func (s *ChecklistService) TaskView(userID uint, day int) (*models.Task, []ChecklistRow, error) {
	task, items, err := s.Catalog(day)
	if err != nil || task == nil {
		return nil, nil, err
	}
	rows, err := s.MergeMarks(userID, items)
	if err != nil {
		return nil, nil, err
	}
	return task, rows, nil
}

// Toggle records a done state for (user, item). The item must exist and belong
// to a task whose day is open for the caller. Upsert on the pair keeps repeated
// toggles from duplicating rows.
func (s *ChecklistService) Toggle(userID uint, itemID uint, done bool) error {
	var item models.ChecklistItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var task models.Task
	if err := s.db.First(&task, item.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	unlocked, err := s.unlock.IsUnlocked(userID, task.Day)
	if err != nil {
		return err
	}
	if !unlocked {
		return ErrDayLocked
	}

	mark := models.UserChecklistMark{UserID: userID, ChecklistItemID: itemID, Done: done}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "checklist_item_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"done": done, "updated_at": time.Now()}),
	}).Create(&mark).Error
}
