package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syndicate-game/backend/models"
)

// Sentinel errors; controllers map these to HTTP statuses.
var (
	ErrNotFound  = errors.New("not found")
	ErrDayLocked = errors.New("day is locked")
)

// UnlockService tracks which days are open for which users. Unlock rows are
// additive and one-directional; opening a day never closes another.
type UnlockService struct {
	db *gorm.DB
}

// NewUnlockService creates the service around an injected store handle.
func NewUnlockService(db *gorm.DB) *UnlockService {
	return &UnlockService{db: db}
}

// GrantDay unlocks a single day for a single user. Upsert on (user_id, day)
// keeps repeated grants from duplicating rows.
func (s *UnlockService) GrantDay(userID uint, day int) error {
	access := models.UserDayAccess{UserID: userID, Day: day, Unlocked: true}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"unlocked": true, "updated_at": time.Now()}),
	}).Create(&access).Error
}

// UnlockedDays returns the sorted day numbers currently open for a user.
func (s *UnlockService) UnlockedDays(userID uint) ([]int, error) {
	days := []int{}
	err := s.db.Model(&models.UserDayAccess{}).
		Where("user_id = ? AND unlocked = ?", userID, true).
		Order("day ASC").
		Pluck("day", &days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

// IsUnlocked reports whether a day is open for a user. No row means locked.
func (s *UnlockService) IsUnlocked(userID uint, day int) (bool, error) {
	var access models.UserDayAccess
	err := s.db.Where("user_id = ? AND day = ?", userID, day).First(&access).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return access.Unlocked, nil
}

// OpenDayForAll unlocks a day for every existing user. The day must have a
// task (ErrNotFound otherwise); zero users is a trivial success. The fan-out
// upserts one row per user, so re-opening the same day is idempotent.
func (s *UnlockService) OpenDayForAll(day int) (int, error) {
	var task models.Task
	if err := s.db.Where("day = ?", day).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return 0, err
	}

	for _, u := range users {
		if err := s.GrantDay(u.ID, day); err != nil {
			return 0, err
		}
	}
	return len(users), nil
}
