package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/syndicate-game/backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a pooled second connection to :memory: would see an empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
		&models.UserChecklistMark{},
		&models.UserDayAccess{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, telegramID string) *models.User {
	t.Helper()
	user := models.User{TelegramID: telegramID, Username: "u" + telegramID}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedTask(t *testing.T, db *gorm.DB, day int, itemTitles ...string) (*models.Task, []models.ChecklistItem) {
	t.Helper()
	task := models.Task{Day: day, Title: "Day task", Mission: "mission", Description: "desc"}
	require.NoError(t, db.Create(&task).Error)

	items := make([]models.ChecklistItem, 0, len(itemTitles))
	for i, title := range itemTitles {
		item := models.ChecklistItem{TaskID: task.ID, Title: title, Position: i + 1}
		require.NoError(t, db.Create(&item).Error)
		items = append(items, item)
	}
	return &task, items
}
