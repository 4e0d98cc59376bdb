package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syndicate-game/backend/models"
)

func TestTaskViewMergesSparseMarks(t *testing.T) {
	db := newTestDB(t)
	unlock := NewUnlockService(db)
	svc := NewChecklistService(db, unlock)
	user := seedUser(t, db, "1")
	_, items := seedTask(t, db, 1, "recon", "contact", "report")

	// mark only the second item done; a done=false row must also read as false
	require.NoError(t, db.Create(&models.UserChecklistMark{UserID: user.ID, ChecklistItemID: items[1].ID, Done: true}).Error)
	require.NoError(t, db.Create(&models.UserChecklistMark{UserID: user.ID, ChecklistItemID: items[2].ID, Done: false}).Error)

	task, rows, err := svc.TaskView(user.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, task)
	require.Len(t, rows, 3)

	assert.Equal(t, []ChecklistRow{
		{ID: items[0].ID, Title: "recon", Done: false},
		{ID: items[1].ID, Title: "contact", Done: true},
		{ID: items[2].ID, Title: "report", Done: false},
	}, rows)
}

func TestTaskViewZeroMarksFullCatalog(t *testing.T) {
	db := newTestDB(t)
	unlock := NewUnlockService(db)
	svc := NewChecklistService(db, unlock)
	user := seedUser(t, db, "1")
	_, items := seedTask(t, db, 1, "a", "b")

	_, rows, err := svc.TaskView(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, rows, len(items))
	for _, row := range rows {
		assert.False(t, row.Done)
	}
}

func TestTaskViewOrderByPosition(t *testing.T) {
	db := newTestDB(t)
	unlock := NewUnlockService(db)
	svc := NewChecklistService(db, unlock)
	user := seedUser(t, db, "1")

	task := models.Task{Day: 1, Title: "t"}
	require.NoError(t, db.Create(&task).Error)
	late := models.ChecklistItem{TaskID: task.ID, Title: "late", Position: 5}
	early := models.ChecklistItem{TaskID: task.ID, Title: "early", Position: 1}
	require.NoError(t, db.Create(&late).Error)
	require.NoError(t, db.Create(&early).Error)

	_, rows, err := svc.TaskView(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "early", rows[0].Title)
	assert.Equal(t, "late", rows[1].Title)
}

func TestTaskViewNoTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewChecklistService(db, NewUnlockService(db))
	user := seedUser(t, db, "1")

	task, rows, err := svc.TaskView(user.ID, 4)
	require.NoError(t, err)
	assert.Nil(t, task)
	assert.Nil(t, rows)
}

func TestToggleIdempotent(t *testing.T) {
	db := newTestDB(t)
	unlock := NewUnlockService(db)
	svc := NewChecklistService(db, unlock)
	user := seedUser(t, db, "1")
	_, items := seedTask(t, db, 1, "a")
	require.NoError(t, unlock.GrantDay(user.ID, 1))

	require.NoError(t, svc.Toggle(user.ID, items[0].ID, true))
	require.NoError(t, svc.Toggle(user.ID, items[0].ID, true))

	var marks []models.UserChecklistMark
	require.NoError(t, db.Where("user_id = ? AND checklist_item_id = ?", user.ID, items[0].ID).Find(&marks).Error)
	require.Len(t, marks, 1)
	assert.True(t, marks[0].Done)
}

func TestToggleOffAgain(t *testing.T) {
	db := newTestDB(t)
	unlock := NewUnlockService(db)
	svc := NewChecklistService(db, unlock)
	user := seedUser(t, db, "1")
	_, items := seedTask(t, db, 1, "a")
	require.NoError(t, unlock.GrantDay(user.ID, 1))

	require.NoError(t, svc.Toggle(user.ID, items[0].ID, true))
	require.NoError(t, svc.Toggle(user.ID, items[0].ID, false))

	var marks []models.UserChecklistMark
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&marks).Error)
	require.Len(t, marks, 1)
	assert.False(t, marks[0].Done)
}

func TestToggleUnknownItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewChecklistService(db, NewUnlockService(db))
	user := seedUser(t, db, "1")

	assert.ErrorIs(t, svc.Toggle(user.ID, 999, true), ErrNotFound)
}

func TestToggleLockedDayRejected(t *testing.T) {
	db := newTestDB(t)
	unlock := NewUnlockService(db)
	svc := NewChecklistService(db, unlock)
	user := seedUser(t, db, "1")
	_, items := seedTask(t, db, 3, "a")

	assert.ErrorIs(t, svc.Toggle(user.ID, items[0].ID, true), ErrDayLocked)
}
