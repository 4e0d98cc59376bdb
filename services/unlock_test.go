package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syndicate-game/backend/models"
)

func TestGrantDayAndIsUnlocked(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	user := seedUser(t, db, "1")

	unlocked, err := svc.IsUnlocked(user.ID, 1)
	require.NoError(t, err)
	assert.False(t, unlocked, "absent row means locked")

	require.NoError(t, svc.GrantDay(user.ID, 1))

	unlocked, err = svc.IsUnlocked(user.ID, 1)
	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestGrantDayIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	user := seedUser(t, db, "1")

	require.NoError(t, svc.GrantDay(user.ID, 2))
	require.NoError(t, svc.GrantDay(user.ID, 2))

	var count int64
	require.NoError(t, db.Model(&models.UserDayAccess{}).Where("user_id = ? AND day = ?", user.ID, 2).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUnlockedDaysSorted(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	user := seedUser(t, db, "1")

	require.NoError(t, svc.GrantDay(user.ID, 3))
	require.NoError(t, svc.GrantDay(user.ID, 1))
	require.NoError(t, svc.GrantDay(user.ID, 2))

	days, err := svc.UnlockedDays(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, days)
}

func TestUnlockedDaysEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	user := seedUser(t, db, "1")

	days, err := svc.UnlockedDays(user.ID)
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestOpenDayForAllFanOut(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	seedTask(t, db, 2)
	for _, id := range []string{"1", "2", "3"} {
		seedUser(t, db, id)
	}

	n, err := svc.OpenDayForAll(2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var count int64
	require.NoError(t, db.Model(&models.UserDayAccess{}).Where("day = ? AND unlocked = ?", 2, true).Count(&count).Error)
	assert.EqualValues(t, 3, count)

	// second identical open produces no duplicate rows
	n, err = svc.OpenDayForAll(2)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, db.Model(&models.UserDayAccess{}).Where("day = ?", 2).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestOpenDayForAllNoTask(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	seedUser(t, db, "1")

	_, err := svc.OpenDayForAll(9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenDayForAllZeroUsers(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	seedTask(t, db, 1)

	n, err := svc.OpenDayForAll(1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpenDayNeverRelocksOthers(t *testing.T) {
	db := newTestDB(t)
	svc := NewUnlockService(db)
	user := seedUser(t, db, "1")
	seedTask(t, db, 1)
	seedTask(t, db, 2)

	require.NoError(t, svc.GrantDay(user.ID, 1))
	_, err := svc.OpenDayForAll(2)
	require.NoError(t, err)

	unlocked, err := svc.IsUnlocked(user.ID, 1)
	require.NoError(t, err)
	assert.True(t, unlocked)
}
