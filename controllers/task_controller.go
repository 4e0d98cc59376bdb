package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/syndicate-game/backend/models"
	"github.com/syndicate-game/backend/services"
	"github.com/syndicate-game/backend/utils"
)

// TaskController serves the per-user day list and task views.
type TaskController struct {
	db        *gorm.DB
	unlock    *services.UnlockService
	checklist *services.ChecklistService
}

// NewTaskController creates a new controller instance.
func NewTaskController(db *gorm.DB, unlock *services.UnlockService, checklist *services.ChecklistService) *TaskController {
	return &TaskController{db: db, unlock: unlock, checklist: checklist}
}

// ListDays returns the sorted day numbers open for the caller.
func (t *TaskController) ListDays(ctx *gin.Context) {
	user, ok := currentUser(ctx, t.db)
	if !ok {
		return
	}

	days, err := t.unlock.UnlockedDays(user.ID)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load days")
		return
	}
	utils.OK(ctx, gin.H{"days": days})
}

// GetTask returns one day's task and the caller's merged checklist. The unlock
// gate is checked before any checklist table is touched; a locked day answers
// 403 without leaking whether the day has content.
func (t *TaskController) GetTask(ctx *gin.Context) {
	user, ok := currentUser(ctx, t.db)
	if !ok {
		return
	}

	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil || day < 1 {
		utils.Fail(ctx, http.StatusBadRequest, "invalid day")
		return
	}

	unlocked, err := t.unlock.IsUnlocked(user.ID, day)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to check day access")
		return
	}
	if !unlocked {
		utils.Fail(ctx, http.StatusForbidden, "DAY CLOSED")
		return
	}

	task, items, err := t.cachedCatalog(day)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load task")
		return
	}
	if task == nil {
		ctx.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}

	rows, err := t.checklist.MergeMarks(user.ID, items)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load checklist")
		return
	}

	utils.OK(ctx, gin.H{"task": task, "checklist": rows})
}

// taskCatalog is the cached, user-independent half of a task view. Per-user
// marks are never cached so toggles are always read fresh.
type taskCatalog struct {
	Task  models.Task            `json:"task"`
	Items []models.ChecklistItem `json:"items"`
}

func taskCacheKey(day int) string {
	return fmt.Sprintf("cache:task:day:%d", day)
}

func (t *TaskController) cachedCatalog(day int) (*models.Task, []models.ChecklistItem, error) {
	if b, ok := utils.CacheGetBytes(taskCacheKey(day)); ok {
		var cached taskCatalog
		if err := json.Unmarshal(b, &cached); err == nil {
			return &cached.Task, cached.Items, nil
		}
	}

	task, items, err := t.checklist.Catalog(day)
	if err != nil || task == nil {
		return nil, nil, err
	}
	utils.CacheSetJSON(taskCacheKey(day), taskCatalog{Task: *task, Items: items}, time.Hour)
	return task, items, nil
}
