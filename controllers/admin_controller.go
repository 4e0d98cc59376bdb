package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/syndicate-game/backend/models"
	"github.com/syndicate-game/backend/services"
	"github.com/syndicate-game/backend/utils"
)

// AdminController owns the day broadcast and the task/checklist catalog CRUD.
// Every write invalidates the day's catalog cache.
type AdminController struct {
	db     *gorm.DB
	unlock *services.UnlockService
}

// NewAdminController creates a new controller instance.
func NewAdminController(db *gorm.DB, unlock *services.UnlockService) *AdminController {
	return &AdminController{db: db, unlock: unlock}
}

type openDayRequest struct {
	Day *int `json:"day"`
}

// OpenDay unlocks a day for every existing user. Re-opening the same day is
// idempotent and opening a later day never closes an earlier one.
func (a *AdminController) OpenDay(ctx *gin.Context) {
	var req openDayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Day == nil || *req.Day < 1 {
		utils.Fail(ctx, http.StatusBadRequest, "invalid day")
		return
	}

	users, err := a.unlock.OpenDayForAll(*req.Day)
	if errors.Is(err, services.ErrNotFound) {
		utils.Fail(ctx, http.StatusNotFound, "task not found")
		return
	}
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to open day")
		return
	}

	utils.Sugar.Infow("day opened", "day", *req.Day, "users", users)
	utils.OK(ctx, gin.H{"opened_day": *req.Day, "users": users})
}

type upsertTaskRequest struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Mission     string `json:"mission"`
	Description string `json:"description"`
}

// UpsertTask creates or replaces the task content for a day. Admin-authored
// text is sanitized before it is stored.
func (a *AdminController) UpsertTask(ctx *gin.Context) {
	var req upsertTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Day < 1 || strings.TrimSpace(req.Title) == "" {
		utils.Fail(ctx, http.StatusBadRequest, "missing day or title")
		return
	}

	task := models.Task{
		Day:         req.Day,
		Title:       utils.SanitizeText(req.Title),
		Mission:     utils.SanitizeHTML(req.Mission),
		Description: utils.SanitizeHTML(req.Description),
	}
	err := a.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"title":       task.Title,
			"mission":     task.Mission,
			"description": task.Description,
			"updated_at":  time.Now(),
		}),
	}).Create(&task).Error
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to save task")
		return
	}

	utils.CacheDelete(taskCacheKey(req.Day))
	utils.OK(ctx, gin.H{"task": task})
}

// ListChecklist returns the full catalog for a day, marks excluded.
func (a *AdminController) ListChecklist(ctx *gin.Context) {
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil || day < 1 {
		utils.Fail(ctx, http.StatusBadRequest, "invalid day")
		return
	}

	var task models.Task
	if err := a.db.Where("day = ?", day).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "task not found")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load task")
		return
	}

	var items []models.ChecklistItem
	if err := a.db.Where("task_id = ?", task.ID).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load checklist")
		return
	}

	utils.OK(ctx, gin.H{"task": task, "items": items})
}

type createItemRequest struct {
	Day      *int   `json:"day"`
	Title    string `json:"title"`
	Position *int   `json:"position"`
}

// CreateItem appends an item to a day's catalog. Without an explicit position
// the item goes to the end.
func (a *AdminController) CreateItem(ctx *gin.Context) {
	var req createItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Day == nil || strings.TrimSpace(req.Title) == "" {
		utils.Fail(ctx, http.StatusBadRequest, "missing day or title")
		return
	}

	var task models.Task
	if err := a.db.Where("day = ?", *req.Day).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "task not found")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load task")
		return
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		var maxPos int
		row := a.db.Model(&models.ChecklistItem{}).Where("task_id = ?", task.ID).Select("COALESCE(MAX(position), 0)").Row()
		if err := row.Scan(&maxPos); err == nil {
			position = maxPos + 1
		}
	}

	item := models.ChecklistItem{
		TaskID:   task.ID,
		Title:    utils.SanitizeText(req.Title),
		Position: position,
	}
	if err := a.db.Create(&item).Error; err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to create item")
		return
	}

	utils.CacheDelete(taskCacheKey(task.Day))
	utils.OK(ctx, gin.H{"item": item})
}

// DeleteItem removes an item and every user's marks against it.
func (a *AdminController) DeleteItem(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		utils.Fail(ctx, http.StatusBadRequest, "invalid item id")
		return
	}

	var item models.ChecklistItem
	if err := a.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusNotFound, "checklist item not found")
			return
		}
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load item")
		return
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checklist_item_id = ?", item.ID).Delete(&models.UserChecklistMark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to delete item")
		return
	}

	var task models.Task
	if err := a.db.First(&task, item.TaskID).Error; err == nil {
		utils.CacheDelete(taskCacheKey(task.Day))
	}

	utils.OK(ctx, gin.H{})
}
