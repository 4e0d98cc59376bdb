package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/syndicate-game/backend/services"
	"github.com/syndicate-game/backend/utils"
)

// ChecklistController records checklist toggles.
type ChecklistController struct {
	db        *gorm.DB
	checklist *services.ChecklistService
}

// NewChecklistController creates a new controller instance.
func NewChecklistController(db *gorm.DB, checklist *services.ChecklistService) *ChecklistController {
	return &ChecklistController{db: db, checklist: checklist}
}

type toggleRequest struct {
	ChecklistID uint  `json:"checklist_id"`
	Done        *bool `json:"done"`
}

// Toggle upserts the caller's done state for one item. Items on locked days
// are rejected; repeating the same toggle is a no-op success.
func (c *ChecklistController) Toggle(ctx *gin.Context) {
	user, ok := currentUser(ctx, c.db)
	if !ok {
		return
	}

	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.ChecklistID == 0 || req.Done == nil {
		utils.Fail(ctx, http.StatusBadRequest, "missing checklist_id or done")
		return
	}

	switch err := c.checklist.Toggle(user.ID, req.ChecklistID, *req.Done); {
	case err == nil:
		utils.OK(ctx, gin.H{})
	case errors.Is(err, services.ErrNotFound):
		utils.Fail(ctx, http.StatusNotFound, "checklist item not found")
	case errors.Is(err, services.ErrDayLocked):
		utils.Fail(ctx, http.StatusForbidden, "DAY CLOSED")
	default:
		utils.Fail(ctx, http.StatusInternalServerError, "failed to save mark")
	}
}
