package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/syndicate-game/backend/config"
	"github.com/syndicate-game/backend/middleware"
	"github.com/syndicate-game/backend/models"
	"github.com/syndicate-game/backend/services"
	"github.com/syndicate-game/backend/utils"
)

// AuthController exchanges a verified web-app launch payload for a session
// token and serves the current-user endpoint.
type AuthController struct {
	db     *gorm.DB
	unlock *services.UnlockService
}

// NewAuthController creates a new controller instance.
func NewAuthController(db *gorm.DB, unlock *services.UnlockService) *AuthController {
	return &AuthController{db: db, unlock: unlock}
}

type authRequest struct {
	InitData string `json:"initData"`
}

// Authenticate verifies the launch proof, finds or creates the user and
// issues a session token. The nested user field is only read after the HMAC
// check succeeded.
func (a *AuthController) Authenticate(ctx *gin.Context) {
	var req authRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.InitData) == "" {
		utils.Fail(ctx, http.StatusBadRequest, "missing initData payload")
		return
	}

	cfg := config.Get()
	if !utils.VerifyInitData(req.InitData, cfg.TelegramBotToken) {
		utils.Fail(ctx, http.StatusForbidden, "invalid launch signature")
		return
	}

	tgUser, err := utils.ParseInitDataUser(req.InitData)
	if err != nil {
		utils.Fail(ctx, http.StatusForbidden, "malformed launch payload")
		return
	}

	user, err := a.findOrCreateUser(tgUser)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to persist user")
		return
	}

	token, err := utils.GenerateTokenForID(tgUser.ID)
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.OK(ctx, gin.H{"token": token, "user": user})
}

// findOrCreateUser looks up a player by Telegram id, creating the row and the
// day-1 unlock on first launch.
func (a *AuthController) findOrCreateUser(tg *utils.InitDataUser) (*models.User, error) {
	telegramID := strconv.FormatInt(tg.ID, 10)

	var user models.User
	err := a.db.Where("telegram_id = ?", telegramID).First(&user).Error
	if err == nil {
		if tg.Username != "" && tg.Username != user.Username {
			user.Username = tg.Username
			if err := a.db.Save(&user).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{TelegramID: telegramID, Username: tg.Username}
	if err := a.db.Create(&user).Error; err != nil {
		return nil, err
	}
	// new players start with day 1 open
	if err := a.unlock.GrantDay(user.ID, 1); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the current authenticated user's record.
func (a *AuthController) Me(ctx *gin.Context) {
	user, ok := currentUser(ctx, a.db)
	if !ok {
		return
	}
	utils.OK(ctx, gin.H{"user": user})
}

// currentUser resolves the session's Telegram id to a user row. A token whose
// id no longer matches a row is treated as absent, not as a server error; the
// failure response is already written when ok is false.
func currentUser(ctx *gin.Context, db *gorm.DB) (*models.User, bool) {
	telegramID, exists := ctx.Get(middleware.ContextTelegramIDKey)
	if !exists {
		utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	var user models.User
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Fail(ctx, http.StatusUnauthorized, "unknown user")
		return nil, false
	}
	if err != nil {
		utils.Fail(ctx, http.StatusInternalServerError, "failed to load user")
		return nil, false
	}
	return &user, true
}
