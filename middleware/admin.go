package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/syndicate-game/backend/models"
	"github.com/syndicate-game/backend/utils"
)

// AdminRequired re-reads the admin flag from the user row on every request.
// The flag is never trusted from the token since it can change after issuance.
// Must run after AuthRequired.
func AdminRequired(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		telegramID, exists := ctx.Get(ContextTelegramIDKey)
		if !exists {
			utils.Fail(ctx, http.StatusUnauthorized, "unauthorized")
			ctx.Abort()
			return
		}

		var user models.User
		err := db.Where("telegram_id = ?", telegramID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Fail(ctx, http.StatusUnauthorized, "unknown user")
			ctx.Abort()
			return
		}
		if err != nil {
			utils.Fail(ctx, http.StatusInternalServerError, "failed to load user")
			ctx.Abort()
			return
		}
		if !user.IsAdmin {
			utils.Fail(ctx, http.StatusForbidden, "admin only")
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
