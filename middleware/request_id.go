package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/syndicate-game/backend/utils"
)

// RequestLogger tags each request with a uuid and writes a zap access log line.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := uuid.NewString()
		ctx.Set("request_id", id)
		ctx.Header("X-Request-ID", id)

		start := time.Now()
		ctx.Next()

		if utils.Sugar != nil {
			utils.Sugar.Infow("request",
				"id", id,
				"method", ctx.Request.Method,
				"path", ctx.Request.URL.Path,
				"status", ctx.Writer.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		}
	}
}
