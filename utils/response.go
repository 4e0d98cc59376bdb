package utils

import "github.com/gin-gonic/gin"

// OK writes a success envelope: {"ok":true} merged with extra fields.
func OK(ctx *gin.Context, extra gin.H) {
	payload := gin.H{"ok": true}
	for k, v := range extra {
		payload[k] = v
	}
	ctx.JSON(200, payload)
}

// Fail writes a failure envelope with the given HTTP status.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"ok": false, "error": message})
}
