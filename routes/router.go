package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/syndicate-game/backend/config"
	"github.com/syndicate-game/backend/controllers"
	"github.com/syndicate-game/backend/middleware"
	"github.com/syndicate-game/backend/services"
	"github.com/syndicate-game/backend/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "OK")
	})

	unlock := services.NewUnlockService(db)
	checklist := services.NewChecklistService(db, unlock)

	authController := controllers.NewAuthController(db, unlock)
	taskController := controllers.NewTaskController(db, unlock, checklist)
	checklistController := controllers.NewChecklistController(db, checklist)
	adminController := controllers.NewAdminController(db, unlock)

	api := r.Group("/api/v1")
	api.POST("/auth", authController.Authenticate)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.GET("/me", authController.Me)
	protected.POST("/me", authController.Me)
	protected.GET("/days", taskController.ListDays)
	protected.GET("/task/:day", taskController.GetTask)
	protected.POST("/checklist/toggle", checklistController.Toggle)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminRequired(db))
	admin.POST("/open-day", adminController.OpenDay)
	admin.POST("/task", adminController.UpsertTask)
	admin.GET("/checklist/:day", adminController.ListChecklist)
	admin.POST("/checklist", adminController.CreateItem)
	admin.DELETE("/checklist/:id", adminController.DeleteItem)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Fail(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
