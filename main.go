package main

import (
	"github.com/syndicate-game/backend/config"
	"github.com/syndicate-game/backend/models"
	"github.com/syndicate-game/backend/routes"
	"github.com/syndicate-game/backend/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
		&models.UserChecklistMark{},
		&models.UserDayAccess{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
