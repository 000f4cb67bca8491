package main

import (
	"time"

	"github.com/methodshub/backend/config"
	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/routes"
	"github.com/methodshub/backend/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Method{},
		&models.DailyEarning{},
		&models.MethodCompletion{},
		&models.Streak{},
		&models.Referral{},
		&models.ReferralPoints{},
		&models.Notification{},
		&models.Subscription{},
		&models.PageView{},
		&models.UploadedFile{},
	)

	r := routes.SetupRouter(db)

	// Background sweep of unclaimed icon uploads (best-effort).
	utils.StartIconCleaner(db, time.Duration(cfg.IconSweepIntervalM)*time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.RunGraceful(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
