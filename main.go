package main

import (
	"time"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/models"
	"github.com/cppla/codeprep/routes"
	"github.com/cppla/codeprep/services"
	"github.com/cppla/codeprep/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Problem{},
		&models.Submission{},
		&models.ActivityRecord{},
		&models.TopicProficiency{},
		&models.PageView{},
	)

	r := routes.SetupRouter(db)

	// Background maintenance (best-effort)
	utils.StartPageViewPruner(time.Hour)
	services.StartLeaderboardWarmer(
		services.NewLeaderboardService(db),
		time.Duration(cfg.LeaderboardWarmIntervalSec)*time.Second,
		time.Duration(cfg.LeaderboardCacheTTLSec)*time.Second,
		services.LeaderboardOptions{
			StreakWeight: cfg.LeaderboardStreakWeight,
			Streak:       services.StreakPolicy{RequireToday: cfg.StreakRequireToday},
		},
	)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
