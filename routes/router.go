package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/codeprep/config"
	"github.com/cppla/codeprep/controllers"
	"github.com/cppla/codeprep/middleware"
	"github.com/cppla/codeprep/services"
	"github.com/cppla/codeprep/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	// Load config and set Gin mode from configuration
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
	// Replace default console logger with file-based zap logger
	ginLogPath := cfg.GinPath
	// Use application log level as reference
	gl, err := utils.NewRollingFileLogger(ginLogPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))
	// Record PV after each request
	r.Use(middleware.PageViewRecorder(db))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	activityStore := services.NewActivityStore(db)
	proficiencyService := services.NewProficiencyService(db)
	leaderboardService := services.NewLeaderboardService(db)
	recommendationService := services.NewRecommendationService(db, proficiencyService)

	authController := controllers.NewAuthController(db)
	problemController := controllers.NewProblemController(db)
	submissionController := controllers.NewSubmissionController(db, activityStore, proficiencyService)
	progressController := controllers.NewProgressController(activityStore, proficiencyService)
	leaderboardController := controllers.NewLeaderboardController(leaderboardService)
	recommendationController := controllers.NewRecommendationController(recommendationService)
	statsController := controllers.NewStatsController(db)
	configController := controllers.NewConfigController()
	hintController := controllers.NewHintController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/send-email-code", authController.SendEmailCode)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public catalog and boards
	api.GET("/problems", problemController.ListProblems)
	api.GET("/problems/:slug", problemController.GetProblem)
	api.GET("/leaderboard", leaderboardController.GetLeaderboard)
	api.GET("/stats", statsController.GetStats)
	api.GET("/config/policies", configController.GetPolicies)
	api.GET("/config/notice", configController.GetNotice)
	api.GET("/users/:id", authController.GetUserPublic)
	api.GET("/user/by-username/:username", authController.GetUserPublicByUsername)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/submissions", submissionController.Submit)
	protected.GET("/submissions", submissionController.ListMine)
	protected.GET("/progress/streak", progressController.GetStreak)
	protected.GET("/progress/activity", progressController.GetActivity)
	protected.POST("/progress/activity", progressController.RecordActivity)
	protected.GET("/progress/topics", progressController.GetTopics)
	protected.GET("/recommendations", recommendationController.GetRecommendations)
	protected.GET("/problems/:slug/hint", hintController.GetHint)

	admin := protected.Group("")
	admin.Use(middleware.AdminRequired())
	admin.GET("/users", authController.ListUsers)
	admin.POST("/problems", problemController.CreateProblem)
	admin.PUT("/problems/:id", problemController.UpdateProblem)
	admin.DELETE("/problems/:id", problemController.DeleteProblem)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
