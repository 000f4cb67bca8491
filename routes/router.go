package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/config"
	"github.com/methodshub/backend/controllers"
	"github.com/methodshub/backend/middleware"
	"github.com/methodshub/backend/utils"
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
	// File-based zap access log instead of the default console logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	methodController := controllers.NewMethodController(db)
	earningController := controllers.NewEarningController(db)
	csvController := controllers.NewCsvController(db)
	taskController := controllers.NewTaskController(db)
	streakController := controllers.NewStreakController(db)
	referralController := controllers.NewReferralController(db)
	notificationController := controllers.NewNotificationController(db)
	subscriptionController := controllers.NewSubscriptionController(db)
	statsController := controllers.NewStatsController(db)
	metaController := controllers.NewMetaController()

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public surface
	api.GET("/stats", statsController.GetStats)
	api.GET("/meta/categories", metaController.GetCategories)
	api.GET("/meta/points", metaController.GetPoints)
	api.GET("/explore", methodController.Explore)
	api.GET("/explore/:id", methodController.ExploreGet)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.GET("/methods", methodController.List)
	protected.POST("/methods", methodController.Create)
	protected.GET("/methods/:id", methodController.Get)
	protected.PUT("/methods/:id", methodController.Update)
	protected.DELETE("/methods/:id", methodController.Delete)
	protected.POST("/methods/:id/copy", methodController.Copy)
	protected.POST("/methods/icon", methodController.UploadIcon)

	protected.GET("/earnings", earningController.List)
	protected.POST("/earnings", earningController.Create)
	protected.PUT("/earnings/:id", earningController.Update)
	protected.DELETE("/earnings/:id", earningController.Delete)
	protected.GET("/earnings/summary", earningController.Summary)
	protected.GET("/earnings/analytics", earningController.Analytics)
	protected.GET("/earnings/export", csvController.Export)
	protected.POST("/earnings/import", csvController.Import)

	protected.GET("/tasks/available", taskController.Available)
	protected.POST("/tasks/:methodId/complete", taskController.Complete)

	protected.GET("/streak", streakController.Get)
	protected.GET("/streak/status", streakController.Status)

	protected.GET("/referrals/code", referralController.Code)
	protected.GET("/referrals/stats", referralController.Stats)
	protected.GET("/referrals/points", referralController.Points)

	protected.GET("/notifications", notificationController.List)
	protected.GET("/notifications/unread", notificationController.UnreadCount)
	protected.PATCH("/notifications/:id/read", notificationController.MarkRead)
	protected.PATCH("/notifications/read-all", notificationController.MarkAllRead)

	protected.GET("/subscription", subscriptionController.Get)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired(db), middleware.RateLimitMiddleware())
	admin.GET("/users", authController.ListUsers)

	r.NoRoute(func(ctx *gin.Context) {
		path := ctx.Request.URL.Path
		if strings.HasPrefix(path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		ctx.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	})

	return r
}
