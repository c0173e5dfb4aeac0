// Package routesはroutingを行います。
package routes

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"todoapp/backend/internal/config"
	"todoapp/backend/internal/handlers"
	"todoapp/backend/internal/repositories"
	"todoapp/backend/internal/services"
)

// Dependencies はルーターの組み立てに必要なものです。すべて main で作って渡します。
type Dependencies struct {
	DB     *sql.DB
	Config *config.Config
	Logger *log.Logger
	// Now はタスクのタイムスタンプに使う時刻です。nil なら time.Now。
	Now func() time.Time
}

// SetupRouter はGinルーターをセットアップし、すべてのエンドポイントを登録します。
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(deps.Logger), Recovery(deps.Logger))

	// CORS対策
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = deps.Config.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", headerRequestID}
	corsConfig.ExposeHeaders = []string{"Location", headerRequestID}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	// リポジトリ
	taskRepo := repositories.NewTaskRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB)

	// サービス
	jwtService := services.NewJWTService(deps.Config.Auth)
	authService := services.NewAuthService(userRepo, jwtService)
	taskService := services.NewTaskService(taskRepo)
	if deps.Now != nil {
		taskService.WithClock(deps.Now)
	}

	// ハンドラー
	authHandler := handlers.NewAuthHandler(authService, deps.Logger)
	taskHandler := handlers.NewTaskHandler(taskService, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Logger)

	// ルーティング
	r.GET("/health", healthHandler.HealthCheckHandler)
	r.POST("/api/auth/register", authHandler.RegisterHandler)
	r.POST("/api/auth/login", authHandler.LoginHandler)

	authorized := r.Group("/api/tasks")
	authorized.Use(AuthMiddleware(jwtService))
	{
		authorized.GET("", taskHandler.GetTasksHandler)
		authorized.GET("/statistics", taskHandler.GetStatisticsHandler)
		authorized.GET("/:id", taskHandler.GetTaskByIDHandler)
		authorized.POST("", taskHandler.CreateTaskHandler)
		authorized.PUT("/:id", taskHandler.UpdateTaskHandler)
		authorized.DELETE("/:id", taskHandler.DeleteTaskHandler)
		authorized.PATCH("/:id/toggle", taskHandler.ToggleTaskHandler)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})

	return r
}
