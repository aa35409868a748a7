package http

import (
	"advanced-todo/internal/adapter/http/handlers"
	"advanced-todo/internal/adapter/http/middleware"
	"advanced-todo/internal/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the engine with the shared middleware chain and all routes.
func NewRouter(cfg *config.Config, logger *zap.Logger, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.GinZapMiddleware(logger),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)
	RegisterRoutes(r, healthHandler, taskHandler)
	return r, nil
}

func RegisterRoutes(r *gin.Engine, healthHandler *handlers.HealthHandler, taskHandler *handlers.TaskHandler) {
	r.GET("/health", healthHandler.CheckHealth)

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", healthHandler.CheckHealth)
		api.GET("/health/report", healthHandler.CheckHealthReport)
		api.GET("/tasks", taskHandler.ListTasks)
		api.POST("/tasks", taskHandler.CreateTask)
		api.PATCH("/tasks/:id", taskHandler.UpdateTask)
		api.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}
}
