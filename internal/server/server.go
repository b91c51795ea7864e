package server

import (
	"log/slog"
	"net/http"

	"taskboard/backend/internal/cache"
	"taskboard/backend/internal/config"
	"taskboard/backend/internal/handlers"
	"taskboard/backend/internal/middleware"
	"taskboard/backend/internal/monitoring"
	"taskboard/backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server wires the HTTP surface together: REST API under /api/v1, the static
// web client at the root, and the health/metrics endpoints.
type Server struct {
	engine  *gin.Engine
	db      *gorm.DB
	logger  *slog.Logger
	metrics *monitoring.Metrics

	staticDir string
}

func New(cfg *config.Config, db *gorm.DB, redisCache *cache.RedisCache, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RecoveryWithLog())

	metrics := monitoring.NewMetrics()
	engine.Use(metrics.Middleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	srv := &Server{
		engine:    engine,
		db:        db,
		logger:    logger,
		metrics:   metrics,
		staticDir: cfg.Server.StaticDir,
	}

	userService := services.NewUserService(cfg.Auth.BCryptCost)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var taskService services.TaskService = services.NewTaskService()
	if redisCache != nil {
		taskService = services.NewCachedTaskService(taskService, redisCache)
	}

	authHandler := handlers.NewAuthHandler(db, userService, tokenService)
	userHandler := handlers.NewUserHandler(db, userService)
	taskHandler := handlers.NewTaskHandler(db, taskService)

	api := engine.Group("/api/v1")
	{
		api.POST("/login", authHandler.Login)
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users/:id", userHandler.GetUser)

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(db, tokenService, userService))
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	engine.GET("/healthz", srv.handleHealth(redisCache))
	engine.GET("/metrics", metrics.Handler())

	srv.mountStatic()

	return srv
}

// Engine exposes the underlying Gin engine, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) handleHealth(redisCache *cache.RedisCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{"status": "ok"}

		if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}

		if redisCache != nil {
			if err := redisCache.Health(c.Request.Context()); err != nil {
				// Cache loss degrades performance, not availability.
				status["cache"] = "down"
			}
		}

		c.JSON(http.StatusOK, status)
	}
}
