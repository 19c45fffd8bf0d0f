package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/adapter/http/middleware"
	"todoapi/pkg/config"
	"todoapi/pkg/logging"
	"todoapi/pkg/telemetry"
)

type HandlersConfig struct {
	UserHandler *handler.UserHandler
	TodoHandler *handler.TodoHandler
}

func SetupRouter(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *logging.Logger, cfg *config.AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(middleware.RequestID())

	if logger != nil {
		router.Use(otelgin.Middleware(logger.ServiceName()))
		router.Use(middleware.RequestLogging(logger))
	}

	if metrics != nil {
		router.Use(middleware.Metrics(metrics))
	}

	if cfg != nil && cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimitConfigs, metrics)
		router.Use(limiter.Middleware())
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests wires handlers without telemetry, logging or rate
// limiting.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	registerRoutes(router, handlers)

	return router
}

// registerRoutes is the route table. The todo list endpoint takes a
// user_id query parameter so it stays disjoint from /api/todos/:id.
func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	api := router.Group("/api")

	if handlers.UserHandler != nil {
		users := api.Group("/users")
		{
			users.POST("", handlers.UserHandler.CreateUser)
			users.GET("", handlers.UserHandler.GetAllUsers)
			users.GET("/:id", handlers.UserHandler.GetUserByID)
			users.GET("/username/:username", handlers.UserHandler.GetUserByUsername)
			users.PUT("/:id", handlers.UserHandler.UpdateUser)
			users.DELETE("/:id", handlers.UserHandler.DeleteUser)
		}
	}

	if handlers.TodoHandler != nil {
		todos := api.Group("/todos")
		{
			todos.GET("", handlers.TodoHandler.GetTodosByUser)
			todos.GET("/:id", handlers.TodoHandler.GetTodoByID)
			todos.POST("/:userId", handlers.TodoHandler.CreateTodo)
			todos.PUT("/:id", handlers.TodoHandler.UpdateTodo)
			todos.DELETE("/:id", handlers.TodoHandler.DeleteTodo)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
