package router

import (
	"context"
	"net/http"
	"time"

	"user-service/api"
	"user-service/internal/adapter/gin/handler"
	"user-service/internal/adapter/gin/middleware"
	"user-service/pkg/logger"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

const (
	openAPIPath        = "/openapi/users.swagger.json"
	healthCheckTimeout = 2 * time.Second
)

// Pinger reports whether the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options controls the optional parts of the router
type Options struct {
	ServiceName    string
	ServiceVersion string
	AllowedOrigins []string
	SwaggerEnabled bool
	// ExposeErrors adds the internal error detail to 500 responses
	ExposeErrors bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(opts Options, userHandler *handler.UserHandler, db Pinger, log *zap.Logger) *gin.Engine {
	router := gin.New()
	// /usuarios/ is served like /usuarios instead of answering with a redirect
	router.RedirectTrailingSlash = false

	// Global middleware
	router.Use(middleware.Recovery(log, opts.ExposeErrors))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(middleware.ErrorHandler(log, opts.ExposeErrors))

	router.GET("/", index(opts))
	router.GET("/health", health(opts, db, log))

	// The same user routes are reachable with and without the /api prefix
	for _, prefix := range []string{"/usuarios", "/api/usuarios"} {
		users := router.Group(prefix)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.POST("/", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	if opts.SwaggerEnabled {
		router.GET(openAPIPath, func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", api.UsersSwaggerJSON)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL(openAPIPath))))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
			"path":    c.Request.URL.Path,
		})
	})

	return router
}

func index(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Users API",
			"data": gin.H{
				"service": opts.ServiceName,
				"version": opts.ServiceVersion,
				"endpoints": gin.H{
					"list":   "GET /usuarios",
					"get":    "GET /usuarios/:id",
					"create": "POST /usuarios",
					"update": "PUT /usuarios/:id",
					"delete": "DELETE /usuarios/:id",
					"health": "GET /health",
				},
			},
		})
	}
}

func health(opts Options, db Pinger, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.WithContext(ctx, log).Warn("health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "unhealthy",
				"data":    gin.H{"service": opts.ServiceName, "database": "unreachable"},
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "healthy",
			"data":    gin.H{"service": opts.ServiceName, "database": "ok"},
		})
	}
}
