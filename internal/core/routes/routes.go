package routes

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voycel/Asset-Tracker-sub000/internal/core/container"
	"github.com/voycel/Asset-Tracker-sub000/internal/middleware"
)

// NewRouter builds the engine with the shared middleware chain.
func NewRouter(logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(corsConfig())

	return router
}

func RegisterRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	c.SchemaHandler.RegisterRoutes(router)
	c.TaxonomyHandler.RegisterRoutes(router)
	c.AssetHandler.RegisterRoutes(router)
	c.ValueHandler.RegisterRoutes(router)
	c.RelationshipHandler.RegisterRoutes(router)
	c.UserHandler.RegisterRoutes(router)
	c.ExportHandler.RegisterRoutes(router)

	if c.SheetsHandler != nil {
		c.SheetsHandler.RegisterRoutes(router)
	}
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())

	openapiFilePath := "./docs/index.html"
	if _, err := os.Stat(openapiFilePath); err == nil {
		router.GET("/openapi.html", func(c *gin.Context) {
			c.File(openapiFilePath)
		})
	}
}

func corsConfig() gin.HandlerFunc {
	allowedOrigins := []string{"*"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		allowedOrigins = []string{origins}
	}

	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
