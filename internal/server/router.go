package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/mmoslabs/mmos-backend/internal/handlers"
	"github.com/mmoslabs/mmos-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName      string
	AllowedOrigins   []string
	MediaDir         string
	TenantMiddleware *middleware.TenantMiddleware
	ContentHandler   *handlers.ContentHandler
	BookAdminHandler *handlers.BookAdminHandler
	MindHandler      *handlers.MindHandler
	PreviewHandler   *handlers.PreviewHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	if dir := strings.TrimSpace(cfg.MediaDir); dir != "" {
		router.Static("/media", dir)
	}

	// Tenant-scoped API
	api := router.Group("/api")
	api.Use(cfg.TenantMiddleware.RequireTenant())
	{
		api.GET("/admin/books", cfg.BookAdminHandler.Dashboard)
		api.GET("/minds/:slug/artifacts", cfg.MindHandler.Artifacts)

		api.GET("/content", cfg.ContentHandler.ListContent)
		api.POST("/content", cfg.ContentHandler.CreateContent)
		api.PUT("/content/:id", cfg.ContentHandler.UpdateContent)
		api.DELETE("/content/:id", cfg.ContentHandler.DeleteContent)
		api.GET("/content/:id/preview", cfg.PreviewHandler.PreviewContent)

		api.POST("/preview", cfg.PreviewHandler.PreviewBody)
	}

	return router
}
