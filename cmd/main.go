package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmoslabs/mmos-backend/internal/clients/redis"
	"github.com/mmoslabs/mmos-backend/internal/db"
	"github.com/mmoslabs/mmos-backend/internal/handlers"
	"github.com/mmoslabs/mmos-backend/internal/logger"
	"github.com/mmoslabs/mmos-backend/internal/middleware"
	"github.com/mmoslabs/mmos-backend/internal/observability"
	"github.com/mmoslabs/mmos-backend/internal/repos"
	"github.com/mmoslabs/mmos-backend/internal/server"
	"github.com/mmoslabs/mmos-backend/internal/services"
	"github.com/mmoslabs/mmos-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "mmos-backend",
		Environment: utils.GetEnv("DEPLOY_ENV", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
	})
	if shutdownOTel != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(ctx)
		}()
	}

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	mediaDir := utils.GetEnv("MEDIA_DIR", "media", log)
	allowedOrigins := splitOrigins(utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log))

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	contentRepo := repos.NewContentRepo(thePG, log)
	projectRepo := repos.NewContentProjectRepo(thePG, log)
	mindRepo := repos.NewMindRepo(thePG, log)
	tagRepo := repos.NewTagRepo(thePG, log)

	// Book dashboard cache; the service degrades to direct reads without it
	var bookCache redis.BookCache
	if cache, err := redis.NewBookCache(log); err != nil {
		log.Warn("Could not init BookCache, dashboards uncached", "error", err)
	} else {
		bookCache = cache
		defer bookCache.Close()
	}

	// Services
	log.Info("Setting up services from main...")
	coverService, err := services.NewCoverService(log)
	if err != nil {
		log.Warn("Could not init CoverService, placeholder covers disabled", "error", err)
	}
	contentService := services.NewContentService(thePG, log, contentRepo, projectRepo, bookCache)
	bookService := services.NewBookAdminService(thePG, log, contentRepo, projectRepo, tagRepo, bookCache, coverService)
	artifactService := services.NewArtifactService(thePG, log, contentRepo, projectRepo, mindRepo)
	previewService := services.NewDocumentPreviewService(log, contentService)

	// Handlers
	log.Info("Setting up handlers from main...")
	contentHandler := handlers.NewContentHandler(log, contentService)
	bookAdminHandler := handlers.NewBookAdminHandler(log, bookService)
	mindHandler := handlers.NewMindHandler(log, artifactService)
	previewHandler := handlers.NewPreviewHandler(log, previewService)

	// Middleware
	log.Info("Setting up middleware from main...")
	tenantMiddleware := middleware.NewTenantMiddleware(log, jwtSecretKey)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		ServiceName:      "mmos-backend",
		AllowedOrigins:   allowedOrigins,
		MediaDir:         mediaDir,
		TenantMiddleware: tenantMiddleware,
		ContentHandler:   contentHandler,
		BookAdminHandler: bookAdminHandler,
		MindHandler:      mindHandler,
		PreviewHandler:   previewHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}

func splitOrigins(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
