package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/3bsolutionsltd/eastafricom-sub002/internal/bootstrap"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/cache"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/config"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/controllers"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/database"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/metrics"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/repositories"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/routes"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/services"
	"github.com/3bsolutionsltd/eastafricom-sub002/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	if err := database.Connect(&cfg.Database); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	db := database.GetDB()
	if err := bootstrap.Run(db, &cfg.Bootstrap); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}

	store, err := buildStorage(cfg)
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}

	contentCache := buildCache(cfg)
	defer contentCache.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Repositories
	userRepo := repositories.NewAdminUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	attemptRepo := repositories.NewLoginAttemptRepository(db)
	challengeRepo := repositories.NewLoginChallengeRepository(db)
	activityRepo := repositories.NewActivityLogRepository(db)

	// Services
	window, err := cfg.Auth.GetBruteForceWindow()
	if err != nil || window <= 0 {
		window = 15 * time.Minute
	}
	guard := services.NewBruteForceGuard(attemptRepo, window, cfg.Auth.MaxFailedLogins)
	activity := services.NewActivityLogger(activityRepo)
	authService := services.NewAuthService(userRepo, sessionRepo, challengeRepo, guard, activity, cfg)
	previewService := services.NewPreviewService(cfg)
	catalogService := services.NewCatalogService(db)
	testimonialService := services.NewTestimonialService(db)
	slideshowService := services.NewSlideshowService(db)
	showcaseService := services.NewShowcaseService(db)
	siteService := services.NewSiteService(db)
	quotationService := services.NewQuotationService(db)
	mediaService := services.NewMediaService(db, store, &cfg.Storage)

	sessionTimeout := authService.SessionTimeout()
	maintenanceService := services.NewMaintenanceService(sessionRepo, attemptRepo, challengeRepo, sessionTimeout, window)

	// Controllers
	deps := &routes.Deps{
		Config:  cfg,
		Auth:    authService,
		Cache:   contentCache,
		Metrics: m,

		AuthController:        controllers.NewAuthController(authService, activity, cfg, m),
		TOTPController:        controllers.NewTOTPController(authService),
		ProductController:     controllers.NewProductController(catalogService, previewService, contentCache),
		TestimonialController: controllers.NewTestimonialController(testimonialService, contentCache),
		SlideshowController:   controllers.NewSlideshowController(slideshowService, contentCache),
		ShowcaseController:    controllers.NewShowcaseController(showcaseService, contentCache),
		SiteController:        controllers.NewSiteController(siteService, contentCache),
		QuotationController:   controllers.NewQuotationController(quotationService, m),
		MediaController:       controllers.NewMediaController(mediaService, m),
		MaintenanceController: controllers.NewMaintenanceController(maintenanceService, contentCache, m),
	}

	router := gin.Default()
	router.Use(corsMiddleware(cfg))
	routes.SetupRoutes(router, deps)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}
	if rt, err := cfg.Server.GetReadTimeout(); err == nil && rt > 0 {
		srv.ReadTimeout = rt
	}
	if wt, err := cfg.Server.GetWriteTimeout(); err == nil && wt > 0 {
		srv.WriteTimeout = wt
	}

	go func() {
		log.Printf("Server running on %s (storage=%T)", addr, store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	waitForShutdown(srv, cfg)
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.CloudStorage.Enabled {
		azStorage, err := storage.NewAzureBlobStorage(
			cfg.CloudStorage.Endpoint,
			cfg.CloudStorage.AccessKey,
			cfg.CloudStorage.SecretKey,
			cfg.CloudStorage.PublicContainer,
			cfg.CloudStorage.PrivateContainer,
		)
		if err != nil {
			log.Printf("Azure Blob init failed, falling back to LocalStorage: %v", err)
			return storage.NewLocalStorage(cfg.Storage.Path, "/media"), nil
		}
		return azStorage, nil
	}
	return storage.NewLocalStorage(cfg.Storage.Path, "/media"), nil
}

func buildCache(cfg *config.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.NewNoopCache()
	}
	redisCache, err := cache.NewRedisCache(&cfg.Cache)
	if err != nil {
		log.Printf("Redis init failed, caching disabled: %v", err)
		return cache.NewNoopCache()
	}
	return redisCache
}

func waitForShutdown(srv *http.Server, cfg *config.Config) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down server...")

	timeout, err := cfg.Server.GetShutdownTimeout()
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.CORS.AllowedOrigins))
	allowAll := len(cfg.CORS.AllowedOrigins) == 0
	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			if cfg.CORS.AllowCredentials {
				c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			c.Writer.Header().Set("Vary", "Origin")
		}
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, X-Cron-Secret")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
