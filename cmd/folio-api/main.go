package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dstanic/folio-api/internal/config"
	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/handlers"
	"github.com/dstanic/folio-api/internal/lockout"
	authmw "github.com/dstanic/folio-api/internal/middleware"
	"github.com/dstanic/folio-api/internal/models"
	"github.com/dstanic/folio-api/internal/observability"
	"github.com/dstanic/folio-api/internal/services"
	"github.com/dstanic/folio-api/internal/storage"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	limiter, err := lockout.NewFromURL(cfg.RedisURL, cfg.LockoutWindow)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	if limiter == nil {
		logger.Warn("REDIS_URL not set, login lockout is disabled")
	}

	store, err := storage.NewLocalStore(cfg.MediaDir)
	if err != nil {
		logger.Fatal("failed to prepare media directory", zap.Error(err))
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	profileService := services.NewProfileService(db)
	settingsService := services.NewSettingsService(db)
	tokenService := services.NewTokenService(db, settingsService)
	auditService := services.NewAuditService(db, logger)
	authService := services.NewAuthService(profileService, settingsService, auditService, limiter, logger)
	emailService := services.NewEmailService(cfg.SMTP)
	contentService := services.NewContentService(db)
	projectService := services.NewProjectService(db)
	teamService := services.NewTeamService(db)
	messageService := services.NewMessageService(db, emailService, logger)
	mediaService := services.NewMediaService(db, store, cfg.MediaMaxBytes, logger)

	authHandler := handlers.NewAuthHandler(cfg, authService, profileService, tokenService, jwtService)
	meHandler := handlers.NewMeHandler(profileService)
	usersHandler := handlers.NewUsersHandler(authService, profileService)
	contentHandler := handlers.NewContentHandler(contentService, auditService)
	projectsHandler := handlers.NewProjectsHandler(projectService)
	teamHandler := handlers.NewTeamHandler(teamService)
	messagesHandler := handlers.NewMessagesHandler(messageService)
	mediaHandler := handlers.NewMediaHandler(mediaService, auditService, cfg.BaseURL, cfg.MediaMaxBytes)
	settingsHandler := handlers.NewSettingsHandler(settingsService, auditService)
	auditHandler := handlers.NewAuditHandler(auditService)
	dashboardHandler := handlers.NewDashboardHandler(projectService, messageService, mediaService, profileService, auditService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	// Public site surface.
	api.Get("/content/hero", contentHandler.GetHero)
	api.Get("/content/about", contentHandler.GetAbout)
	api.Get("/projects", projectsHandler.ListPublished)
	api.Get("/projects/:slug", projectsHandler.GetBySlug)
	api.Get("/team", teamHandler.ListVisible)
	api.Post("/messages", messagesHandler.Submit)

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	if authHandler.HasOAuthProvider() {
		auth.Get("/google/consent", authHandler.GetConsentURL)
		auth.Get("/google/callback", authHandler.Callback)
		auth.Post("/exchange", authHandler.ExchangeCode)
	}

	// Signed-in surface, no role requirement.
	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))
	protected.Post("/auth/logout-all", authHandler.LogoutAll)
	protected.Get("/users/me", meHandler.GetMe)
	protected.Patch("/users/me", meHandler.UpdateMe)

	// Editor surface: content, projects, team, messages, media.
	editor := api.Group("/admin")
	editor.Use(authmw.Auth(jwtService))
	editor.Use(authmw.RequireRole(profileService, models.RoleEditor))

	editor.Get("/dashboard", dashboardHandler.Get)

	editor.Put("/content/hero", contentHandler.UpdateHero)
	editor.Put("/content/about", contentHandler.UpdateAbout)

	editor.Get("/projects", projectsHandler.ListAll)
	editor.Post("/projects", projectsHandler.Create)
	editor.Get("/projects/:id", projectsHandler.Get)
	editor.Put("/projects/:id", projectsHandler.Update)
	editor.Delete("/projects/:id", projectsHandler.Delete)
	editor.Post("/projects/reorder", projectsHandler.Reorder)

	editor.Get("/team", teamHandler.ListAll)
	editor.Post("/team", teamHandler.Create)
	editor.Put("/team/:id", teamHandler.Update)
	editor.Delete("/team/:id", teamHandler.Delete)

	editor.Get("/messages", messagesHandler.List)
	editor.Patch("/messages/:id", messagesHandler.MarkRead)
	editor.Delete("/messages/:id", messagesHandler.Delete)

	editor.Get("/media", mediaHandler.List)
	editor.Post("/media", mediaHandler.Upload)
	editor.Delete("/media/:id", mediaHandler.Delete)

	// Admin surface: user management, settings, audit log.
	admin := api.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.RequireRole(profileService, models.RoleAdmin))

	admin.Get("/users", usersHandler.List)
	admin.Post("/users", usersHandler.Create)
	admin.Get("/users/:id", usersHandler.Get)
	admin.Patch("/users/:id", usersHandler.Update)
	admin.Delete("/users/:id", usersHandler.Delete)

	admin.Get("/settings", settingsHandler.List)
	admin.Get("/settings/:key", settingsHandler.Get)
	admin.Put("/settings/:key", settingsHandler.Update)

	admin.Get("/audit-logs", auditHandler.List)

	// Stored blobs are public once uploaded.
	app.Get("/media/:fileName", mediaHandler.Serve)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		logger.Info("server starting", zap.String("addr", addr))
		if err := app.Run(addr); err != nil {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
}
