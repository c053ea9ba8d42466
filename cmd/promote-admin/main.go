// Command promote-admin grants super_admin to an existing account. It
// exists to bootstrap the first super admin on a fresh deployment.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dstanic/folio-api/internal/config"
	"github.com/dstanic/folio-api/internal/database"
	"github.com/dstanic/folio-api/internal/observability"
	"github.com/dstanic/folio-api/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: promote-admin <email>")
		os.Exit(1)
	}
	email := os.Args[1]

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
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	profileService := services.NewProfileService(db)
	settingsService := services.NewSettingsService(db)
	auditService := services.NewAuditService(db, logger)
	authService := services.NewAuthService(profileService, settingsService, auditService, nil, logger)

	profile, err := authService.PromoteToSuperAdmin(ctx, email)
	if err != nil {
		log.Fatalf("Failed to promote %s: %v", email, err)
	}

	fmt.Printf("%s is now a super admin (id %s)\n", profile.Email, profile.ID)
}
