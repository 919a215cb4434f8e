//go:build ignore

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/brokerdesk/lead-portal/internal/database"
	"github.com/brokerdesk/lead-portal/internal/database/models"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/brokerdesk/lead-portal/pkg/config"
	"github.com/brokerdesk/lead-portal/pkg/util"
	"github.com/joho/godotenv"
)

// Creates the initial admin and broker accounts. Run once after the schema
// exists: go run scripts/seed.go
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	users := store.NewGormUserStore(db)
	ctx := context.Background()

	adminEmail := envOr("ADMIN_EMAIL", "admin@realestate.com")
	adminPassword := envOr("ADMIN_PASSWORD", "AdminPass123!")
	brokerEmail := envOr("BROKER_EMAIL", "broker@realestate.com")
	brokerPassword := envOr("BROKER_PASSWORD", "BrokerPass123!")

	seed := []struct {
		email    string
		password string
		role     string
		name     string
	}{
		{adminEmail, adminPassword, models.RoleAdmin, "System Administrator"},
		{brokerEmail, brokerPassword, models.RoleBroker, "Demo Broker"},
	}

	for _, s := range seed {
		hash, err := auth.HashPassword(s.password)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", s.email, err)
		}
		user := models.User{
			Email:        s.email,
			PasswordHash: hash,
			Role:         s.role,
			FullName:     s.name,
			Active:       true,
		}
		if err := users.Create(ctx, &user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				fmt.Printf("user %s already exists, skipping\n", s.email)
				continue
			}
			log.Fatalf("failed to create %s: %v", s.email, err)
		}
		fmt.Printf("created %s user %s\n", s.role, s.email)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
