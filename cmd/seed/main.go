// Command seed provisions the initial super admin account and a handful of
// sample leads. Safe to re-run: the unique username index turns a second run
// into a duplicate-key no-op for the admin user.
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/service"
	"github.com/actionauto/crm-api/internal/infrastructure/config"
	crmmongo "github.com/actionauto/crm-api/internal/infrastructure/db/mongo"
	"github.com/actionauto/crm-api/pkg/logger"
)

func main() {
	withLeads := flag.Bool("leads", false, "also insert sample leads")
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Setup(cfg.Env, cfg.LogLevel, os.Stdout)

	client, db, err := crmmongo.Connect(ctx, crmmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := crmmongo.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal().Msg("SEED_ADMIN_PASSWORD is required")
	}
	hash, err := service.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	admin := &domain.User{
		Name:         "Jason Berry",
		Username:     "2026-00001",
		PasswordHash: hash,
		Role:         domain.RoleSuperAdmin,
		Email:        "jason.berry@actionauto.example",
		IsActive:     true,
	}

	created, err := users.Insert(ctx, admin)
	switch {
	case errors.Is(err, domain.ErrDuplicateKey):
		log.Info().Str("username", admin.Username).Msg("super admin already exists, skipping")
	case err != nil:
		log.Fatal().Err(err).Msg("failed to insert super admin")
	default:
		log.Info().Str("id", created.ID).Str("username", created.Username).Msg("super admin created")
	}

	if *withLeads {
		if err := seedLeads(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("failed to insert sample leads")
		}
		log.Info().Msg("sample leads created")
	}
}

func seedLeads(ctx context.Context, db *mongodriver.Database) error {
	leads := crmmongo.NewLeadRepository(db)

	samples := []domain.Lead{
		{
			CustomerName:    "Maria Gonzalez",
			Email:           "maria.gonzalez@example.com",
			Channel:         domain.ChannelEmail,
			Status:          domain.LeadStatusNew,
			Subject:         "2023 Silverado availability",
			Message:         "Hi, do you still have the 2023 Silverado 1500 listed on your site? I'd like to schedule a test drive this week.",
			VehicleInterest: "2023 Chevrolet Silverado 1500",
			Source:          "website",
		},
		{
			CustomerName:    "Derek Holt",
			Phone:           "+15554430921",
			Channel:         domain.ChannelSMS,
			Status:          domain.LeadStatusNew,
			Message:         "Saw your ad for the used Equinox, is it still for sale?",
			VehicleInterest: "2021 Chevrolet Equinox",
			Source:          "sms",
		},
		{
			CustomerName: "Priya Natarajan",
			Email:        "priya.n@example.com",
			Channel:      domain.ChannelEmail,
			Status:       domain.LeadStatusNew,
			Subject:      "Trade-in valuation",
			Message:      "What would you offer for a 2019 Malibu with 42k miles as a trade-in?",
			Source:       "website",
		},
	}

	for i := range samples {
		if _, err := leads.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}
	return nil
}
