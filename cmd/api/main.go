// Command api runs the Action Auto CRM HTTP server.
//
// @title        Action Auto CRM API
// @version      1.0
// @description  CRM backend for an auto dealership: leads, tasks, activities, time clock, and dashboard.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/actionauto/crm-api/internal/api"
	"github.com/actionauto/crm-api/internal/infrastructure/config"
	crmmongo "github.com/actionauto/crm-api/internal/infrastructure/db/mongo"
	crmredis "github.com/actionauto/crm-api/internal/infrastructure/db/redis"
	"github.com/actionauto/crm-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Local development convenience; in production the environment is the
	// source of truth and no .env file exists.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.L()
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Setup(cfg.Env, cfg.LogLevel, os.Stdout)

	mongoClient, db, err := crmmongo.Connect(ctx, crmmongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := crmredis.Connect(ctx, crmredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	e := api.NewRouter(cfg, db, rdb)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the collection indexes at startup. Index creation in
// MongoDB is idempotent, so repeated boots are safe.
func ensureIndexes(ctx context.Context, db *mongodriver.Database) error {
	indexCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	type indexer interface {
		EnsureIndexes(ctx context.Context) error
	}
	repos := []indexer{
		crmmongo.NewUserRepository(db),
		crmmongo.NewLeadRepository(db),
		crmmongo.NewTaskRepository(db),
		crmmongo.NewActivityRepository(db),
		crmmongo.NewTimeClockRepository(db),
	}
	for _, r := range repos {
		if err := r.EnsureIndexes(indexCtx); err != nil {
			return err
		}
	}
	return nil
}
