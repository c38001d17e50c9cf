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
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/urbanrenew/renewal-platform/docs"
	"github.com/urbanrenew/renewal-platform/internal/api"
	"github.com/urbanrenew/renewal-platform/internal/core/service"
	"github.com/urbanrenew/renewal-platform/internal/infrastructure/config"
	mongodb "github.com/urbanrenew/renewal-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/urbanrenew/renewal-platform/internal/infrastructure/db/redis"
	"github.com/urbanrenew/renewal-platform/internal/infrastructure/queue"
	"github.com/urbanrenew/renewal-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title Urban Renewal Platform API
// @version 1.0
// @description Resident platform for urban renewal projects: accounts,
// @description sessions, project voting and the communication center.
// @BasePath /
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "renewal-platform",
		Pretty:  cfg.Development(),
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if derr := mongoClient.Disconnect(context.Background()); derr != nil {
			log.Error().Err(derr).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rdb.Close(); cerr != nil {
			log.Error().Err(cerr).Msg("redis close failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		return err
	}

	messageService := service.NewMessageService(mongodb.NewMessageRepository(db), log)
	dispatcher := queue.NewDispatcher(0, messageService, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(api.RouterOptions{
		Config:         cfg,
		Mongo:          db,
		Redis:          rdb,
		Dispatcher:     dispatcher,
		MessageService: messageService,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewUserRepository(db),
		mongodb.NewProjectRepository(db),
		mongodb.NewVoteRepository(db),
		mongodb.NewMessageRepository(db),
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
