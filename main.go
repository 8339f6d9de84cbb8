// main.go
package main

import (
	"context"
	"log"
	"time"

	"paramount-autos/cmd"
	"paramount-autos/internal/data/repository"
	"paramount-autos/internal/scheduler"
	"paramount-autos/internal/wire"
	"paramount-autos/pkg/database"
	"paramount-autos/pkg/middleware"
	"paramount-autos/pkg/notify"
	"paramount-autos/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	schemaCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureSchema(schemaCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	// Redis only backs the tracking rate limit, so the API runs without it
	var limiter middleware.RateLimiter
	rdb, err := database.NewRedisClient(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, tracking rate limit disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		limiter = middleware.NewRedisRateLimiter(rdb, config.Redis.TrackingLimit, config.Redis.TrackingTTL)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(wire.Deps{
		Repo:     repos,
		DB:       db,
		Notifier: notify.New(config.Email, logger),
		Limiter:  limiter,
	}, config, logger)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = app.Service.Auth.SeedAdmin(seedCtx)
	cancel()
	if err != nil {
		logger.Error("Failed to seed admin account", zap.Error(err))
	}

	jobs, err := scheduler.NewScheduler(config.Session.CleanupCron, app.Service.Auth, logger)
	if err != nil {
		logger.Fatal("Failed to create scheduler", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger, app.Service.Booking.Drain); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
