// main.go
package main

import (
	"context"
	"log"

	"cafeteria-booking/cmd"
	"cafeteria-booking/internal/data/repository"
	"cafeteria-booking/internal/data/seed"
	"cafeteria-booking/internal/wire"
	"cafeteria-booking/pkg/database"
	"cafeteria-booking/pkg/utils"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Apply schema
	if err := database.Migrate(context.Background(), db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	clock := clockwork.NewRealClock()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Seed baseline data (seats, timeslots, managers)
	if err := seed.Run(context.Background(), repos, clock, logger); err != nil {
		logger.Fatal("Failed to seed database", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, clock, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
