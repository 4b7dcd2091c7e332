package main

import (
	"log"

	"cataloger/internal/api"
	"cataloger/internal/broker"
	"cataloger/internal/cache"
	"cataloger/internal/config"
	"cataloger/internal/database"
	"cataloger/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Initialize event publisher
	events := broker.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer events.Close()

	// Initialize response cache
	responseCache, err := cache.New(cfg.RedisURL, logger)
	if err != nil {
		logger.Error("Cache unavailable, continuing without it: %v", err)
		responseCache = nil
	}

	// Initialize API server
	server := api.New(cfg, logger, db, events, responseCache)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
