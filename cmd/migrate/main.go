package main

import (
	"log"

	"interview-agent/internal/config"
	"interview-agent/internal/database"
	"interview-agent/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg)
	l := logger.Get()
	defer l.Sync()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, "database/migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
}
