package main

import (
	"log"

	"github.com/impostor-dev/impostor/db"
	"github.com/impostor-dev/impostor/internal/auth"
	"github.com/impostor-dev/impostor/internal/config"
	"github.com/impostor-dev/impostor/internal/router"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config.Active = config.FromEnv()

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	if config.Active.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(config.Active.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedDatabase(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	r := router.NewRouter()

	if err := r.Run(":" + config.Active.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
