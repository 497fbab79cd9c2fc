package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gravadigital/muro-api/internal/auth"
	"github.com/gravadigital/muro-api/internal/config"
	"github.com/gravadigital/muro-api/internal/logger"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	logger.Initialize("info")
	log := logger.Database()

	hashPassword := flag.String("hash-password", "", "Print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := auth.HashPassword(*hashPassword)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	log.Info("Starting migration process")

	db, err := postgres.Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.AutoMigrate(db); err != nil {
		log.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	log.Info("Migrations completed successfully")
	fmt.Println("Migration process completed!")
}
