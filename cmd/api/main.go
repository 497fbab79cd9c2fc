package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gravadigital/muro-api/internal/auth"
	"github.com/gravadigital/muro-api/internal/config"
	"github.com/gravadigital/muro-api/internal/logger"
	"github.com/gravadigital/muro-api/internal/relay"
	"github.com/gravadigital/muro-api/internal/server"
	"github.com/gravadigital/muro-api/internal/storage"
	"github.com/gravadigital/muro-api/internal/storage/postgres"
	"github.com/gravadigital/muro-api/internal/transport"
	"github.com/gravadigital/muro-api/internal/upload"
	"github.com/gravadigital/muro-api/internal/wall"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Server.LogLevel)
	log := logger.Get()

	storageType, err := storage.ValidateStorageType(cfg.Storage.Type)
	if err != nil {
		log.Error("Invalid storage configuration", "error", err)
		os.Exit(1)
	}

	var store *storage.Container
	if storageType == storage.StorageTypePostgres {
		db, err := postgres.Connect(cfg)
		if err != nil {
			log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		store = storage.NewPostgresContainer(db)
	} else {
		log.Warn("Using in-memory storage; events and guests vanish on restart")
		store = storage.NewMemoryContainer()
	}

	// The in-process broker always runs: it carries relay events to this
	// instance's own SSE viewers. Pusher and Postgres are added per config.
	local := transport.NewBroker()
	broadcasters := []transport.Broadcaster{local}
	var conn transport.Connection = local

	for _, backend := range strings.Split(cfg.Transport.Backends, ",") {
		switch strings.TrimSpace(backend) {
		case "pusher":
			broadcasters = append(broadcasters, transport.NewPusherBroadcaster(cfg))
		case "postgres":
			pg, err := transport.NewPGBroker(cfg.GetDatabaseURL())
			if err != nil {
				log.Error("Failed to start postgres transport", "error", err)
				os.Exit(1)
			}
			defer pg.Close()
			broadcasters = append(broadcasters, pg)
			// Viewers must hear other instances too, so the subscribe side
			// moves to the NOTIFY loop.
			conn = pg
		case "memory", "":
		default:
			log.Warn("Unknown transport backend", "backend", backend)
		}
	}

	uploader, err := upload.NewMinioUploader(context.Background(), cfg)
	if err != nil {
		log.Error("Failed to connect to image store", "error", err)
		os.Exit(1)
	}

	deps := server.Deps{
		Store:    store,
		Relay:    relay.New(broadcasters...),
		Conn:     conn,
		Ledger:   wall.NewLedger(),
		Uploader: uploader,
		Auth:     auth.NewService(cfg.Auth.AdminPasswordHash, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute),
	}

	srv := server.New(cfg, deps)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}
