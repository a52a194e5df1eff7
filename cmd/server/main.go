package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/mattbenson/storefront/internal/config"
	"github.com/mattbenson/storefront/internal/server"
	"github.com/mattbenson/storefront/internal/store"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	db, err := store.Open(cfg.Database.URL)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("running schema migration: %v", err)
	}
	log.Println("database migrated successfully")

	if err := store.EnsureSeeded(ctx, db); err != nil {
		log.Fatalf("seeding database: %v", err)
	}

	if err := server.Run(ctx, server.Config{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		DB:           db,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
