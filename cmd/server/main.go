// cmd/server runs the litterstats service: a periodic fetch/compute/
// publish loop plus an HTTP server exposing the report, the raw event
// feed, a websocket watch, and the static site.
package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/matthewbaird/litterstats/internal/config"
	"github.com/matthewbaird/litterstats/internal/eventlog"
	"github.com/matthewbaird/litterstats/internal/handler"
	"github.com/matthewbaird/litterstats/internal/litterbot"
	"github.com/matthewbaird/litterstats/internal/publish"
	"github.com/matthewbaird/litterstats/internal/refresh"
	"github.com/matthewbaird/litterstats/internal/server"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("server: ")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.RequireCredentials(); err != nil {
		log.Fatalf("config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	store := eventlog.NewSQLiteStore(db)
	if err := store.CreateTable(ctx); err != nil {
		log.Fatalf("running schema migration: %v", err)
	}
	log.Println("database migrated successfully")

	var clientOpts []litterbot.Option
	if cfg.APIBaseURL != "" {
		clientOpts = append(clientOpts, litterbot.WithBaseURL(cfg.APIBaseURL))
	}

	hub := handler.NewHub()
	refresher := &refresh.Refresher{
		Source: &refresh.APISource{
			Client:   litterbot.New(clientOpts...),
			Username: cfg.Username,
			Password: cfg.Password,
			Limit:    cfg.FetchLimit,
		},
		Store:     store,
		Publisher: publish.New(cfg.SiteDir),
		CatName:   cfg.CatName,
		Loc:       loc,
		Notify:    hub.Broadcast,
	}
	go refresher.Run(ctx, cfg.FetchEvery)

	if err := server.Run(ctx, server.Config{
		Port:    cfg.Port,
		SiteDir: cfg.SiteDir,
		Store:   store,
		Loc:     loc,
		Hub:     hub,
	}); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
