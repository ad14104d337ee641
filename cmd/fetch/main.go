// cmd/fetch runs one fetch/compute/publish pass and exits: fetch the
// robot's activity history, ingest it, generate the weekly report, and
// write site/data.json if it changed. Suited to cron and CI pipelines
// that commit the artifact only when its content moved.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/matthewbaird/litterstats/internal/config"
	"github.com/matthewbaird/litterstats/internal/eventlog"
	"github.com/matthewbaird/litterstats/internal/litterbot"
	"github.com/matthewbaird/litterstats/internal/publish"
	"github.com/matthewbaird/litterstats/internal/refresh"
	"github.com/matthewbaird/litterstats/internal/stats"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("fetch: ")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if err := cfg.RequireCredentials(); err != nil {
		log.Fatalf("%v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("%v", err)
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

	var clientOpts []litterbot.Option
	if cfg.APIBaseURL != "" {
		clientOpts = append(clientOpts, litterbot.WithBaseURL(cfg.APIBaseURL))
	}

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
	}

	report, changed, err := refresher.RunOnce(ctx)
	if errors.Is(err, stats.ErrEmptyWindow) {
		log.Printf("no data in the reporting window yet; nothing published")
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	if changed {
		log.Printf("published %s/%s (%d visits, %s)", cfg.SiteDir, publish.DataFile,
			report.TotalVisits, report.DateRange.Display)
	} else {
		log.Printf("report unchanged, nothing written")
	}
}
