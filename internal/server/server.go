// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matthewbaird/litterstats/internal/eventlog"
	"github.com/matthewbaird/litterstats/internal/handler"
)

// Config holds server configuration.
type Config struct {
	Port    int
	SiteDir string
	Store   eventlog.Store
	Loc     *time.Location
	Hub     *handler.Hub
}

// Run starts the HTTP server with all routes registered. It blocks
// until the context is cancelled or the listener fails.
func Run(ctx context.Context, cfg Config) error {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	rh := handler.NewReportHandler(cfg.Hub, cfg.SiteDir)
	r.Get("/v1/report", rh.HandleGetReport)

	eh := handler.NewEventsHandler(cfg.Store, cfg.Loc)
	r.Get("/v1/events", eh.HandleListEvents)

	r.Get("/v1/report/watch", cfg.Hub.ServeHTTP)

	// Everything else is the static site (index, charts, assets).
	r.Handle("/*", http.FileServer(http.Dir(cfg.SiteDir)))

	wrapped := handler.Recovery(handler.Logging(r))

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: wrapped,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
