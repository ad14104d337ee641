package handler

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/matthewbaird/litterstats/internal/stats"
)

// Hub fans freshly published reports out to websocket subscribers and
// remembers the latest one for new connections and the REST endpoint.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan stats.Report]struct{}
	latest *stats.Report
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[chan stats.Report]struct{})}
}

// Broadcast records r as the latest report and pushes it to all
// subscribers. Slow subscribers are skipped, not waited for; they
// will catch up on the next broadcast.
func (h *Hub) Broadcast(r stats.Report) {
	h.mu.Lock()
	h.latest = &r
	for ch := range h.subs {
		select {
		case ch <- r:
		default:
		}
	}
	h.mu.Unlock()
}

// Latest returns the most recently broadcast report.
func (h *Hub) Latest() (stats.Report, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.latest == nil {
		return stats.Report{}, false
	}
	return *h.latest, true
}

func (h *Hub) subscribe() chan stats.Report {
	ch := make(chan stats.Report, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) unsubscribe(ch chan stats.Report) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

// ServeHTTP upgrades to WebSocket and streams reports: the current one
// immediately on connect, then every newly published one.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("watch: websocket accept: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	ch := h.subscribe()
	defer h.unsubscribe(ch)

	if latest, ok := h.Latest(); ok {
		if err := h.send(ctx, conn, latest); err != nil {
			return
		}
	}

	for {
		select {
		case report := <-ch:
			if err := h.send(ctx, conn, report); err != nil {
				return
			}
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "server shutting down")
			return
		}
	}
}

func (h *Hub) send(ctx context.Context, conn *websocket.Conn, r stats.Report) error {
	if err := wsjson.Write(ctx, conn, r); err != nil {
		log.Printf("watch: write: %v", err)
		return err
	}
	return nil
}
