package handler

import (
	"net/http"
	"time"

	"github.com/matthewbaird/litterstats/internal/eventlog"
	"github.com/matthewbaird/litterstats/internal/stats"
)

// EventsHandler serves the raw event feed backing the report.
type EventsHandler struct {
	store eventlog.Store
	loc   *time.Location
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(store eventlog.Store, loc *time.Location) *EventsHandler {
	return &EventsHandler{store: store, loc: loc}
}

// HandleListEvents returns events in a time range, defaulting to the
// current reporting window.
// GET /v1/events?since=RFC3339&until=RFC3339
func (h *EventsHandler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	window := stats.WindowEnding(time.Now(), h.loc)
	since, until := window.Start, window.End

	if s := r.URL.Query().Get("since"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_SINCE", "since must be RFC 3339")
			return
		}
		since = t
	}
	if u := r.URL.Query().Get("until"); u != "" {
		t, err := time.Parse(time.RFC3339, u)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_UNTIL", "until must be RFC 3339")
			return
		}
		until = t
	}

	events, err := h.store.QueryWindow(r.Context(), since, until)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "querying events failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"since":  since,
		"until":  until,
		"count":  len(events),
		"events": events,
	})
}
