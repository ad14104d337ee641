// Package handler implements the HTTP surface of the stats service:
// the report endpoint, the raw event feed, and the websocket watch.
package handler

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/matthewbaird/litterstats/internal/publish"
)

// ReportHandler serves the current report.
type ReportHandler struct {
	hub     *Hub
	siteDir string
}

// NewReportHandler creates a ReportHandler. The hub supplies the report
// generated during this process's lifetime; the site directory is the
// fallback for a freshly restarted server that has not refreshed yet.
func NewReportHandler(hub *Hub, siteDir string) *ReportHandler {
	return &ReportHandler{hub: hub, siteDir: siteDir}
}

// HandleGetReport returns the latest report JSON.
// GET /v1/report
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	if report, ok := h.hub.Latest(); ok {
		writeJSON(w, http.StatusOK, report)
		return
	}

	// No refresh has completed yet, fall back to the published artifact.
	data, err := os.ReadFile(filepath.Join(h.siteDir, publish.DataFile))
	if err != nil {
		writeError(w, http.StatusNotFound, "REPORT_NOT_READY", "no report has been generated yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
