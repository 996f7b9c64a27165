// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"fastbreak/internal/adapters/repository"
)

// ReportDependencies defines the interface for report reads.
type ReportDependencies interface {
	Latest(ctx context.Context) (repository.Snapshot, error)
}

// ReportHandler handles report requests.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// HandleGetReport handles GET /report requests, returning the latest
// advisory report.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	snap, err := h.deps.Latest(r.Context())
	if err != nil {
		if isNoSnapshot(err) {
			writeError(w, http.StatusServiceUnavailable, "no_snapshot", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap.Report)
}
