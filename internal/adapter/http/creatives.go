package httpadapter

import (
	"net/http"
)

// handleCreativePerformance returns performance metrics for one creative,
// searched best effort across all usable leaf accounts. `creativeId` is
// required; `dateRange` defaults to LAST_30_DAYS.
func (h *Handler) handleCreativePerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.svc.GetCreativePerformance(r.Context(), q.Get("creativeId"), q.Get("dateRange"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleCreativeMetrics returns caller-selected metric fields for one
// creative. `metrics` is a comma-separated list of metric names.
func (h *Handler) handleCreativeMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.svc.GetCreativeMetrics(r.Context(), q.Get("creativeId"), splitList(q.Get("metrics")))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
