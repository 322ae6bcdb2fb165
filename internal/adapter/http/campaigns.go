package httpadapter

import (
	"net/http"
	"strings"
)

// handleListCampaigns lists campaigns of one known account. It accepts a
// required `accountId` query parameter and an optional `status` filter.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	campaigns, err := h.svc.ListCampaigns(r.Context(), q.Get("accountId"), q.Get("status"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// handleListAllCampaigns lists campaigns across every usable leaf account,
// optionally filtered by `status`. The result is best effort: accounts
// whose listing call fails contribute zero rows.
func (h *Handler) handleListAllCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListAllCampaigns(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

// handleCampaignPerformance returns performance metrics for one campaign.
// `campaignId` is required; `dateRange` is an opaque upstream token and
// defaults to LAST_30_DAYS.
func (h *Handler) handleCampaignPerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.svc.GetCampaignPerformance(r.Context(), q.Get("campaignId"), q.Get("dateRange"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleCampaignMetrics returns caller-selected metric fields for one
// campaign. `metrics` is a comma-separated list of metric names.
func (h *Handler) handleCampaignMetrics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.svc.GetCampaignMetrics(r.Context(), q.Get("campaignId"), splitList(q.Get("metrics")))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// splitList splits a comma-separated parameter, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
