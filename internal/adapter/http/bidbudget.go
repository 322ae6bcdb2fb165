package httpadapter

import (
	"encoding/json"
	"net/http"
)

// handleBidBudgetStatus returns the current budget, status and bidding
// strategy of one campaign, located across all client accounts.
func (h *Handler) handleBidBudgetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.GetBidAndBudgetStatus(r.Context(), r.URL.Query().Get("campaignId"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

type bidBudgetUpdateRequest struct {
	CampaignID string   `json:"campaignId"`
	NewBid     *float64 `json:"newBid"`
	NewBudget  *float64 `json:"newBudget"`
}

// handleBidBudgetUpdate requests a bid/budget update for one campaign. The
// response is always a simulated result; no upstream mutation is issued.
func (h *Handler) handleBidBudgetUpdate(w http.ResponseWriter, r *http.Request) {
	var req bidBudgetUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	result, err := h.svc.UpdateBidAndBudget(r.Context(), req.CampaignID, req.NewBid, req.NewBudget)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
