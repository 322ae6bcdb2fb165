package httpadapter

import (
	"net/http"
)

// handleListAccounts lists the linked client accounts below the configured
// manager account. `includeAllStatuses` defaults to true; pass "false" to
// restrict the listing to ENABLED accounts.
func (h *Handler) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	includeAll := r.URL.Query().Get("includeAllStatuses") != "false"
	accounts, err := h.svc.ListClientAccounts(r.Context(), includeAll)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}
