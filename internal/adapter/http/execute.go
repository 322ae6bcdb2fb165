package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
)

type executeRequest struct {
	Action     string        `json:"action"`
	Parameters executeParams `json:"parameters"`
}

// executeParams is the union of parameters accepted across all actions;
// each action picks the fields it needs and ignores the rest.
type executeParams struct {
	CampaignID         string   `json:"campaignId"`
	CreativeID         string   `json:"creativeId"`
	AccountID          string   `json:"accountId"`
	Status             string   `json:"status"`
	DateRange          string   `json:"dateRange"`
	Metrics            string   `json:"metrics"`
	NewBid             *float64 `json:"newBid"`
	NewBudget          *float64 `json:"newBudget"`
	IncludeAllStatuses *bool    `json:"includeAllStatuses"`
}

type actionDoc struct {
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

var actionDocs = map[string]actionDoc{
	"updateBidAndBudget": {
		Description: "Update a campaign's bid and budget (simulated, no real mutation is issued)",
		Parameters: map[string]string{
			"campaignId": "campaign id (required)",
			"newBid":     "new bid amount in the account's currency",
			"newBudget":  "new budget amount in the account's currency",
		},
	},
	"getBidAndBudgetStatus": {
		Description: "Get the current bid and budget status of a campaign",
		Parameters:  map[string]string{"campaignId": "campaign id (required)"},
	},
	"getCampaignPerformance": {
		Description: "Get campaign performance metrics",
		Parameters: map[string]string{
			"campaignId": "campaign id (required)",
			"dateRange":  "date range token (e.g. LAST_30_DAYS, TODAY)",
		},
	},
	"getCampaignMetrics": {
		Description: "Get specific campaign metrics",
		Parameters: map[string]string{
			"campaignId": "campaign id (required)",
			"metrics":    "comma-separated list of metric names",
		},
	},
	"getCreativePerformance": {
		Description: "Get creative performance metrics",
		Parameters: map[string]string{
			"creativeId": "creative id (required)",
			"dateRange":  "date range token (e.g. LAST_30_DAYS, TODAY)",
		},
	},
	"getCreativeMetrics": {
		Description: "Get specific creative metrics",
		Parameters: map[string]string{
			"creativeId": "creative id (required)",
			"metrics":    "comma-separated list of metric names",
		},
	},
	"listClientAccounts": {
		Description: "List available client accounts",
		Parameters:  map[string]string{"includeAllStatuses": "include accounts in every status (default: true)"},
	},
	"listCampaigns": {
		Description: "List campaigns of a specific account",
		Parameters: map[string]string{
			"accountId": "account id (required)",
			"status":    "campaign status filter (ENABLED, PAUSED, REMOVED)",
		},
	},
	"listAllCampaigns": {
		Description: "List campaigns across all client accounts",
		Parameters:  map[string]string{"status": "campaign status filter (ENABLED, PAUSED, REMOVED)"},
	},
	"healthCheck": {
		Description: "Check that the gateway is running",
		Parameters:  map[string]string{},
	},
	"listAvailableActions": {
		Description: "List all available actions with documentation",
		Parameters:  map[string]string{},
	},
}

func actionNames() []string {
	names := make([]string, 0, len(actionDocs))
	for name := range actionDocs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// handleExecute is the unified gateway endpoint: the request names an
// action and its parameters, and the dispatcher maps it onto the matching
// operation. Unknown actions return 400 with the list of valid actions.
func (h *Handler) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if _, ok := actionDocs[req.Action]; !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":        "invalid action",
			"message":      "action '" + req.Action + "' not found",
			"hint":         "use action 'listAvailableActions' to see all available actions",
			"validActions": actionNames(),
		})
		return
	}

	result, err := h.executeAction(r.Context(), req.Action, req.Parameters)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) executeAction(ctx context.Context, action string, p executeParams) (any, error) {
	switch action {
	case "updateBidAndBudget":
		return h.svc.UpdateBidAndBudget(ctx, p.CampaignID, p.NewBid, p.NewBudget)
	case "getBidAndBudgetStatus":
		return h.svc.GetBidAndBudgetStatus(ctx, p.CampaignID)
	case "getCampaignPerformance":
		return h.svc.GetCampaignPerformance(ctx, p.CampaignID, p.DateRange)
	case "getCampaignMetrics":
		return h.svc.GetCampaignMetrics(ctx, p.CampaignID, splitList(p.Metrics))
	case "getCreativePerformance":
		return h.svc.GetCreativePerformance(ctx, p.CreativeID, p.DateRange)
	case "getCreativeMetrics":
		return h.svc.GetCreativeMetrics(ctx, p.CreativeID, splitList(p.Metrics))
	case "listClientAccounts":
		includeAll := p.IncludeAllStatuses == nil || *p.IncludeAllStatuses
		return h.svc.ListClientAccounts(ctx, includeAll)
	case "listCampaigns":
		return h.svc.ListCampaigns(ctx, p.AccountID, p.Status)
	case "listAllCampaigns":
		return h.svc.ListAllCampaigns(ctx, p.Status)
	case "healthCheck":
		return map[string]string{"status": "healthy"}, nil
	case "listAvailableActions":
		return map[string]any{
			"availableActions": actionNames(),
			"documentation":    actionDocs,
		}, nil
	}
	// unreachable: handleExecute validated the action name
	return nil, nil
}
