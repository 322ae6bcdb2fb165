package port

import (
	"context"
)

// GatewayUseCase defines the operations exposed to the HTTP layer. This is
// the primary port into the application domain; every campaign-scoped
// operation locates the owning account itself, so callers only ever supply
// a campaign or creative identifier.
type GatewayUseCase interface {
	// ListClientAccounts returns the linked accounts reachable from the
	// configured manager account, ordered by ascending hierarchy level.
	// When includeAllStatuses is false, only ENABLED accounts are
	// returned.
	ListClientAccounts(ctx context.Context, includeAllStatuses bool) ([]AccountSummary, error)

	// ListCampaigns lists the campaigns of one known account, optionally
	// filtered by status label (ENABLED, PAUSED, REMOVED).
	ListCampaigns(ctx context.Context, accountID, status string) ([]CampaignSummary, error)

	// ListAllCampaigns lists campaigns across every usable leaf account.
	// The result is best effort: accounts whose listing call fails are
	// logged and skipped, never aborting the union.
	ListAllCampaigns(ctx context.Context, status string) ([]CampaignSummary, error)

	// GetBidAndBudgetStatus resolves the owning account for campaignID
	// and returns the campaign's current budget and normalized enums.
	GetBidAndBudgetStatus(ctx context.Context, campaignID string) (*BidBudgetStatus, error)

	// UpdateBidAndBudget resolves the owning account and returns a
	// simulated update result; the upstream mutation surface is not
	// supported, so no real write is ever issued. At least one of newBid
	// and newBudget must be provided.
	UpdateBidAndBudget(ctx context.Context, campaignID string, newBid, newBudget *float64) (*BudgetUpdateResult, error)

	// GetCampaignPerformance resolves the owning account and returns
	// performance metrics for the campaign over the given date range.
	// dateRange is an opaque upstream token such as LAST_30_DAYS.
	GetCampaignPerformance(ctx context.Context, campaignID, dateRange string) ([]PerformanceRow, error)

	// GetCampaignMetrics resolves the owning account and returns the
	// requested metric fields for the campaign. Metric names are
	// validated against the known metrics surface.
	GetCampaignMetrics(ctx context.Context, campaignID string, metrics []string) ([]MetricRow, error)

	// GetCreativePerformance returns performance metrics for one creative
	// (ad_group_ad), searched best effort across all usable leaf accounts.
	GetCreativePerformance(ctx context.Context, creativeID, dateRange string) ([]CreativeRow, error)

	// GetCreativeMetrics returns the requested metric fields for one
	// creative, searched best effort across all usable leaf accounts.
	GetCreativeMetrics(ctx context.Context, creativeID string, metrics []string) ([]CreativeRow, error)
}

// AccountSummary describes one linked account for the accounts listing.
type AccountSummary struct {
	AccountID    string `json:"accountId"`
	AccountName  string `json:"accountName"`
	CurrencyCode string `json:"currencyCode"`
	TimeZone     string `json:"timeZone"`
	Status       string `json:"status"`
	Level        int    `json:"level"`
	Manager      bool   `json:"manager"`
}

// CampaignSummary describes one campaign row in a listing. AccountID and
// AccountName are populated only by the cross-account listing.
type CampaignSummary struct {
	CampaignID      string  `json:"campaignId"`
	CampaignName    string  `json:"campaignName"`
	Status          string  `json:"status"`
	Type            string  `json:"type"`
	BiddingStrategy string  `json:"biddingStrategy"`
	Budget          float64 `json:"budget"`
	AccountID       string  `json:"accountId,omitempty"`
	AccountName     string  `json:"accountName,omitempty"`
}

// BidBudgetStatus is the normalized bid/budget state of one campaign.
type BidBudgetStatus struct {
	AccountID           string  `json:"accountId"`
	CampaignName        string  `json:"campaignName"`
	CurrentBudget       float64 `json:"currentBudget"`
	Status              string  `json:"status"`
	BiddingStrategy     string  `json:"biddingStrategy"`
	BiddingStrategyType int32   `json:"biddingStrategyType"`
}

// BudgetUpdateResult reports the outcome of a bid/budget update request.
// Simulated is always true in this gateway: the upstream API did not
// support the mutation at integration time, so the result describes what
// would be updated, never a confirmed upstream state change.
type BudgetUpdateResult struct {
	Success       bool     `json:"success"`
	Simulated     bool     `json:"simulated"`
	Message       string   `json:"message"`
	AccountID     string   `json:"accountId"`
	CampaignID    string   `json:"campaignId"`
	CampaignName  string   `json:"campaignName"`
	CurrentBudget float64  `json:"currentBudget"`
	UpdatedBudget *float64 `json:"updatedBudget,omitempty"`
	UpdatedBid    *float64 `json:"updatedBid,omitempty"`
}

// PerformanceRow is one row of campaign performance metrics with monetary
// values normalized from micros to currency units.
type PerformanceRow struct {
	CampaignID   string  `json:"campaignId"`
	CampaignName string  `json:"campaignName"`
	Status       string  `json:"status"`
	Impressions  int64   `json:"impressions"`
	Clicks       int64   `json:"clicks"`
	Cost         float64 `json:"cost"`
	Conversions  float64 `json:"conversions"`
	AverageCPC   float64 `json:"averageCpc"`
	CTR          float64 `json:"ctr"`
}

// MetricRow carries the raw metric fields selected by a caller-defined
// metrics query for one campaign.
type MetricRow struct {
	CampaignID   string      `json:"campaignId"`
	CampaignName string      `json:"campaignName"`
	Metrics      *MetricsRow `json:"metrics"`
}

// CreativeRow carries metric fields for one creative, tagged with the
// account it was found in.
type CreativeRow struct {
	CreativeID   string      `json:"creativeId"`
	CreativeName string      `json:"creativeName"`
	AccountID    string      `json:"accountId"`
	Metrics      *MetricsRow `json:"metrics"`
}
