package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"ads-gateway/internal/core/domain"
	"ads-gateway/internal/core/port"
)

// GatewayUseCase implements the gateway operations on top of the
// account-scoped advertising API. The central piece is campaign
// resolution: the API has no global campaign lookup, so every
// campaign-scoped operation first locates the owning account by probing
// the usable leaf accounts of the manager hierarchy, in ascending
// hierarchy-level order, stopping at the first match.
type GatewayUseCase struct {
	ads port.AdsClient

	// rootCustomerID is the manager (MCC) account the account tree is
	// enumerated from. It is never probed itself.
	rootCustomerID string
	logger         *slog.Logger
}

// NewGatewayUseCase creates a usecase bound to the given client and root
// manager account id (digits only).
func NewGatewayUseCase(ads port.AdsClient, rootCustomerID string, logger *slog.Logger) *GatewayUseCase {
	return &GatewayUseCase{ads: ads, rootCustomerID: rootCustomerID, logger: logger}
}

const accountTreeQuery = `SELECT
  customer_client.id,
  customer_client.client_customer,
  customer_client.descriptive_name,
  customer_client.currency_code,
  customer_client.time_zone,
  customer_client.status,
  customer_client.level,
  customer_client.manager
FROM customer_client`

// loadAccounts fetches the flat list of linked accounts reachable from the
// root manager account, ordered by ascending hierarchy level. When
// includeAllStatuses is false the status filter is applied at the query
// layer. Upstream failures propagate unchanged.
func (u *GatewayUseCase) loadAccounts(ctx context.Context, includeAllStatuses bool) ([]domain.Account, error) {
	query := accountTreeQuery
	if !includeAllStatuses {
		query += "\nWHERE customer_client.status = 'ENABLED'"
	}
	query += "\nORDER BY customer_client.level"

	rows, err := u.ads.Search(ctx, u.rootCustomerID, query)
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		if row.CustomerClient == nil {
			continue
		}
		accounts = append(accounts, accountFromRow(*row.CustomerClient))
	}
	// The query orders by level already; re-sorting keeps the traversal
	// contract independent of upstream quirks.
	sort.SliceStable(accounts, func(i, j int) bool { return accounts[i].Level < accounts[j].Level })
	return accounts, nil
}

// accountFromRow maps a customer_client row onto the domain model. Some
// API versions omit customer_client.id and only return the client_customer
// resource name ("customers/123"), so the id falls back to its last path
// segment.
func accountFromRow(row port.CustomerClientRow) domain.Account {
	id := row.ID
	if id == "" {
		if i := strings.LastIndexByte(row.ClientCustomer, '/'); i >= 0 {
			id = row.ClientCustomer[i+1:]
		}
	}
	return domain.Account{
		ID:           id,
		Name:         row.DescriptiveName,
		Level:        int(row.Level),
		Manager:      row.Manager,
		Status:       row.Status,
		CurrencyCode: row.CurrencyCode,
		TimeZone:     row.TimeZone,
	}
}

// selectLeafAccounts filters the account tree down to accounts eligible
// for probing: non-manager and ENABLED. Pure, order-preserving.
func selectLeafAccounts(accounts []domain.Account) []domain.Account {
	leaves := make([]domain.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.Usable() {
			leaves = append(leaves, a)
		}
	}
	return leaves
}

// probeOutcome is the three-way result of probing one account for a
// campaign. Failures are a distinct outcome so the resolver's
// continue-on-error policy is explicit control flow, not exception
// interception.
type probeOutcome int

const (
	probeFound probeOutcome = iota
	probeNotFound
	probeFailed
)

const probeQueryFmt = `SELECT
  campaign.id,
  campaign.name,
  campaign.status,
  campaign.advertising_channel_type,
  campaign.bidding_strategy_type,
  campaign.campaign_budget,
  campaign_budget.resource_name,
  campaign_budget.amount_micros
FROM campaign
WHERE campaign.id = %s`

// probeCampaign attempts to fetch the campaign's descriptor from one leaf
// account. A transport or permission error for this specific account is
// downgraded to a warning: many accounts legitimately do not contain the
// campaign and the API reports "no access" and "no such row" ambiguously,
// so one failing probe must not abort the scan.
func (u *GatewayUseCase) probeCampaign(ctx context.Context, account domain.Account, campaignID string) (*domain.Campaign, probeOutcome) {
	rows, err := u.ads.Search(ctx, account.ID, fmt.Sprintf(probeQueryFmt, campaignID))
	if err != nil {
		u.logger.Warn("campaign probe failed",
			slog.String("account_id", account.ID),
			slog.String("campaign_id", campaignID),
			slog.Any("error", err))
		return nil, probeFailed
	}
	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}
		c := campaignFromRow(row)
		return &c, probeFound
	}
	return nil, probeNotFound
}

// campaignFromRow maps one campaign search row, joined with its budget,
// onto the domain model.
func campaignFromRow(row port.SearchRow) domain.Campaign {
	c := domain.Campaign{
		ID:                  row.Campaign.ID,
		Name:                row.Campaign.Name,
		Status:              row.Campaign.Status,
		ChannelType:         row.Campaign.AdvertisingChannelType,
		BiddingStrategyType: row.Campaign.BiddingStrategyType,
		BudgetResourceName:  row.Campaign.CampaignBudget,
	}
	if row.CampaignBudget != nil {
		c.BudgetMicros = row.CampaignBudget.AmountMicros
		if row.CampaignBudget.ResourceName != "" {
			c.BudgetResourceName = row.CampaignBudget.ResourceName
		}
	}
	return c
}

// resolveCampaign locates the unique account owning campaignID. Leaf
// accounts are probed sequentially in ascending hierarchy-level order and
// the first successful probe wins; remaining accounts are never contacted.
// Campaign ids are expected unique per advertiser hierarchy, so first
// match is treated as correct match.
func (u *GatewayUseCase) resolveCampaign(ctx context.Context, campaignID string) (domain.Account, *domain.Campaign, error) {
	if err := validateID("campaign id", campaignID); err != nil {
		return domain.Account{}, nil, err
	}
	accounts, err := u.loadAccounts(ctx, false)
	if err != nil {
		return domain.Account{}, nil, err
	}
	leaves := selectLeafAccounts(accounts)
	if len(leaves) == 0 {
		return domain.Account{}, nil, port.ErrNoUsableAccounts
	}
	for _, account := range leaves {
		if err = ctx.Err(); err != nil {
			return domain.Account{}, nil, err
		}
		campaign, outcome := u.probeCampaign(ctx, account, campaignID)
		if outcome == probeFound {
			return account, campaign, nil
		}
	}
	return domain.Account{}, nil, &port.CampaignNotFoundError{CampaignID: campaignID}
}

// GetBidAndBudgetStatus resolves the campaign and projects its current
// budget and normalized enum labels.
func (u *GatewayUseCase) GetBidAndBudgetStatus(ctx context.Context, campaignID string) (*port.BidBudgetStatus, error) {
	account, campaign, err := u.resolveCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	return &port.BidBudgetStatus{
		AccountID:           account.ID,
		CampaignName:        campaign.Name,
		CurrentBudget:       campaign.BudgetMicros.Units(),
		Status:              campaign.Status.String(),
		BiddingStrategy:     campaign.BiddingStrategyType.String(),
		BiddingStrategyType: int32(campaign.BiddingStrategyType),
	}, nil
}

// UpdateBidAndBudget resolves the campaign and returns a simulated update
// result. The upstream write API lacked mutation support at integration
// time, so this never issues a real mutation; the response describes what
// would be updated and is typed as simulated so callers cannot mistake it
// for a confirmed upstream state change.
func (u *GatewayUseCase) UpdateBidAndBudget(ctx context.Context, campaignID string, newBid, newBudget *float64) (*port.BudgetUpdateResult, error) {
	if newBid == nil && newBudget == nil {
		return nil, &port.ValidationError{Message: "either newBid or newBudget must be provided"}
	}
	account, campaign, err := u.resolveCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.BudgetResourceName == "" {
		return nil, port.ErrMissingBudgetHandle
	}

	parts := make([]string, 0, 2)
	if newBudget != nil {
		parts = append(parts, fmt.Sprintf("budget %.2f -> %.2f", campaign.BudgetMicros.Units(), *newBudget))
	}
	if newBid != nil {
		parts = append(parts, fmt.Sprintf("bid -> %.2f", *newBid))
	}

	return &port.BudgetUpdateResult{
		Success:       true,
		Simulated:     true,
		Message:       "update simulated, upstream mutation not supported: " + strings.Join(parts, ", "),
		AccountID:     account.ID,
		CampaignID:    campaign.ID,
		CampaignName:  campaign.Name,
		CurrentBudget: campaign.BudgetMicros.Units(),
		UpdatedBudget: newBudget,
		UpdatedBid:    newBid,
	}, nil
}

// GetCampaignPerformance resolves the campaign, then issues one scoped
// metrics query against the resolved account. dateRange is an opaque
// upstream token (e.g. LAST_30_DAYS) passed through into the query text.
func (u *GatewayUseCase) GetCampaignPerformance(ctx context.Context, campaignID, dateRange string) ([]port.PerformanceRow, error) {
	account, _, err := u.resolveCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if dateRange == "" {
		dateRange = "LAST_30_DAYS"
	}

	query := fmt.Sprintf(`SELECT
  campaign.id,
  campaign.name,
  campaign.status,
  metrics.impressions,
  metrics.clicks,
  metrics.cost_micros,
  metrics.conversions,
  metrics.average_cpc,
  metrics.ctr
FROM campaign
WHERE campaign.id = %s
AND segments.date DURING %s`, campaignID, dateRange)

	rows, err := u.ads.Search(ctx, account.ID, query)
	if err != nil {
		return nil, err
	}

	out := make([]port.PerformanceRow, 0, len(rows))
	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}
		pr := port.PerformanceRow{
			CampaignID:   row.Campaign.ID,
			CampaignName: row.Campaign.Name,
			Status:       row.Campaign.Status.String(),
		}
		if m := row.Metrics; m != nil {
			pr.Impressions = int64(m.Impressions)
			pr.Clicks = int64(m.Clicks)
			pr.Cost = m.CostMicros.Units()
			pr.Conversions = m.Conversions
			pr.AverageCPC = m.AverageCPC.Units()
			pr.CTR = m.CTR
		}
		out = append(out, pr)
	}
	return out, nil
}

// GetCampaignMetrics resolves the campaign and selects the caller-chosen
// metric fields. Metric names are validated against the known metrics
// surface before being interpolated into the query.
func (u *GatewayUseCase) GetCampaignMetrics(ctx context.Context, campaignID string, metrics []string) ([]port.MetricRow, error) {
	fields, err := metricFields(metrics)
	if err != nil {
		return nil, err
	}
	account, _, err := u.resolveCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT
  campaign.id,
  campaign.name,
  %s
FROM campaign
WHERE campaign.id = %s`, strings.Join(fields, ",\n  "), campaignID)

	rows, err := u.ads.Search(ctx, account.ID, query)
	if err != nil {
		return nil, err
	}

	out := make([]port.MetricRow, 0, len(rows))
	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}
		out = append(out, port.MetricRow{
			CampaignID:   row.Campaign.ID,
			CampaignName: row.Campaign.Name,
			Metrics:      row.Metrics,
		})
	}
	return out, nil
}

// knownMetrics is the metrics surface the gateway consumes. Caller-supplied
// metric names must resolve here; anything else is rejected before query
// interpolation.
var knownMetrics = map[string]string{
	"impressions": "metrics.impressions",
	"clicks":      "metrics.clicks",
	"cost_micros": "metrics.cost_micros",
	"conversions": "metrics.conversions",
	"average_cpc": "metrics.average_cpc",
	"ctr":         "metrics.ctr",
}

// metricFields canonicalizes requested metric names (with or without the
// "metrics." prefix) into qualified GAQL field names.
func metricFields(metrics []string) ([]string, error) {
	if len(metrics) == 0 {
		return nil, &port.ValidationError{Message: "at least one metric must be requested"}
	}
	fields := make([]string, 0, len(metrics))
	for _, m := range metrics {
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(m), "metrics."))
		field, ok := knownMetrics[name]
		if !ok {
			return nil, &port.ValidationError{Message: "unknown metric: " + m}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// validateID rejects identifiers that are not plain digit strings; ids are
// interpolated into GAQL text, so nothing else may pass.
func validateID(label, id string) error {
	if id == "" {
		return &port.ValidationError{Message: label + " is required"}
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return &port.ValidationError{Message: label + " must be numeric"}
		}
	}
	return nil
}
