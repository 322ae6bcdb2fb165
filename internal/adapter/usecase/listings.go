package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"ads-gateway/internal/core/domain"
	"ads-gateway/internal/core/port"
)

// ListClientAccounts returns the linked accounts below the root manager
// account, ordered by ascending hierarchy level.
func (u *GatewayUseCase) ListClientAccounts(ctx context.Context, includeAllStatuses bool) ([]port.AccountSummary, error) {
	accounts, err := u.loadAccounts(ctx, includeAllStatuses)
	if err != nil {
		return nil, err
	}
	out := make([]port.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, port.AccountSummary{
			AccountID:    a.ID,
			AccountName:  a.Name,
			CurrencyCode: a.CurrencyCode,
			TimeZone:     a.TimeZone,
			Status:       a.Status.String(),
			Level:        a.Level,
			Manager:      a.Manager,
		})
	}
	return out, nil
}

const listCampaignsQuery = `SELECT
  campaign.id,
  campaign.name,
  campaign.status,
  campaign.advertising_channel_type,
  campaign.bidding_strategy_type,
  campaign.campaign_budget,
  campaign_budget.amount_micros
FROM campaign`

// ListCampaigns lists the campaigns of one known account. status filters
// at the query layer when provided and must be a known status label.
func (u *GatewayUseCase) ListCampaigns(ctx context.Context, accountID, status string) ([]port.CampaignSummary, error) {
	if err := validateID("account id", accountID); err != nil {
		return nil, err
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	return u.listAccountCampaigns(ctx, accountID, status)
}

// ListAllCampaigns unions the campaign listings of every usable leaf
// account. Unlike campaign resolution there is no short-circuit: every
// leaf is visited, and an account whose listing call fails is logged and
// skipped so the result stays best effort across all reachable accounts.
func (u *GatewayUseCase) ListAllCampaigns(ctx context.Context, status string) ([]port.CampaignSummary, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	accounts, err := u.loadAccounts(ctx, false)
	if err != nil {
		return nil, err
	}
	leaves := selectLeafAccounts(accounts)
	if len(leaves) == 0 {
		return nil, port.ErrNoUsableAccounts
	}

	all := make([]port.CampaignSummary, 0)
	for _, account := range leaves {
		campaigns, err := u.listAccountCampaigns(ctx, account.ID, status)
		if err != nil {
			u.logger.Warn("skipping account in campaign listing",
				slog.String("account_id", account.ID),
				slog.Any("error", err))
			continue
		}
		for i := range campaigns {
			campaigns[i].AccountID = account.ID
			campaigns[i].AccountName = account.Name
		}
		all = append(all, campaigns...)
	}
	return all, nil
}

func (u *GatewayUseCase) listAccountCampaigns(ctx context.Context, accountID, status string) ([]port.CampaignSummary, error) {
	query := listCampaignsQuery
	if status != "" {
		query += fmt.Sprintf("\nWHERE campaign.status = '%s'", status)
	}
	rows, err := u.ads.Search(ctx, accountID, query)
	if err != nil {
		return nil, err
	}

	out := make([]port.CampaignSummary, 0, len(rows))
	for _, row := range rows {
		if row.Campaign == nil {
			continue
		}
		c := campaignFromRow(row)
		out = append(out, port.CampaignSummary{
			CampaignID:      c.ID,
			CampaignName:    c.Name,
			Status:          c.Status.String(),
			Type:            c.ChannelType,
			BiddingStrategy: c.BiddingStrategyType.String(),
			Budget:          c.BudgetMicros.Units(),
		})
	}
	return out, nil
}

// GetCreativePerformance returns performance metrics for one creative.
// Creatives have no cross-account resolver of their own; the lookup fans
// out over every usable leaf account with the same best-effort policy as
// the cross-account campaign listing.
func (u *GatewayUseCase) GetCreativePerformance(ctx context.Context, creativeID, dateRange string) ([]port.CreativeRow, error) {
	if err := validateID("creative id", creativeID); err != nil {
		return nil, err
	}
	if dateRange == "" {
		dateRange = "LAST_30_DAYS"
	}
	query := fmt.Sprintf(`SELECT
  ad_group_ad.ad.id,
  ad_group_ad.ad.name,
  metrics.impressions,
  metrics.clicks,
  metrics.cost_micros,
  metrics.conversions,
  metrics.average_cpc,
  metrics.ctr
FROM ad_group_ad
WHERE ad_group_ad.ad.id = %s
AND segments.date DURING %s`, creativeID, dateRange)

	return u.collectCreativeRows(ctx, query)
}

// GetCreativeMetrics returns the requested metric fields for one creative,
// searched across all usable leaf accounts.
func (u *GatewayUseCase) GetCreativeMetrics(ctx context.Context, creativeID string, metrics []string) ([]port.CreativeRow, error) {
	if err := validateID("creative id", creativeID); err != nil {
		return nil, err
	}
	fields, err := metricFields(metrics)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT
  ad_group_ad.ad.id,
  ad_group_ad.ad.name,
  %s
FROM ad_group_ad
WHERE ad_group_ad.ad.id = %s`, strings.Join(fields, ",\n  "), creativeID)

	return u.collectCreativeRows(ctx, query)
}

func (u *GatewayUseCase) collectCreativeRows(ctx context.Context, query string) ([]port.CreativeRow, error) {
	accounts, err := u.loadAccounts(ctx, false)
	if err != nil {
		return nil, err
	}
	leaves := selectLeafAccounts(accounts)
	if len(leaves) == 0 {
		return nil, port.ErrNoUsableAccounts
	}

	all := make([]port.CreativeRow, 0)
	for _, account := range leaves {
		rows, err := u.ads.Search(ctx, account.ID, query)
		if err != nil {
			u.logger.Warn("skipping account in creative lookup",
				slog.String("account_id", account.ID),
				slog.Any("error", err))
			continue
		}
		for _, row := range rows {
			if row.AdGroupAd == nil {
				continue
			}
			all = append(all, port.CreativeRow{
				CreativeID:   row.AdGroupAd.Ad.ID,
				CreativeName: row.AdGroupAd.Ad.Name,
				AccountID:    account.ID,
				Metrics:      row.Metrics,
			})
		}
	}
	return all, nil
}

// validateStatus accepts an empty filter or a known status label; status
// values are quoted into GAQL text, so unknown labels are rejected.
func validateStatus(status string) error {
	if status == "" {
		return nil
	}
	if _, ok := domain.ParseStatus(status); !ok {
		return &port.ValidationError{Message: "unknown status: " + status}
	}
	return nil
}
