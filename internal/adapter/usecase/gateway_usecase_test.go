package usecase

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-gateway/internal/core/domain"
	"ads-gateway/internal/core/port"
)

// stubAdsClient scripts per-account search results and records the order
// in which leaf accounts were queried.
type stubAdsClient struct {
	accounts  []port.SearchRow
	campaigns map[string][]port.SearchRow
	errs      map[string]error

	queried []string
	queries []string
}

func (s *stubAdsClient) Search(_ context.Context, customerID, query string) ([]port.SearchRow, error) {
	s.queries = append(s.queries, query)
	if strings.Contains(query, "FROM customer_client") {
		return s.accounts, nil
	}
	s.queried = append(s.queried, customerID)
	if err := s.errs[customerID]; err != nil {
		return nil, err
	}
	return s.campaigns[customerID], nil
}

func newTestUseCase(ads port.AdsClient) *GatewayUseCase {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGatewayUseCase(ads, "9990001111", logger)
}

func accountRow(id string, level int, manager bool, status domain.Status, name string) port.SearchRow {
	return port.SearchRow{CustomerClient: &port.CustomerClientRow{
		ID:              id,
		ClientCustomer:  "customers/" + id,
		DescriptiveName: name,
		Status:          status,
		Level:           domain.Int64(level),
		Manager:         manager,
	}}
}

func campaignRow(id, name string, budgetMicros domain.Micros, budgetResource string) port.SearchRow {
	return port.SearchRow{
		Campaign: &port.CampaignRow{
			ID:                  id,
			Name:                name,
			Status:              domain.StatusEnabled,
			BiddingStrategyType: domain.BiddingMaximizeConversions,
			CampaignBudget:      budgetResource,
		},
		CampaignBudget: &port.CampaignBudgetRow{
			ResourceName: budgetResource,
			AmountMicros: budgetMicros,
		},
	}
}

func TestSelectLeafAccounts(t *testing.T) {
	accounts := []domain.Account{
		{ID: "1", Level: 0, Manager: true, Status: domain.StatusEnabled},
		{ID: "2", Level: 1, Status: domain.StatusEnabled},
		{ID: "3", Level: 1, Status: domain.StatusPaused},
		{ID: "4", Level: 2, Status: domain.StatusEnabled},
		{ID: "5", Level: 2, Manager: true, Status: domain.StatusEnabled},
	}

	leaves := selectLeafAccounts(accounts)

	require.Len(t, leaves, 2)
	// relative order preserved, managers and non-enabled dropped
	assert.Equal(t, "2", leaves[0].ID)
	assert.Equal(t, "4", leaves[1].ID)
}

func TestResolveFirstMatchWins(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("101", 1, false, domain.StatusEnabled, "First"),
			accountRow("202", 1, false, domain.StatusEnabled, "Second"),
			accountRow("303", 2, false, domain.StatusEnabled, "Third"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {campaignRow("555", "Spring Sale", 300_000_000, "customers/202/campaignBudgets/7")},
		},
	}
	u := newTestUseCase(ads)

	account, campaign, err := u.resolveCampaign(context.Background(), "555")

	require.NoError(t, err)
	assert.Equal(t, "202", account.ID)
	assert.Equal(t, "Spring Sale", campaign.Name)
	// 101 probed first and missed; 303 never probed after the match
	assert.Equal(t, []string{"101", "202"}, ads.queried)
}

func TestResolveCampaignNotFound(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("101", 1, false, domain.StatusEnabled, "First"),
			accountRow("202", 1, false, domain.StatusEnabled, "Second"),
		},
	}
	u := newTestUseCase(ads)

	_, _, err := u.resolveCampaign(context.Background(), "555")

	var notFound *port.CampaignNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "555", notFound.CampaignID)
	assert.Equal(t, []string{"101", "202"}, ads.queried)
}

func TestResolveNoUsableAccounts(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("100", 0, true, domain.StatusEnabled, "Root"),
			accountRow("101", 1, false, domain.StatusPaused, "Paused"),
		},
	}
	u := newTestUseCase(ads)

	_, _, err := u.resolveCampaign(context.Background(), "555")

	require.ErrorIs(t, err, port.ErrNoUsableAccounts)
	var notFound *port.CampaignNotFoundError
	assert.False(t, strings.Contains(err.Error(), "not found"))
	assert.NotErrorAs(t, err, &notFound)
	assert.Empty(t, ads.queried)
}

func TestResolveProbeFailureContinues(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("101", 1, false, domain.StatusEnabled, "Broken"),
			accountRow("202", 1, false, domain.StatusEnabled, "Owner"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {campaignRow("555", "Spring Sale", 300_000_000, "customers/202/campaignBudgets/7")},
		},
		errs: map[string]error{
			"101": &port.UpstreamError{Status: 403, Message: "permission denied"},
		},
	}
	u := newTestUseCase(ads)

	account, _, err := u.resolveCampaign(context.Background(), "555")

	require.NoError(t, err)
	assert.Equal(t, "202", account.ID)
	assert.Equal(t, []string{"101", "202"}, ads.queried)
}

func TestResolveInvalidCampaignID(t *testing.T) {
	u := newTestUseCase(&stubAdsClient{})

	_, _, err := u.resolveCampaign(context.Background(), "555; DROP TABLE")

	var validation *port.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestAccountTraversalOrderedByLevel(t *testing.T) {
	// stub returns the tree out of order; the loader must restore
	// ascending-level traversal
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("404", 2, false, domain.StatusEnabled, "Deep"),
			accountRow("101", 1, false, domain.StatusEnabled, "Shallow"),
		},
	}
	u := newTestUseCase(ads)

	_, _, err := u.resolveCampaign(context.Background(), "555")

	var notFound *port.CampaignNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, []string{"101", "404"}, ads.queried)
}

func TestListClientAccountsStatusFilter(t *testing.T) {
	ads := &stubAdsClient{accounts: []port.SearchRow{
		accountRow("101", 1, false, domain.StatusEnabled, "Only"),
	}}
	u := newTestUseCase(ads)

	_, err := u.ListClientAccounts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, ads.queries, 1)
	assert.Contains(t, ads.queries[0], "WHERE customer_client.status = 'ENABLED'")

	ads.queries = nil
	_, err = u.ListClientAccounts(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, ads.queries, 1)
	assert.NotContains(t, ads.queries[0], "WHERE")
}

func TestListAllCampaignsPartialFailure(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("101", 1, false, domain.StatusEnabled, "Alpha"),
			accountRow("202", 1, false, domain.StatusEnabled, "Broken"),
			accountRow("303", 1, false, domain.StatusEnabled, "Gamma"),
		},
		campaigns: map[string][]port.SearchRow{
			"101": {campaignRow("1", "A1", 1_000_000, "")},
			"303": {campaignRow("3", "C1", 2_000_000, ""), campaignRow("4", "C2", 0, "")},
		},
		errs: map[string]error{
			"202": &port.UpstreamError{Status: 500, Message: "boom"},
		},
	}
	u := newTestUseCase(ads)

	campaigns, err := u.ListAllCampaigns(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, campaigns, 3)
	assert.Equal(t, "101", campaigns[0].AccountID)
	assert.Equal(t, "Alpha", campaigns[0].AccountName)
	assert.Equal(t, "303", campaigns[1].AccountID)
	assert.Equal(t, "303", campaigns[2].AccountID)
	// every leaf visited, no short-circuit
	assert.Equal(t, []string{"101", "202", "303"}, ads.queried)
}

func TestListAllCampaignsUnknownStatus(t *testing.T) {
	u := newTestUseCase(&stubAdsClient{})

	_, err := u.ListAllCampaigns(context.Background(), "RUNNING")

	var validation *port.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateBidAndBudgetSimulated(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("202", 1, false, domain.StatusEnabled, "Owner"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {campaignRow("555", "Spring Sale", 300_000_000, "customers/202/campaignBudgets/7")},
		},
	}
	u := newTestUseCase(ads)

	newBudget := 500.0
	result, err := u.UpdateBidAndBudget(context.Background(), "555", nil, &newBudget)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Simulated)
	assert.Equal(t, 300.0, result.CurrentBudget)
	require.NotNil(t, result.UpdatedBudget)
	assert.Equal(t, 500.0, *result.UpdatedBudget)
	assert.Equal(t, "202", result.AccountID)
	assert.Contains(t, result.Message, "simulated")
}

func TestUpdateBidAndBudgetMissingHandle(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("202", 1, false, domain.StatusEnabled, "Owner"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {campaignRow("555", "Spring Sale", 300_000_000, "")},
		},
	}
	u := newTestUseCase(ads)

	newBudget := 500.0
	_, err := u.UpdateBidAndBudget(context.Background(), "555", nil, &newBudget)

	require.ErrorIs(t, err, port.ErrMissingBudgetHandle)
}

func TestUpdateBidAndBudgetRequiresInput(t *testing.T) {
	u := newTestUseCase(&stubAdsClient{})

	_, err := u.UpdateBidAndBudget(context.Background(), "555", nil, nil)

	var validation *port.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestGetBidAndBudgetStatus(t *testing.T) {
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("202", 1, false, domain.StatusEnabled, "Owner"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {campaignRow("555", "Spring Sale", 1_250_000, "customers/202/campaignBudgets/7")},
		},
	}
	u := newTestUseCase(ads)

	status, err := u.GetBidAndBudgetStatus(context.Background(), "555")

	require.NoError(t, err)
	assert.Equal(t, "Spring Sale", status.CampaignName)
	assert.Equal(t, 1.25, status.CurrentBudget)
	assert.Equal(t, "ENABLED", status.Status)
	assert.Equal(t, "MAXIMIZE_CONVERSIONS", status.BiddingStrategy)
	assert.Equal(t, int32(domain.BiddingMaximizeConversions), status.BiddingStrategyType)
}

func TestGetCampaignMetricsValidation(t *testing.T) {
	u := newTestUseCase(&stubAdsClient{})

	_, err := u.GetCampaignMetrics(context.Background(), "555", []string{"impressions", "bogus"})
	var validation *port.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "bogus")

	_, err = u.GetCampaignMetrics(context.Background(), "555", nil)
	require.ErrorAs(t, err, &validation)
}

func TestGetCampaignPerformanceNormalizesMicros(t *testing.T) {
	perfRow := port.SearchRow{
		Campaign: &port.CampaignRow{ID: "555", Name: "Spring Sale", Status: domain.StatusEnabled},
		Metrics: &port.MetricsRow{
			Impressions: 1000,
			Clicks:      50,
			CostMicros:  12_500_000,
			Conversions: 4,
			AverageCPC:  250_000,
			CTR:         0.05,
		},
	}
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("202", 1, false, domain.StatusEnabled, "Owner"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {perfRow},
		},
	}
	u := newTestUseCase(ads)

	rows, err := u.GetCampaignPerformance(context.Background(), "555", "LAST_7_DAYS")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1000), rows[0].Impressions)
	assert.Equal(t, 12.5, rows[0].Cost)
	assert.Equal(t, 0.25, rows[0].AverageCPC)
	// the resolved account is probed once, then queried for metrics
	assert.Equal(t, []string{"202", "202"}, ads.queried)
	assert.Contains(t, ads.queries[len(ads.queries)-1], "DURING LAST_7_DAYS")
}

func TestGetCreativePerformanceBestEffort(t *testing.T) {
	creativeRow := port.SearchRow{
		AdGroupAd: &port.AdGroupAdRow{Ad: port.AdRow{ID: "777", Name: "Banner"}},
		Metrics:   &port.MetricsRow{Impressions: 10},
	}
	ads := &stubAdsClient{
		accounts: []port.SearchRow{
			accountRow("101", 1, false, domain.StatusEnabled, "Broken"),
			accountRow("202", 1, false, domain.StatusEnabled, "Owner"),
		},
		campaigns: map[string][]port.SearchRow{
			"202": {creativeRow},
		},
		errs: map[string]error{
			"101": &port.UpstreamError{Status: 500, Message: "boom"},
		},
	}
	u := newTestUseCase(ads)

	rows, err := u.GetCreativePerformance(context.Background(), "777", "")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "777", rows[0].CreativeID)
	assert.Equal(t, "202", rows[0].AccountID)
	// both leaves visited despite the first one failing
	assert.Equal(t, []string{"101", "202"}, ads.queried)
}
