package port

import (
	"context"
	"fmt"

	"ads-gateway/internal/core/domain"
)

// AdsClient is the outbound port for the advertising platform's reporting
// API. It is consumed as a black box: one account-scoped GAQL search per
// call, pagination handled by the implementation. Implementations must be
// safe for concurrent use.
type AdsClient interface {
	// Search executes a GAQL query scoped to the given customer account
	// and returns all result rows. Transport, auth and quota failures are
	// returned as *UpstreamError; the client performs no retries.
	Search(ctx context.Context, customerID, query string) ([]SearchRow, error)
}

// SearchRow is one row of a GAQL search response. Only the attribute
// groups named in the SELECT clause are populated.
type SearchRow struct {
	CustomerClient *CustomerClientRow `json:"customerClient,omitempty"`
	Campaign       *CampaignRow       `json:"campaign,omitempty"`
	CampaignBudget *CampaignBudgetRow `json:"campaignBudget,omitempty"`
	Metrics        *MetricsRow        `json:"metrics,omitempty"`
	AdGroupAd      *AdGroupAdRow      `json:"adGroupAd,omitempty"`
}

// CustomerClientRow projects the customer_client report fields describing
// one linked account.
type CustomerClientRow struct {
	ID              string        `json:"id"`
	ClientCustomer  string        `json:"clientCustomer"`
	DescriptiveName string        `json:"descriptiveName"`
	CurrencyCode    string        `json:"currencyCode"`
	TimeZone        string        `json:"timeZone"`
	Status          domain.Status `json:"status"`
	Level           domain.Int64  `json:"level"`
	Manager         bool          `json:"manager"`
}

// CampaignRow projects the campaign report fields.
type CampaignRow struct {
	ID                     string                     `json:"id"`
	Name                   string                     `json:"name"`
	Status                 domain.Status              `json:"status"`
	AdvertisingChannelType string                     `json:"advertisingChannelType"`
	BiddingStrategyType    domain.BiddingStrategyType `json:"biddingStrategyType"`
	CampaignBudget         string                     `json:"campaignBudget"`
	ResourceName           string                     `json:"resourceName"`
}

// CampaignBudgetRow projects the campaign_budget report fields.
type CampaignBudgetRow struct {
	ResourceName string        `json:"resourceName"`
	AmountMicros domain.Micros `json:"amountMicros"`
}

// MetricsRow projects the metrics report fields consumed by the gateway.
type MetricsRow struct {
	Impressions domain.Int64  `json:"impressions,omitempty"`
	Clicks      domain.Int64  `json:"clicks,omitempty"`
	CostMicros  domain.Micros `json:"costMicros,omitempty"`
	Conversions float64       `json:"conversions,omitempty"`
	AverageCPC  domain.Micros `json:"averageCpc,omitempty"`
	CTR         float64       `json:"ctr,omitempty"`
}

// AdGroupAdRow projects the ad_group_ad report fields.
type AdGroupAdRow struct {
	Ad AdRow `json:"ad"`
}

// AdRow identifies one creative.
type AdRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UpstreamError is a transport, auth or quota failure reported by the
// advertising API. The core never retries it; the message is propagated
// to the caller as-is.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (status %d): %s", e.Status, e.Message)
}
