package googleads

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"ads-gateway/internal/config/configs"
	"ads-gateway/internal/core/port"
)

func testConfig(endpoint string) configs.GoogleAds {
	return configs.GoogleAds{
		ClientID:        "cid",
		ClientSecret:    "secret",
		DeveloperToken:  "dev-token",
		RefreshToken:    "refresh",
		LoginCustomerID: "999-000-1111",
		Endpoint:        endpoint,
		Version:         "v17",
		Timeout:         5 * time.Second,
		QPS:             1000,
	}
}

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-access"})
	return newClient(testConfig(srv.URL), logger, ts)
}

func TestSearchHeadersAndPath(t *testing.T) {
	var gotPath, gotAuth, gotDev, gotLogin string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotDev = r.Header.Get("developer-token")
		gotLogin = r.Header.Get("login-customer-id")
		_ = json.NewEncoder(w).Encode(searchResponse{})
	})

	_, err := c.Search(context.Background(), "1234567890", "SELECT campaign.id FROM campaign")

	require.NoError(t, err)
	assert.Equal(t, "/v17/customers/1234567890/googleAds:search", gotPath)
	assert.Equal(t, "Bearer test-access", gotAuth)
	assert.Equal(t, "dev-token", gotDev)
	// dashes stripped from the configured manager id
	assert.Equal(t, "9990001111", gotLogin)
}

func TestSearchFollowsPagination(t *testing.T) {
	var tokens []string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		tokens = append(tokens, req.PageToken)

		resp := searchResponse{Results: []port.SearchRow{{Campaign: &port.CampaignRow{ID: "1"}}}}
		if req.PageToken == "" {
			resp.NextPageToken = "page-2"
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	rows, err := c.Search(context.Background(), "1234567890", "SELECT campaign.id FROM campaign")

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, []string{"", "page-2"}, tokens)
}

func TestSearchDecodesErrorEnvelope(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission","status":"PERMISSION_DENIED"}}`))
	})

	_, err := c.Search(context.Background(), "1234567890", "SELECT campaign.id FROM campaign")

	var upstream *port.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusForbidden, upstream.Status)
	assert.Equal(t, "The caller does not have permission", upstream.Message)
}

func TestSearchRowDecoding(t *testing.T) {
	body := `{"results":[{
		"customerClient":{"id":"101","clientCustomer":"customers/101","descriptiveName":"Acme","status":"ENABLED","level":"1","manager":false},
		"campaign":{"id":"555","name":"Spring Sale","status":2,"biddingStrategyType":"MAXIMIZE_CONVERSIONS"},
		"campaignBudget":{"resourceName":"customers/101/campaignBudgets/7","amountMicros":"300000000"}
	}]}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	rows, err := c.Search(context.Background(), "101", "SELECT ... FROM campaign")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	require.NotNil(t, row.CustomerClient)
	assert.Equal(t, int64(1), int64(row.CustomerClient.Level))
	require.NotNil(t, row.Campaign)
	assert.Equal(t, "ENABLED", row.Campaign.Status.String())
	assert.Equal(t, "MAXIMIZE_CONVERSIONS", row.Campaign.BiddingStrategyType.String())
	require.NotNil(t, row.CampaignBudget)
	assert.Equal(t, 300.0, row.CampaignBudget.AmountMicros.Units())
}
