package googleads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"

	"ads-gateway/internal/config/configs"
	"ads-gateway/internal/core/port"
)

// Client is the outbound adapter for the Google Ads REST API. It executes
// GAQL searches scoped to a customer account, following result pagination.
// Authentication uses the OAuth refresh-token grant; the token source
// caches the access token and refreshes it transparently on expiry. A
// client-side rate limiter caps outbound query volume and a circuit
// breaker fails fast when the API is unreachable, so a dead upstream does
// not burn a whole account scan one timeout at a time.
type Client struct {
	httpClient      *http.Client
	tokens          oauth2.TokenSource
	limiter         *rate.Limiter
	breaker         *gobreaker.CircuitBreaker[*searchResponse]
	baseURL         string
	developerToken  string
	loginCustomerID string
	logger          *slog.Logger
}

// New creates a Client from configuration. The returned client is safe for
// concurrent use.
func New(cfg configs.GoogleAds, logger *slog.Logger) *Client {
	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     google.Endpoint,
	}
	ts := oc.TokenSource(context.Background(), &oauth2.Token{RefreshToken: cfg.RefreshToken})
	return newClient(cfg, logger, ts)
}

func newClient(cfg configs.GoogleAds, logger *slog.Logger, ts oauth2.TokenSource) *Client {
	burst := int(cfg.QPS)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     ts,
		limiter:    rate.NewLimiter(rate.Limit(cfg.QPS), burst),
		breaker: gobreaker.NewCircuitBreaker[*searchResponse](gobreaker.Settings{
			Name:    "google-ads",
			Timeout: 30 * time.Second,
		}),
		baseURL:         fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.Version),
		developerToken:  cfg.DeveloperToken,
		loginCustomerID: cfg.CustomerID(),
		logger:          logger,
	}
}

type searchRequest struct {
	Query     string `json:"query"`
	PageToken string `json:"pageToken,omitempty"`
}

type searchResponse struct {
	Results       []port.SearchRow `json:"results"`
	NextPageToken string           `json:"nextPageToken"`
}

// errorEnvelope is the Google API error body.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Search implements port.AdsClient. It posts the query to the
// googleAds:search endpoint of the given customer and accumulates rows
// across pages. Failures are returned as *port.UpstreamError and are not
// retried here.
func (c *Client) Search(ctx context.Context, customerID, query string) ([]port.SearchRow, error) {
	url := fmt.Sprintf("%s/customers/%s/googleAds:search", c.baseURL, customerID)
	c.logger.Debug("executing search", slog.String("customer_id", customerID))

	var (
		rows      []port.SearchRow
		pageToken string
	)
	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &port.UpstreamError{Status: 0, Message: err.Error()}
		}
		resp, err := c.breaker.Execute(func() (*searchResponse, error) {
			return c.searchPage(ctx, url, searchRequest{Query: query, PageToken: pageToken})
		})
		if err != nil {
			if ue, ok := err.(*port.UpstreamError); ok {
				return nil, ue
			}
			// breaker-open and transport errors share the taxonomy
			return nil, &port.UpstreamError{Status: 0, Message: err.Error()}
		}
		rows = append(rows, resp.Results...)
		if resp.NextPageToken == "" {
			return rows, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *Client) searchPage(ctx context.Context, url string, sr searchRequest) (*searchResponse, error) {
	body, err := json.Marshal(sr)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return nil, &port.UpstreamError{Status: http.StatusUnauthorized, Message: "failed to obtain access token: " + err.Error()}
	}
	tok.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("developer-token", c.developerToken)
	req.Header.Set("login-customer-id", c.loginCustomerID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, data)
	}

	var out searchResponse
	if err = json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &out, nil
}

// decodeError converts a non-200 response into an UpstreamError, pulling
// the message out of the Google error envelope when it parses.
func decodeError(status int, body []byte) *port.UpstreamError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return &port.UpstreamError{Status: status, Message: env.Error.Message}
	}
	msg := string(body)
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return &port.UpstreamError{Status: status, Message: msg}
}
