package configs

import (
	"strings"
	"time"
)

// GoogleAds holds credentials and tuning for the Google Ads API client.
// Credentials are opaque, pre-validated strings supplied by the operator.
// LoginCustomerID is the root manager (MCC) account id; any non-digit
// characters (e.g. dashes) are stripped before use.
type GoogleAds struct {
	ClientID       string `env:"CLIENT_ID,required"`
	ClientSecret   string `env:"CLIENT_SECRET,required"`
	DeveloperToken string `env:"DEVELOPER_TOKEN,required"`
	RefreshToken   string `env:"REFRESH_TOKEN,required"`
	// LoginCustomerID is the root manager account the account tree is
	// loaded from, in any of the formats Google displays (123-456-7890
	// or 1234567890).
	LoginCustomerID string `env:"LOGIN_CUSTOMER_ID,required"`
	// Endpoint is the API base URL, overridable for testing.
	Endpoint string `env:"ENDPOINT" envDefault:"https://googleads.googleapis.com"`
	// Version is the API version path segment.
	Version string `env:"API_VERSION" envDefault:"v17"`
	// Timeout bounds each HTTP exchange with the API.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
	// QPS caps outbound queries per second across all requests.
	QPS float64 `env:"QPS" envDefault:"5"`
}

// CustomerID returns the root customer id with all non-digit characters
// removed, the form the API expects in paths and headers.
func (c GoogleAds) CustomerID() string {
	var b strings.Builder
	for _, r := range c.LoginCustomerID {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
