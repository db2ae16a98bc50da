package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/httputil"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/pricemath"
)

const goldAPIBaseURL = "https://www.goldapi.io/api"

// GoldAPIClient fetches the XAU/INR spot price from goldapi.io.
// The API quotes per troy ounce; callers get INR per gram, the
// canonical storage unit.
type GoldAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      httputil.RetryConfig
}

func NewGoldAPIClient(apiKey string) *GoldAPIClient {
	return &GoldAPIClient{
		apiKey:     apiKey,
		baseURL:    goldAPIBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry: httputil.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			MaxDelay:    10 * time.Second,
		},
	}
}

// SetBaseURL overrides the endpoint, used by tests.
func (c *GoldAPIClient) SetBaseURL(u string) { c.baseURL = u }

// GetGoldPricePerGram returns the current gold price in INR per gram.
func (c *GoldAPIClient) GetGoldPricePerGram(ctx context.Context) (float64, error) {
	url := c.baseURL + "/XAU/INR"
	resp, err := httputil.Do(ctx, c.httpClient, c.retry, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("x-access-token", c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return 0, fmt.Errorf("goldapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("goldapi returned status %d", resp.StatusCode)
	}

	var data struct {
		PricePerOunce float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}

	if data.PricePerOunce <= 0 {
		return 0, fmt.Errorf("invalid price: %f", data.PricePerOunce)
	}

	return data.PricePerOunce / pricemath.GramsPerTroyOunce, nil
}
