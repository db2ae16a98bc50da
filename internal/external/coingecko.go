package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/httputil"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

type CoinGeckoClient struct {
	baseURL    string
	httpClient *http.Client
	retry      httputil.RetryConfig
}

func NewCoinGeckoClient() *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL:    coingeckoBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retry: httputil.RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   2 * time.Second,
			MaxDelay:    10 * time.Second,
		},
	}
}

// SetBaseURL overrides the endpoint, used by tests.
func (c *CoinGeckoClient) SetBaseURL(u string) { c.baseURL = u }

// GetBitcoinQuote returns the bitcoin INR spot price with 24h movement.
func (c *CoinGeckoClient) GetBitcoinQuote(ctx context.Context) (*models.MarketQuote, error) {
	url := c.baseURL + "/simple/price?ids=bitcoin&vs_currencies=inr&include_24hr_change=true"
	resp, err := httputil.Do(ctx, c.httpClient, c.retry, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var data struct {
		Bitcoin struct {
			INR       float64 `json:"inr"`
			Change24h float64 `json:"inr_24h_change"`
		} `json:"bitcoin"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if data.Bitcoin.INR <= 0 {
		return nil, fmt.Errorf("invalid price: %f", data.Bitcoin.INR)
	}

	// inr_24h_change is a percentage; derive the absolute move from it.
	pct := data.Bitcoin.Change24h
	change := data.Bitcoin.INR * pct / (100 + pct)

	return &models.MarketQuote{
		Timestamp:     time.Now(),
		Symbol:        "bitcoin",
		PriceINR:      data.Bitcoin.INR,
		Change24h:     change,
		PercentChange: pct,
	}, nil
}
