package models

import "time"

// MarketQuote is a bitcoin spot quote in INR with 24h movement,
// as returned by the market data source.
type MarketQuote struct {
	ID            int64     `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Symbol        string    `json:"symbol"`
	PriceINR      float64   `json:"priceInr"`
	Change24h     float64   `json:"change"`
	PercentChange float64   `json:"percentChange"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Prediction is a display-only analysis record written by an external
// producer. This service serves the latest one verbatim.
type Prediction struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Direction   string    `json:"direction"` // "up", "down", "flat"
	Summary     string    `json:"summary"`
	Confidence  *float64  `json:"confidence,omitempty"`
	HorizonDays int       `json:"horizonDays"`
	CreatedAt   time.Time `json:"createdAt"`
}
