package models

import "time"

// PriceSample is a single timestamped gold price observation in the
// canonical storage unit, INR per gram.
type PriceSample struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	PricePerGram float64   `json:"price_1g"`
	MarketDay    string    `json:"marketDay"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ComparisonPoint is a derived "N days ago" row. Never persisted;
// recomputed on each request from the latest price and the series.
type ComparisonPoint struct {
	Label         string  `json:"label"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
}
