package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS price_history (
    id SERIAL PRIMARY KEY,
    timestamp TIMESTAMPTZ NOT NULL,
    price_1g DOUBLE PRECISION NOT NULL,
    market_day DATE NOT NULL,
    source VARCHAR(50) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_price_history_market_day
    ON price_history(market_day, timestamp);
CREATE INDEX IF NOT EXISTS idx_price_history_timestamp
    ON price_history(timestamp);

CREATE TABLE IF NOT EXISTS market_history (
    id SERIAL PRIMARY KEY,
    timestamp TIMESTAMPTZ NOT NULL,
    symbol VARCHAR(20) NOT NULL,
    price_inr DOUBLE PRECISION NOT NULL,
    change_24h DOUBLE PRECISION NOT NULL DEFAULT 0,
    percent_change DOUBLE PRECISION NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_market_history_symbol_time
    ON market_history(symbol, timestamp DESC);

CREATE TABLE IF NOT EXISTS predictions (
    id SERIAL PRIMARY KEY,
    timestamp TIMESTAMPTZ NOT NULL,
    direction VARCHAR(10) NOT NULL,
    summary TEXT NOT NULL,
    confidence DOUBLE PRECISION,
    horizon_days INT NOT NULL DEFAULT 1,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS alerts (
    id UUID PRIMARY KEY,
    label VARCHAR(100) NOT NULL DEFAULT '',
    target_price DOUBLE PRECISION NOT NULL,
    direction VARCHAR(10) NOT NULL,
    reset_buffer DOUBLE PRECISION NOT NULL DEFAULT 0,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    triggered BOOLEAN NOT NULL DEFAULT FALSE,
    triggered_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the tracker's tables and indexes if they do not
// already exist. Safe to run on every startup.
func EnsureSchema(p *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := p.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	fmt.Println("[DB] Schema ensured")
	return nil
}
