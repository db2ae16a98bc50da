package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

type MarketRepo struct {
	pool *pgxpool.Pool
}

func NewMarketRepo(pool *pgxpool.Pool) *MarketRepo {
	return &MarketRepo{pool: pool}
}

func (r *MarketRepo) Record(ctx context.Context, q *models.MarketQuote) (*models.MarketQuote, error) {
	ts := q.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO market_history (timestamp, symbol, price_inr, change_24h, percent_change)
		 VALUES ($1, $2, $3, $4, $5) RETURNING *`,
		ts, q.Symbol, q.PriceINR, q.Change24h, q.PercentChange,
	)
	return scanQuote(row)
}

func (r *MarketRepo) GetLatest(ctx context.Context, symbol string) (*models.MarketQuote, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT * FROM market_history WHERE symbol = $1 ORDER BY timestamp DESC LIMIT 1`,
		symbol,
	)
	q, err := scanQuote(row)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, err
	}
	return q, nil
}

func (r *MarketRepo) GetHistory(ctx context.Context, symbol string, limit int) ([]models.MarketQuote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM market_history WHERE symbol = $1 ORDER BY timestamp DESC LIMIT $2`,
		symbol, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MarketQuote
	for rows.Next() {
		var q models.MarketQuote
		if err := rows.Scan(&q.ID, &q.Timestamp, &q.Symbol, &q.PriceINR, &q.Change24h, &q.PercentChange, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanQuote(row scannable) (*models.MarketQuote, error) {
	var q models.MarketQuote
	err := row.Scan(&q.ID, &q.Timestamp, &q.Symbol, &q.PriceINR, &q.Change24h, &q.PercentChange, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
