package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

type PriceRepo struct {
	pool *pgxpool.Pool
}

func NewPriceRepo(pool *pgxpool.Pool) *PriceRepo {
	return &PriceRepo{pool: pool}
}

func (r *PriceRepo) Record(ctx context.Context, pricePerGram float64, ts time.Time, source string) (*models.PriceSample, error) {
	md := MarketDay(ts)
	row := r.pool.QueryRow(ctx,
		`INSERT INTO price_history (timestamp, price_1g, market_day, source)
		 VALUES ($1, $2, $3, $4) RETURNING *`,
		ts, pricePerGram, md, source,
	)
	return scanPrice(row)
}

func (r *PriceRepo) GetByDay(ctx context.Context, marketDay string) ([]models.PriceSample, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM price_history WHERE market_day = $1 ORDER BY timestamp ASC`,
		marketDay,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPrices(rows)
}

// GetSince returns all samples at or after the cutoff, oldest first.
// Feeds the nearest-date comparison rows.
func (r *PriceRepo) GetSince(ctx context.Context, cutoff time.Time) ([]models.PriceSample, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM price_history WHERE timestamp >= $1 ORDER BY timestamp ASC`,
		cutoff,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPrices(rows)
}

func (r *PriceRepo) GetAvailableDays(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT market_day FROM price_history ORDER BY market_day DESC LIMIT 30`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d.Format("2006-01-02"))
	}
	return days, rows.Err()
}

func (r *PriceRepo) GetLatest(ctx context.Context) (*models.PriceSample, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT * FROM price_history ORDER BY timestamp DESC LIMIT 1`,
	)
	p, err := scanPrice(row)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// --- scan helpers ---

type scannable interface {
	Scan(dest ...any) error
}

func scanPrice(row scannable) (*models.PriceSample, error) {
	var p models.PriceSample
	var md time.Time
	err := row.Scan(&p.ID, &p.Timestamp, &p.PricePerGram, &md, &p.Source, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.MarketDay = md.Format("2006-01-02")
	return &p, nil
}

type rowsIter interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectPrices(rows rowsIter) ([]models.PriceSample, error) {
	var out []models.PriceSample
	for rows.Next() {
		var p models.PriceSample
		var md time.Time
		if err := rows.Scan(&p.ID, &p.Timestamp, &p.PricePerGram, &md, &p.Source, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.MarketDay = md.Format("2006-01-02")
		out = append(out, p)
	}
	return out, rows.Err()
}
