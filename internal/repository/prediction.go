package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

// PredictionRepo serves analysis records written by an external producer.
// This service never generates predictions itself.
type PredictionRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionRepo(pool *pgxpool.Pool) *PredictionRepo {
	return &PredictionRepo{pool: pool}
}

func (r *PredictionRepo) Record(ctx context.Context, p *models.Prediction) (*models.Prediction, error) {
	ts := p.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO predictions (timestamp, direction, summary, confidence, horizon_days)
		 VALUES ($1, $2, $3, $4, $5) RETURNING *`,
		ts, p.Direction, p.Summary, p.Confidence, p.HorizonDays,
	)
	return scanPrediction(row)
}

func (r *PredictionRepo) GetLatest(ctx context.Context) (*models.Prediction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT * FROM predictions ORDER BY timestamp DESC LIMIT 1`,
	)
	p, err := scanPrediction(row)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func scanPrediction(row scannable) (*models.Prediction, error) {
	var p models.Prediction
	err := row.Scan(&p.ID, &p.Timestamp, &p.Direction, &p.Summary, &p.Confidence, &p.HorizonDays, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
