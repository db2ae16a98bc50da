package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

type AlertRepo struct {
	pool *pgxpool.Pool
}

func NewAlertRepo(pool *pgxpool.Pool) *AlertRepo {
	return &AlertRepo{pool: pool}
}

func (r *AlertRepo) Create(ctx context.Context, a *models.Alert) (*models.Alert, error) {
	if a.Direction != models.AlertDirectionBelow && a.Direction != models.AlertDirectionAbove {
		return nil, fmt.Errorf("invalid direction %q, expected below|above", a.Direction)
	}
	if a.TargetPrice <= 0 {
		return nil, fmt.Errorf("target price must be positive, got %f", a.TargetPrice)
	}

	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx,
		`INSERT INTO alerts (id, label, target_price, direction, reset_buffer, active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`,
		id, a.Label, a.TargetPrice, a.Direction, a.ResetBuffer, true,
	)
	return scanAlert(row)
}

func (r *AlertRepo) List(ctx context.Context) ([]models.Alert, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM alerts ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

// ListActive returns alerts the watcher should evaluate.
func (r *AlertRepo) ListActive(ctx context.Context) ([]models.Alert, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT * FROM alerts WHERE active = true ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAlerts(rows)
}

func (r *AlertRepo) Get(ctx context.Context, id string) (*models.Alert, error) {
	row := r.pool.QueryRow(ctx, `SELECT * FROM alerts WHERE id = $1`, id)
	a, err := scanAlert(row)
	if err != nil {
		if err.Error() == "no rows in result set" {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *AlertRepo) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AlertRepo) MarkTriggered(ctx context.Context, id string, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE alerts SET triggered = true, triggered_at = $2 WHERE id = $1`,
		id, at,
	)
	return err
}

// ResetTrigger re-arms an alert after the price recedes past its buffer.
func (r *AlertRepo) ResetTrigger(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE alerts SET triggered = false, triggered_at = NULL WHERE id = $1`,
		id,
	)
	return err
}

// --- scan helpers ---

func scanAlert(row scannable) (*models.Alert, error) {
	var a models.Alert
	err := row.Scan(
		&a.ID, &a.Label, &a.TargetPrice, &a.Direction, &a.ResetBuffer,
		&a.Active, &a.Triggered, &a.TriggeredAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAlerts(rows rowsIter) ([]models.Alert, error) {
	var out []models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(
			&a.ID, &a.Label, &a.TargetPrice, &a.Direction, &a.ResetBuffer,
			&a.Active, &a.Triggered, &a.TriggeredAt, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
