package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolSettings sizes the connection pool for the tracker's workload:
// a steady dashboard polling load plus short collector bursts. Zero
// fields take the defaults below.
type PoolSettings struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
	MaxConnLifetime time.Duration
	ConnectTimeout  time.Duration
}

func (s PoolSettings) withDefaults() PoolSettings {
	if s.MaxConns <= 0 {
		s.MaxConns = 10
	}
	if s.MinConns <= 0 {
		s.MinConns = 2
	}
	if s.MaxConnIdleTime <= 0 {
		s.MaxConnIdleTime = time.Minute
	}
	if s.MaxConnLifetime <= 0 {
		s.MaxConnLifetime = 30 * time.Minute
	}
	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = 5 * time.Second
	}
	return s
}

// Connect opens a pgx pool against dsn and verifies it with a ping.
func Connect(dsn string, settings PoolSettings) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	s := settings.withDefaults()
	cfg.MaxConns = s.MaxConns
	cfg.MinConns = s.MinConns
	cfg.MaxConnIdleTime = s.MaxConnIdleTime
	cfg.MaxConnLifetime = s.MaxConnLifetime

	ctx, cancel := context.WithTimeout(context.Background(), s.ConnectTimeout)
	defer cancel()

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	fmt.Printf("[DB] Pool ready (max %d conns)\n", s.MaxConns)
	return p, nil
}

// TestConnection runs a round-trip query and reports the server clock,
// confirming the pool serves statements and not just pings.
func TestConnection(p *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var now time.Time
	if err := p.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		return fmt.Errorf("test query: %w", err)
	}
	fmt.Printf("[DB] Server time %s\n", now.Format(time.RFC3339))
	return nil
}
