package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

const (
	latestGoldKey   = "gold:latest"
	latestMarketKey = "market:bitcoin:latest"
	defaultTTL      = 10 * time.Minute
)

// Cache keeps the most recent gold sample and bitcoin quote in Redis so
// the hot read path (/v1/prices/latest on every dashboard poll) skips
// Postgres. Entirely optional: a nil *Cache is a no-op.
type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

// New connects to Redis and pings it. Returns an error when the server
// is unreachable; callers may continue without a cache.
func New(addr, password string, db int) (*Cache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	fmt.Printf("[CACHE] Connected to redis at %s\n", addr)
	return &Cache{client: client, ttl: defaultTTL}, nil
}

func (c *Cache) SetLatestGold(ctx context.Context, p *models.PriceSample) {
	if c == nil {
		return
	}
	data, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, latestGoldKey, data, c.ttl).Err(); err != nil {
		fmt.Printf("[CACHE] Set %s failed: %v\n", latestGoldKey, err)
	}
}

func (c *Cache) GetLatestGold(ctx context.Context) *models.PriceSample {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, latestGoldKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			fmt.Printf("[CACHE] Get %s failed: %v\n", latestGoldKey, err)
		}
		return nil
	}
	var p models.PriceSample
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	return &p
}

func (c *Cache) SetLatestMarket(ctx context.Context, q *models.MarketQuote) {
	if c == nil {
		return
	}
	data, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, latestMarketKey, data, c.ttl).Err(); err != nil {
		fmt.Printf("[CACHE] Set %s failed: %v\n", latestMarketKey, err)
	}
}

func (c *Cache) GetLatestMarket(ctx context.Context) *models.MarketQuote {
	if c == nil {
		return nil
	}
	data, err := c.client.Get(ctx, latestMarketKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			fmt.Printf("[CACHE] Get %s failed: %v\n", latestMarketKey, err)
		}
		return nil
	}
	var q models.MarketQuote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil
	}
	return &q
}

func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.client.Close()
}
