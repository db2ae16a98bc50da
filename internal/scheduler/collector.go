package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/cache"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/metrics"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/stream"
)

// GoldSource fetches the current gold price in INR per gram.
type GoldSource interface {
	GetGoldPricePerGram(ctx context.Context) (float64, error)
}

// MarketSource fetches the current bitcoin quote.
type MarketSource interface {
	GetBitcoinQuote(ctx context.Context) (*models.MarketQuote, error)
}

// PriceStore persists gold samples.
type PriceStore interface {
	Record(ctx context.Context, pricePerGram float64, ts time.Time, source string) (*models.PriceSample, error)
}

// MarketStore persists bitcoin quotes.
type MarketStore interface {
	Record(ctx context.Context, q *models.MarketQuote) (*models.MarketQuote, error)
}

// AlertEvaluator runs the alert engine against a fresh gold price.
type AlertEvaluator interface {
	Evaluate(ctx context.Context, pricePerGram float64) (int, error)
}

type CollectorConfig struct {
	GoldInterval   time.Duration // e.g. 15*time.Minute
	MarketInterval time.Duration // e.g. 5*time.Minute
	FetchTimeout   time.Duration
}

// Collector drives periodic price collection: fetch, persist, cache,
// broadcast, and alert evaluation. Lifecycle is Start/Stop, guarded by
// a mutex so repeated calls are safe.
type Collector struct {
	gold    GoldSource
	market  MarketSource
	prices  PriceStore
	quotes  MarketStore
	alerts  AlertEvaluator
	cache   *cache.Cache
	hub     *stream.Hub
	metrics *metrics.Metrics
	cfg     CollectorConfig

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func NewCollector(
	gold GoldSource,
	market MarketSource,
	prices PriceStore,
	quotes MarketStore,
	alertEngine AlertEvaluator,
	priceCache *cache.Cache,
	hub *stream.Hub,
	m *metrics.Metrics,
	cfg CollectorConfig,
) *Collector {
	if cfg.GoldInterval <= 0 {
		cfg.GoldInterval = 15 * time.Minute
	}
	if cfg.MarketInterval <= 0 {
		cfg.MarketInterval = 5 * time.Minute
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 60 * time.Second
	}
	return &Collector{
		gold:    gold,
		market:  market,
		prices:  prices,
		quotes:  quotes,
		alerts:  alertEngine,
		cache:   priceCache,
		hub:     hub,
		metrics: m,
		cfg:     cfg,
	}
}

func (c *Collector) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		fmt.Println("[COLLECTOR] Already running")
		return nil
	}

	c.cron = cron.New(cron.WithSeconds())

	// cron.Every gives a constant cadence for any interval; a */N
	// minute expression would only be even when N divides 60.
	c.cron.Schedule(cron.Every(c.cfg.GoldInterval), cron.FuncJob(func() { c.CollectGold(ctx) }))
	if c.market != nil {
		c.cron.Schedule(cron.Every(c.cfg.MarketInterval), cron.FuncJob(func() { c.CollectMarket(ctx) }))
	}

	c.cron.Start()
	c.running = true

	// Warm everything immediately instead of waiting for the first tick.
	go func() {
		c.CollectGold(ctx)
		if c.market != nil {
			c.CollectMarket(ctx)
		}
	}()

	fmt.Printf("[COLLECTOR] Started (gold every %s, market every %s)\n",
		c.cfg.GoldInterval, c.cfg.MarketInterval)
	return nil
}

func (c *Collector) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.cron.Stop()
	c.running = false
	fmt.Println("[COLLECTOR] Stopped")
}

func (c *Collector) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// CollectGold runs one gold collection cycle. Exposed so callers can
// trigger a fetch outside the schedule.
func (c *Collector) CollectGold(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
	defer cancel()

	start := time.Now()
	price, err := c.gold.GetGoldPricePerGram(ctx)
	if c.metrics != nil {
		c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		fmt.Printf("[COLLECTOR] Gold fetch failed: %v\n", err)
		if c.metrics != nil {
			c.metrics.FetchErrors.WithLabelValues("goldapi").Inc()
		}
		return
	}
	if c.metrics != nil {
		c.metrics.FetchesTotal.WithLabelValues("goldapi").Inc()
	}

	sample, err := c.prices.Record(ctx, price, time.Now(), "goldapi")
	if err != nil {
		fmt.Printf("[COLLECTOR] Record gold sample failed: %v\n", err)
		return
	}
	fmt.Printf("[COLLECTOR] Gold: ₹%.2f/g (day %s)\n", sample.PricePerGram, sample.MarketDay)

	c.cache.SetLatestGold(ctx, sample)
	if c.hub != nil {
		c.hub.Broadcast("gold", sample)
	}

	if c.alerts != nil {
		fired, err := c.alerts.Evaluate(ctx, sample.PricePerGram)
		if err != nil {
			fmt.Printf("[COLLECTOR] Alert evaluation failed: %v\n", err)
		} else if fired > 0 {
			fmt.Printf("[COLLECTOR] %d alert(s) fired\n", fired)
			if c.metrics != nil {
				c.metrics.AlertsTriggered.Add(float64(fired))
			}
		}
	}
}

// CollectMarket runs one bitcoin collection cycle.
func (c *Collector) CollectMarket(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.FetchTimeout)
	defer cancel()

	quote, err := c.market.GetBitcoinQuote(ctx)
	if err != nil {
		fmt.Printf("[COLLECTOR] Market fetch failed: %v\n", err)
		if c.metrics != nil {
			c.metrics.FetchErrors.WithLabelValues("coingecko").Inc()
		}
		return
	}
	if c.metrics != nil {
		c.metrics.FetchesTotal.WithLabelValues("coingecko").Inc()
	}

	stored, err := c.quotes.Record(ctx, quote)
	if err != nil {
		fmt.Printf("[COLLECTOR] Record market quote failed: %v\n", err)
		return
	}
	fmt.Printf("[COLLECTOR] Bitcoin: ₹%.0f (%+.2f%%)\n", stored.PriceINR, stored.PercentChange)

	c.cache.SetLatestMarket(ctx, stored)
	if c.hub != nil {
		c.hub.Broadcast("market", stored)
	}
}
