package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/alerts"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/api"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/cache"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/config"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/db"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/external"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/metrics"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/notifications"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/repository"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/scheduler"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/stream"
)

const banner = `
╔══════════════════════════════════════╗
║     Gold Price Tracker v0.3          ║
║                                      ║
╚══════════════════════════════════════╝
`

func main() {
	fmt.Print(banner)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg.Print()

	// Database
	fmt.Printf("\n[DB] Connecting to %s:%d/%s ...\n", cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := db.Connect(cfg.DSN(), db.PoolSettings{
		MaxConns:       int32(cfg.DBMaxConns),
		MinConns:       int32(cfg.DBMinConns),
		ConnectTimeout: time.Duration(cfg.DBConnectTimeout) * time.Second,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Connection failed: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		pool.Close()
		fmt.Println("[DB] Connection pool closed")
	}()

	if err := db.TestConnection(pool); err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Test query failed: %v\n", err)
		os.Exit(1)
	}
	if err := db.EnsureSchema(pool); err != nil {
		fmt.Fprintf(os.Stderr, "[DB] Schema setup failed: %v\n", err)
		os.Exit(1)
	}

	// Repos
	priceRepo := repository.NewPriceRepo(pool)
	marketRepo := repository.NewMarketRepo(pool)
	alertRepo := repository.NewAlertRepo(pool)

	// Optional Redis cache for hot reads
	var priceCache *cache.Cache
	if cfg.RedisAddr != "" {
		priceCache, err = cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[CACHE] Redis unavailable, continuing without cache: %v\n", err)
			priceCache = nil
		}
	}
	defer priceCache.Close()

	// Metrics + live stream hub
	m := metrics.New()
	hub := stream.NewHub(m.StreamClients)

	// External price sources
	goldClient := external.NewGoldAPIClient(cfg.GoldAPIKey)
	marketClient := external.NewCoinGeckoClient()

	// Alert engine over webhook notifications
	notify := notifications.NewSender(cfg.WebhookURL, cfg.SenderName)
	alertEngine := alerts.NewEngine(alertRepo, notify)

	// Graceful shutdown context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. API server
	srv := api.NewServer(pool, cfg.APIPort, cfg.CORSAllowOrigin, priceCache, hub, m, cfg.USDINRRate)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "[API] Server error: %v\n", err)
			os.Exit(1)
		}
	}()

	// 2. Price collector
	collector := scheduler.NewCollector(
		goldClient, marketClient,
		priceRepo, marketRepo,
		alertEngine, priceCache, hub, m,
		scheduler.CollectorConfig{
			GoldInterval:   time.Duration(cfg.GoldFetchIntervalMinutes) * time.Minute,
			MarketInterval: time.Duration(cfg.MarketFetchIntervalMinutes) * time.Minute,
		},
	)
	if err := collector.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[COLLECTOR] Start failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nAll services started successfully")

	// Wait for shutdown signal
	<-ctx.Done()
	fmt.Println("\nShutting down gracefully...")

	collector.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "[API] Shutdown error: %v\n", err)
	}
	fmt.Println("[API] Server closed")
	fmt.Println("Shutdown complete")
}
