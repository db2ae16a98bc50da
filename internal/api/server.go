package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/cache"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/metrics"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/pricemath"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/repository"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/stream"
)

const maxQueryLimit = 1000

var dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type Server struct {
	pool           *pgxpool.Pool
	priceRepo      *repository.PriceRepo
	marketRepo     *repository.MarketRepo
	predictionRepo *repository.PredictionRepo
	alertRepo      *repository.AlertRepo
	cache          *cache.Cache
	hub            *stream.Hub
	httpServer     *http.Server
	usdINRRate     float64
}

func NewServer(pool *pgxpool.Pool, port int, corsOrigin string, priceCache *cache.Cache, hub *stream.Hub, m *metrics.Metrics, usdINRRate float64) *Server {
	s := &Server{
		pool:           pool,
		priceRepo:      repository.NewPriceRepo(pool),
		marketRepo:     repository.NewMarketRepo(pool),
		predictionRepo: repository.NewPredictionRepo(pool),
		alertRepo:      repository.NewAlertRepo(pool),
		cache:          priceCache,
		hub:            hub,
		usdINRRate:     usdINRRate,
	}

	mux := http.NewServeMux()

	// Price routes
	mux.HandleFunc("GET /v1/prices/latest", s.handleLatestPrice)
	mux.HandleFunc("GET /v1/prices/today", s.handlePricesToday)
	mux.HandleFunc("GET /v1/prices/day/{date}", s.handlePricesByDay)
	mux.HandleFunc("GET /v1/prices/days", s.handleAvailableDays)
	mux.HandleFunc("GET /v1/prices/comparisons", s.handleComparisons)

	// Market + prediction routes
	mux.HandleFunc("GET /v1/market/latest", s.handleMarketLatest)
	mux.HandleFunc("GET /v1/market/history", s.handleMarketHistory)
	mux.HandleFunc("GET /v1/predictions/latest", s.handlePredictionLatest)

	// Alert routes
	mux.HandleFunc("GET /v1/alerts", s.handleAlertsList)
	mux.HandleFunc("POST /v1/alerts", s.handleAlertsCreate)
	mux.HandleFunc("DELETE /v1/alerts/{id}", s.handleAlertsDelete)

	// Live updates
	if hub != nil {
		mux.Handle("GET /v1/stream", hub)
	}

	// Health + metrics
	mux.HandleFunc("GET /health", s.handleHealth)
	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}

	handler := corsMiddleware(mux, corsOrigin)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	fmt.Printf("[API] REST API server started on http://localhost%s\n", s.httpServer.Addr)
	fmt.Printf("[API] Health check: http://localhost%s/health\n", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- validation helpers ---

func validateDate(date string) bool {
	if !dateRegexp.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

func parseLimit(r *http.Request, defaultLimit int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxQueryLimit {
		return maxQueryLimit
	}
	return n
}

func parseUnitParam(r *http.Request) (pricemath.CurrencyUnit, error) {
	return pricemath.ParseUnit(r.URL.Query().Get("unit"))
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
