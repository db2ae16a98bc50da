package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/pricemath"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/repository"
)

type priceJSON struct {
	T int64   `json:"t"`
	P float64 `json:"p"`
}

type latestPriceJSON struct {
	PricePerGram  float64 `json:"price_1g"`
	Timestamp     int64   `json:"timestamp"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	Display       string  `json:"display"`
	Unit          string  `json:"unit"`
}

func (s *Server) handleLatestPrice(w http.ResponseWriter, r *http.Request) {
	unit, err := parseUnitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	latest := s.cache.GetLatestGold(ctx)
	if latest == nil {
		latest, err = s.priceRepo.GetLatest(ctx)
		if err != nil {
			fmt.Printf("Error fetching latest price: %v\n", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch latest price")
			return
		}
	}
	if latest == nil {
		writeError(w, http.StatusNotFound, "no price data available")
		return
	}

	// Change vs. yesterday: resolve the closest sample to now-24h.
	var change, pct float64
	now := time.Now()
	series, err := s.priceRepo.GetSince(ctx, now.AddDate(0, 0, -2))
	if err == nil {
		if resolved, nerr := pricemath.Nearest(series, now.AddDate(0, 0, -1)); nerr == nil {
			change = latest.PricePerGram - resolved.PricePerGram
			if resolved.PricePerGram != 0 {
				pct = change / resolved.PricePerGram * 100
			}
		}
	}

	converted := pricemath.ConvertWithRate(latest.PricePerGram, unit, s.usdINRRate)
	writeJSON(w, http.StatusOK, latestPriceJSON{
		PricePerGram:  latest.PricePerGram,
		Timestamp:     latest.Timestamp.UnixMilli(),
		Price:         converted,
		Change:        pricemath.ConvertWithRate(change, unit, s.usdINRRate),
		PercentChange: pct,
		Display:       pricemath.Format(converted, unit),
		Unit:          unit.String(),
	})
}

func (s *Server) handlePricesToday(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := repository.MarketDayNow()
	samples, err := s.priceRepo.GetByDay(ctx, today)
	if err != nil {
		fmt.Printf("Error fetching today's prices: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch prices")
		return
	}
	writeJSON(w, http.StatusOK, toPriceJSON(samples))
}

func (s *Server) handlePricesByDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if !validateDate(date) {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	samples, err := s.priceRepo.GetByDay(ctx, date)
	if err != nil {
		fmt.Printf("Error fetching prices for %s: %v\n", date, err)
		writeError(w, http.StatusInternalServerError, "failed to fetch prices")
		return
	}
	writeJSON(w, http.StatusOK, toPriceJSON(samples))
}

func (s *Server) handleAvailableDays(w http.ResponseWriter, r *http.Request) {
	days, err := s.priceRepo.GetAvailableDays(r.Context())
	if err != nil {
		fmt.Printf("Error fetching available days: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch available days")
		return
	}
	if days == nil {
		days = []string{}
	}
	writeJSON(w, http.StatusOK, days)
}

type comparisonJSON struct {
	Label         string  `json:"label"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	PercentChange float64 `json:"percentChange"`
	Display       string  `json:"display"`
}

func (s *Server) handleComparisons(w http.ResponseWriter, r *http.Request) {
	unit, err := parseUnitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	now := time.Now()

	// Widest configured offset is a year; fetch with headroom so the
	// nearest-date resolver has candidates on both sides.
	series, err := s.priceRepo.GetSince(ctx, now.AddDate(0, 0, -400))
	if err != nil {
		fmt.Printf("Error fetching comparison series: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch price history")
		return
	}
	if len(series) == 0 {
		writeJSON(w, http.StatusOK, []comparisonJSON{})
		return
	}

	latest := series[len(series)-1]
	rows := pricemath.BuildComparisons(series, latest.PricePerGram, now, pricemath.DefaultOffsets)

	out := make([]comparisonJSON, len(rows))
	for i, row := range rows {
		price := pricemath.ConvertWithRate(row.Price, unit, s.usdINRRate)
		out[i] = comparisonJSON{
			Label:         row.Label,
			Price:         price,
			Change:        pricemath.ConvertWithRate(row.Change, unit, s.usdINRRate),
			PercentChange: row.PercentChange,
			Display:       pricemath.Format(price, unit),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func toPriceJSON(samples []models.PriceSample) []priceJSON {
	out := make([]priceJSON, len(samples))
	for i, p := range samples {
		out[i] = priceJSON{T: p.Timestamp.UnixMilli(), P: p.PricePerGram}
	}
	return out
}
