package api

import (
	"fmt"
	"net/http"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

func (s *Server) handleMarketLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	quote := s.cache.GetLatestMarket(ctx)
	if quote == nil {
		var err error
		quote, err = s.marketRepo.GetLatest(ctx, "bitcoin")
		if err != nil {
			fmt.Printf("Error fetching latest market quote: %v\n", err)
			writeError(w, http.StatusInternalServerError, "failed to fetch market data")
			return
		}
	}
	if quote == nil {
		writeError(w, http.StatusNotFound, "no market data available")
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (s *Server) handleMarketHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 100)

	history, err := s.marketRepo.GetHistory(r.Context(), "bitcoin", limit)
	if err != nil {
		fmt.Printf("Error fetching market history: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch market history")
		return
	}
	if history == nil {
		history = []models.MarketQuote{}
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handlePredictionLatest(w http.ResponseWriter, r *http.Request) {
	p, err := s.predictionRepo.GetLatest(r.Context())
	if err != nil {
		fmt.Printf("Error fetching latest prediction: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch prediction")
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "no prediction available")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
