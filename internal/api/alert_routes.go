package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

type createAlertRequest struct {
	Label       string  `json:"label"`
	TargetPrice float64 `json:"targetPrice"`
	Direction   string  `json:"direction"`
	ResetBuffer float64 `json:"resetBuffer"`
}

func (req *createAlertRequest) validate() error {
	if req.TargetPrice <= 0 {
		return fmt.Errorf("targetPrice must be positive")
	}
	if req.Direction != models.AlertDirectionBelow && req.Direction != models.AlertDirectionAbove {
		return fmt.Errorf("direction must be below or above")
	}
	if req.ResetBuffer < 0 {
		return fmt.Errorf("resetBuffer must not be negative")
	}
	return nil
}

func (s *Server) handleAlertsList(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alertRepo.List(r.Context())
	if err != nil {
		fmt.Printf("Error listing alerts: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to list alerts")
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleAlertsCreate(w http.ResponseWriter, r *http.Request) {
	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	alert, err := s.alertRepo.Create(r.Context(), &models.Alert{
		Label:       req.Label,
		TargetPrice: req.TargetPrice,
		Direction:   req.Direction,
		ResetBuffer: req.ResetBuffer,
	})
	if err != nil {
		fmt.Printf("Error creating alert: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to create alert")
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

func (s *Server) handleAlertsDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing alert id")
		return
	}

	deleted, err := s.alertRepo.Delete(r.Context(), id)
	if err != nil {
		fmt.Printf("Error deleting alert %s: %v\n", id, err)
		writeError(w, http.StatusInternalServerError, "failed to delete alert")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "alert not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
