package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/repository"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/testutil"
)

// ---------- PriceRepo ----------

func TestPriceRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewPriceRepo(pool)
	ctx := context.Background()

	ts := time.Now()
	p, err := repo.Record(ctx, 7450.25, ts, "goldapi")
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	if p.PricePerGram != 7450.25 {
		t.Fatalf("price mismatch: got %f", p.PricePerGram)
	}
	t.Logf("Recorded sample: id=%d price=%.2f day=%s", p.ID, p.PricePerGram, p.MarketDay)

	latest, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected latest sample")
	}
	t.Logf("Latest: id=%d price=%.2f", latest.ID, latest.PricePerGram)

	samples, err := repo.GetByDay(ctx, p.MarketDay)
	if err != nil {
		t.Fatalf("GetByDay: %v", err)
	}
	if len(samples) == 0 {
		t.Fatal("expected samples for market day")
	}
	t.Logf("GetByDay(%s): %d rows", p.MarketDay, len(samples))

	since, err := repo.GetSince(ctx, ts.Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetSince: %v", err)
	}
	if len(since) == 0 {
		t.Fatal("expected samples in range")
	}

	days, err := repo.GetAvailableDays(ctx)
	if err != nil {
		t.Fatalf("GetAvailableDays: %v", err)
	}
	if len(days) == 0 {
		t.Fatal("expected at least one day")
	}
	t.Logf("Available days: %v", days)
}

// ---------- MarketRepo ----------

func TestMarketRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewMarketRepo(pool)
	ctx := context.Background()

	q := &models.MarketQuote{
		Timestamp:     time.Now(),
		Symbol:        "bitcoin",
		PriceINR:      5400000,
		Change24h:     -120000,
		PercentChange: -2.17,
	}
	recorded, err := repo.Record(ctx, q)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if recorded.ID == 0 {
		t.Fatal("expected non-zero ID")
	}
	t.Logf("Recorded quote: id=%d price=%.0f change=%.2f%%", recorded.ID, recorded.PriceINR, recorded.PercentChange)

	latest, err := repo.GetLatest(ctx, "bitcoin")
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected latest quote")
	}

	history, err := repo.GetHistory(ctx, "bitcoin", 10)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(history) == 0 {
		t.Fatal("expected history rows")
	}
	t.Logf("History: %d rows", len(history))
}

// ---------- PredictionRepo ----------

func TestPredictionRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewPredictionRepo(pool)
	ctx := context.Background()

	conf := 0.72
	p := &models.Prediction{
		Timestamp:   time.Now(),
		Direction:   "up",
		Summary:     "festival demand likely to support prices",
		Confidence:  &conf,
		HorizonDays: 7,
	}
	recorded, err := repo.Record(ctx, p)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if recorded.ID == 0 {
		t.Fatal("expected non-zero ID")
	}

	latest, err := repo.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest: %v", err)
	}
	if latest == nil {
		t.Fatal("expected latest prediction")
	}
	t.Logf("Latest prediction: %s (%s)", latest.Direction, latest.Summary)
}

// ---------- AlertRepo ----------

func TestAlertRepo(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewAlertRepo(pool)
	ctx := context.Background()

	a, err := repo.Create(ctx, &models.Alert{
		Label:       "buy the dip",
		TargetPrice: 7200,
		Direction:   models.AlertDirectionBelow,
		ResetBuffer: 100,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected generated ID")
	}
	if !a.Active || a.Triggered {
		t.Fatalf("new alert should be active and untriggered: %+v", a)
	}
	t.Logf("Created alert: id=%s target=%.0f direction=%s", a.ID, a.TargetPrice, a.Direction)

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) == 0 {
		t.Fatal("expected alerts")
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	for _, al := range active {
		if !al.Active {
			t.Fatalf("ListActive returned inactive alert %s", al.ID)
		}
	}

	if err := repo.MarkTriggered(ctx, a.ID, time.Now()); err != nil {
		t.Fatalf("MarkTriggered: %v", err)
	}
	got, err := repo.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || !got.Triggered {
		t.Fatal("alert should be triggered")
	}

	if err := repo.ResetTrigger(ctx, a.ID); err != nil {
		t.Fatalf("ResetTrigger: %v", err)
	}
	got, err = repo.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("Get after reset: %v", err)
	}
	if got.Triggered || got.TriggeredAt != nil {
		t.Fatal("alert should be re-armed")
	}

	deleted, err := repo.Delete(ctx, a.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to remove the alert")
	}
}

func TestAlertRepoValidation(t *testing.T) {
	pool := testutil.SetupPool(t)
	repo := repository.NewAlertRepo(pool)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &models.Alert{TargetPrice: 7200, Direction: "sideways"}); err == nil {
		t.Fatal("expected error for invalid direction")
	}
	if _, err := repo.Create(ctx, &models.Alert{TargetPrice: 0, Direction: models.AlertDirectionBelow}); err == nil {
		t.Fatal("expected error for non-positive target price")
	}
}
