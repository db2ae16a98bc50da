package external_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/external"
	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/pricemath"
)

func TestGoldAPIGetGoldPricePerGram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/XAU/INR" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-access-token") != "test-key" {
			t.Fatalf("missing access token header")
		}
		w.Write([]byte(`{"price": 231721.5, "metal": "XAU", "currency": "INR"}`))
	}))
	defer srv.Close()

	client := external.NewGoldAPIClient("test-key")
	client.SetBaseURL(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	perGram, err := client.GetGoldPricePerGram(ctx)
	if err != nil {
		t.Fatalf("GetGoldPricePerGram: %v", err)
	}

	want := 231721.5 / pricemath.GramsPerTroyOunce
	if math.Abs(perGram-want) > 1e-9 {
		t.Fatalf("per gram = %f, want %f", perGram, want)
	}
	t.Logf("Gold: ₹%.2f/g", perGram)
}

func TestGoldAPIInvalidPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"price": 0}`))
	}))
	defer srv.Close()

	client := external.NewGoldAPIClient("test-key")
	client.SetBaseURL(srv.URL)

	if _, err := client.GetGoldPricePerGram(context.Background()); err == nil {
		t.Fatal("expected error for non-positive price")
	}
}

func TestCoinGeckoGetBitcoinQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Fatalf("unexpected ids %q", got)
		}
		w.Write([]byte(`{"bitcoin": {"inr": 5400000, "inr_24h_change": -2.5}}`))
	}))
	defer srv.Close()

	client := external.NewCoinGeckoClient()
	client.SetBaseURL(srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	q, err := client.GetBitcoinQuote(ctx)
	if err != nil {
		t.Fatalf("GetBitcoinQuote: %v", err)
	}
	if q.PriceINR != 5400000 {
		t.Fatalf("price = %f", q.PriceINR)
	}
	if q.PercentChange != -2.5 {
		t.Fatalf("percentChange = %f", q.PercentChange)
	}
	if q.Change24h >= 0 {
		t.Fatalf("expected negative absolute change, got %f", q.Change24h)
	}
	t.Logf("Bitcoin: ₹%.0f (%.2f%%)", q.PriceINR, q.PercentChange)
}

func TestCoinGeckoErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := external.NewCoinGeckoClient()
	client.SetBaseURL(srv.URL)

	if _, err := client.GetBitcoinQuote(context.Background()); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
