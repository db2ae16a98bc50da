package pricemath

import (
	"math"
	"testing"
)

func TestConvertIdentity(t *testing.T) {
	prices := []float64{1, 99.99, 7450.25, 123456.78}
	for _, p := range prices {
		if got := Convert(p, INRPerGram); got != p {
			t.Fatalf("Convert(%f, INRPerGram) = %f, want identity", p, got)
		}
	}
}

func TestConvertUSDPerOunce(t *testing.T) {
	// 7450 INR/g * 31.1035 g/oz / 83 INR/USD
	got := Convert(7450, USDPerTroyOunce)
	want := 7450 * GramsPerTroyOunce / DefaultUSDINRRate
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("Convert(7450, USDPerTroyOunce) = %f, want %f", got, want)
	}
	t.Logf("7450 INR/g = $%.2f/oz", got)
}

func TestConvertRoundTrip(t *testing.T) {
	for _, p := range []float64{0.01, 83, 7450.25, 1e6} {
		usd := Convert(p, USDPerTroyOunce)
		back := usd * DefaultUSDINRRate / GramsPerTroyOunce
		if math.Abs(back-p) > 1e-9*math.Max(1, p) {
			t.Fatalf("round trip: %f -> %f -> %f", p, usd, back)
		}
	}
}

func TestConvertWithRate(t *testing.T) {
	got := ConvertWithRate(8300, USDPerTroyOunce, 100)
	want := 8300 * GramsPerTroyOunce / 100
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("ConvertWithRate = %f, want %f", got, want)
	}

	// Non-positive rate falls back to the default
	if ConvertWithRate(8300, USDPerTroyOunce, 0) != Convert(8300, USDPerTroyOunce) {
		t.Fatal("rate 0 should fall back to the default rate")
	}
}

func TestConvertPassThrough(t *testing.T) {
	// Negative and zero inputs pass through unchanged; validity is the
	// caller's responsibility.
	if Convert(-5, INRPerGram) != -5 {
		t.Fatal("negative input should pass through for INRPerGram")
	}
	if Convert(0, USDPerTroyOunce) != 0 {
		t.Fatal("zero input should convert to zero")
	}
}

func TestParseUnit(t *testing.T) {
	cases := []struct {
		in      string
		want    CurrencyUnit
		wantErr bool
	}{
		{"", INRPerGram, false},
		{"inr_per_gram", INRPerGram, false},
		{"usd_per_ounce", USDPerTroyOunce, false},
		{"eur_per_kg", INRPerGram, true},
		{"INR_PER_GRAM", INRPerGram, true},
	}
	for _, tc := range cases {
		got, err := ParseUnit(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseUnit(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseUnit(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
