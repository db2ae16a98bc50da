package pricemath

import (
	"errors"
	"time"

	"github.com/sandeep-devarapalli/gold-price-tracker-website-sub001/internal/models"
)

// ErrEmptySeries is returned by Nearest when the series has no samples.
// Callers skip the comparison row or surface a "no data" state; it is
// never process-fatal.
var ErrEmptySeries = errors.New("empty price series")

// Nearest returns the sample whose timestamp is closest to target.
// When two samples are equally distant, the earlier one in iteration
// order wins.
func Nearest(series []models.PriceSample, target time.Time) (models.PriceSample, error) {
	if len(series) == 0 {
		return models.PriceSample{}, ErrEmptySeries
	}

	best := series[0]
	bestDist := absDuration(series[0].Timestamp.Sub(target))
	for _, s := range series[1:] {
		d := absDuration(s.Timestamp.Sub(target))
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Offset is one configured comparison row: a label and a lookback in days.
type Offset struct {
	Label string
	Days  int
}

// DefaultOffsets are the comparison rows shown on the dashboard.
var DefaultOffsets = []Offset{
	{Label: "1 year ago", Days: 365},
	{Label: "6 months ago", Days: 180},
	{Label: "3 months ago", Days: 90},
	{Label: "1 month ago", Days: 30},
	{Label: "yesterday", Days: 1},
}

// BuildComparisons resolves each offset independently against the series
// and derives change rows relative to latestPrice (INR per gram). An
// empty series yields no rows. A resolved price of zero yields a zero
// percent change rather than dividing by zero.
func BuildComparisons(series []models.PriceSample, latestPrice float64, now time.Time, offsets []Offset) []models.ComparisonPoint {
	if len(series) == 0 {
		return nil
	}

	out := make([]models.ComparisonPoint, 0, len(offsets))
	for _, off := range offsets {
		target := now.AddDate(0, 0, -off.Days)
		resolved, err := Nearest(series, target)
		if err != nil {
			continue
		}

		change := latestPrice - resolved.PricePerGram
		pct := 0.0
		if resolved.PricePerGram != 0 {
			pct = change / resolved.PricePerGram * 100
		}

		out = append(out, models.ComparisonPoint{
			Label:         off.Label,
			Price:         resolved.PricePerGram,
			Change:        change,
			PercentChange: pct,
		})
	}
	return out
}
