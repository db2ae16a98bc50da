package repository

import "time"

// ist is the bullion market's home timezone (UTC+5:30).
var ist = time.FixedZone("IST", 5*3600+1800)

// MarketDay returns the market day (YYYY-MM-DD) for a timestamp.
// Days roll over at midnight IST, matching the reference rate cadence.
func MarketDay(ts time.Time) string {
	return ts.In(ist).Format("2006-01-02")
}

// MarketDayNow returns the market day for the current moment.
func MarketDayNow() string {
	return MarketDay(time.Now())
}
