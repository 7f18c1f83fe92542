// Package trend derives a qualitative trend label from popularity and
// how recently a tool was updated.
package trend

import (
	"time"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

// RecentWindowDays is the recency window of the breakout and trending rules.
const RecentWindowDays = 7

// DaysSince returns whole calendar days between lastUpdated and now.
// Dates in the future give a negative count.
func DaysSince(lastUpdated, now time.Time) int {
	a := time.Date(lastUpdated.Year(), lastUpdated.Month(), lastUpdated.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Score applies the decision table; the first matching rule wins.
func Score(popularity int, lastUpdated, now time.Time) catalog.Trend {
	return ScoreDays(popularity, DaysSince(lastUpdated, now))
}

// ScoreDays is Score with the day count already computed.
func ScoreDays(popularity, days int) catalog.Trend {
	recent := days <= RecentWindowDays
	switch {
	case recent && popularity > 700:
		return catalog.TrendBreakout
	case recent && popularity >= 500:
		return catalog.TrendTrending
	case !recent && popularity > 800:
		return catalog.TrendSustained
	case popularity >= 600:
		return catalog.TrendRising
	case popularity >= 400:
		return catalog.TrendStable
	default:
		return catalog.TrendLatent
	}
}
