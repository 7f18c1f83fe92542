package trend

import (
	"testing"
	"time"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

func TestScoreDays(t *testing.T) {
	tests := []struct {
		popularity int
		days       int
		want       catalog.Trend
	}{
		{750, 3, catalog.TrendBreakout},
		{450, 30, catalog.TrendStable},
		{701, 7, catalog.TrendBreakout},
		{700, 7, catalog.TrendTrending},
		{500, 0, catalog.TrendTrending},
		{499, 2, catalog.TrendStable},
		{801, 8, catalog.TrendSustained},
		{800, 8, catalog.TrendRising},
		{600, 100, catalog.TrendRising},
		{400, 100, catalog.TrendStable},
		{399, 100, catalog.TrendLatent},
		{0, 0, catalog.TrendLatent},
		{900, -10, catalog.TrendBreakout},
	}

	for _, tt := range tests {
		if got := ScoreDays(tt.popularity, tt.days); got != tt.want {
			t.Errorf("ScoreDays(%d, %d) = %q, want %q", tt.popularity, tt.days, got, tt.want)
		}
	}
}

func TestScoreUsesCalendarDays(t *testing.T) {
	now := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)
	updated := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	if d := DaysSince(updated, now); d != 7 {
		t.Fatalf("expected 7 days, got %d", d)
	}
	if got := Score(750, updated, now); got != catalog.TrendBreakout {
		t.Errorf("expected breakout on day 7, got %q", got)
	}
	if got := Score(750, updated.AddDate(0, 0, -1), now); got != catalog.TrendRising {
		t.Errorf("expected rising on day 8, got %q", got)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	first := Score(650, now.AddDate(0, -1, 0), now)
	for i := 0; i < 10; i++ {
		if got := Score(650, now.AddDate(0, -1, 0), now); got != first {
			t.Fatalf("score changed between calls: %q vs %q", first, got)
		}
	}
}
