package catalog

// Trend is a qualitative status tag derived from popularity and recency.
type Trend string

// Trend labels, in decision-table order.
const (
	TrendBreakout  Trend = "🚀 breakout"
	TrendTrending  Trend = "✨ trending"
	TrendSustained Trend = "🏆 sustained popular"
	TrendRising    Trend = "📈 rising"
	TrendStable    Trend = "🆗 stable"
	TrendLatent    Trend = "⏳ latent potential"
)

// Trends lists every label in decision-table order.
var Trends = []Trend{
	TrendBreakout, TrendTrending, TrendSustained,
	TrendRising, TrendStable, TrendLatent,
}
