package normalize

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Popularity bounds and the default used for non-numeric cells.
const (
	MinPopularity     = 0
	MaxPopularity     = 1000
	DefaultPopularity = 50
)

var blankURLTokens = map[string]struct{}{
	"":     {},
	"无":    {},
	"none": {},
	"nan":  {},
	"null": {},
	"n/a":  {},
}

var openSourceTokens = map[string]struct{}{
	"是":    {},
	"yes":  {},
	"y":    {},
	"true": {},
	"开源":   {},
}

// URL standardizes a link. Blank tokens collapse to "". A missing scheme
// is replaced by https://. ok is false when a non-blank value could not
// be turned into an absolute URL; the result is then "".
func URL(raw string) (normalized string, ok bool) {
	s := strings.TrimSpace(raw)
	if _, blank := blankURLTokens[strings.ToLower(s)]; blank {
		return "", true
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		s = "https://" + s
	}
	if strings.ContainsAny(s, " \t\r\n") {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	return s, true
}

// Popularity coerces a raw value to an integer clamped to
// [MinPopularity, MaxPopularity]. Non-numeric values yield
// DefaultPopularity with ok false.
func Popularity(v any) (score int, ok bool) {
	var f float64
	switch t := v.(type) {
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case float64:
		f = t
	case float32:
		f = float64(t)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return DefaultPopularity, false
		}
		f = parsed
	case nil:
		return DefaultPopularity, false
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(fmt.Sprint(t)), 64)
		if err != nil {
			return DefaultPopularity, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultPopularity, false
	}
	// Clamp before converting: out-of-range float to int is undefined.
	f = math.Max(MinPopularity, math.Min(MaxPopularity, f))
	return int(f), true
}

// OpenSource reports whether a raw flag means "open source".
func OpenSource(v any) bool {
	var s string
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	_, ok := openSourceTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// MentionsOpenSource reports whether a description claims the tool is
// open source.
func MentionsOpenSource(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "开源") ||
		strings.Contains(lower, "open source") ||
		strings.Contains(lower, "open-source")
}

// FormatOpenSource renders the flag the way the workbook stores it.
func FormatOpenSource(v bool) string {
	if v {
		return "是"
	}
	return "否"
}

