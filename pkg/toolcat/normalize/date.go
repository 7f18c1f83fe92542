package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

var (
	clockPattern     = regexp.MustCompile(`\s*\d{1,2}:\d{2}:\d{2}(?:\.\d+)?\s*`)
	separatorPattern = regexp.MustCompile(`[/年月日]`)
	dashRunPattern   = regexp.MustCompile(`-+`)
	isoDatePattern   = regexp.MustCompile(`\d{4}-\d{1,2}-\d{1,2}`)
)

// dateLayouts are tried in priority order; the first successful parse wins.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"20060102",
	"2006年1月2日",
	"02-Jan-06",
}

// Excel serial numbers accepted as dates (1954-10-03 .. 2119-01-08).
const (
	minExcelSerial = 20000
	maxExcelSerial = 80000
)

var nullDateTokens = map[string]struct{}{
	"":     {},
	"nan":  {},
	"nat":  {},
	"none": {},
	"null": {},
}

// CleanDateText applies the textual cleanup passes: null-like tokens
// become "", clock times are removed, and every date separator is
// unified to a single "-".
func CleanDateText(s string) string {
	s = strings.TrimSpace(s)
	if _, ok := nullDateTokens[strings.ToLower(s)]; ok {
		return ""
	}
	s = clockPattern.ReplaceAllString(s, "")
	s = separatorPattern.ReplaceAllString(s, "-")
	s = dashRunPattern.ReplaceAllString(s, "-")
	return strings.TrimSpace(s)
}

// ExtractDate returns the first YYYY-M-D substring of cleaned text.
func ExtractDate(cleaned string) (string, bool) {
	m := isoDatePattern.FindString(cleaned)
	return m, m != ""
}

// ParseDate recovers a calendar date from a raw cell value. The result
// is a date at midnight UTC; ok is false when nothing usable was found.
func ParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return dateOnly(t), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return ParseDate(*t)
	case float64:
		return parseNumericDate(t)
	case float32:
		return parseNumericDate(float64(t))
	case int:
		return parseNumericDate(float64(t))
	case int64:
		return parseNumericDate(float64(t))
	case string:
		return parseDateString(t)
	default:
		return time.Time{}, false
	}
}

// RecoverDate is ParseDate with the run date as fallback. defaulted
// reports whether the fallback was used.
func RecoverDate(v any, now time.Time) (date time.Time, defaulted bool) {
	if d, ok := ParseDate(v); ok {
		return d, false
	}
	return Today(now), true
}

// Today returns now truncated to its calendar date.
func Today(now time.Time) time.Time {
	return dateOnly(now)
}

func parseDateString(raw string) (time.Time, bool) {
	cleaned := CleanDateText(raw)
	if cleaned == "" {
		return time.Time{}, false
	}

	if extracted, ok := ExtractDate(cleaned); ok {
		if d, ok := parseLayouts(extracted); ok {
			return d, true
		}
	}

	// No separated date: retry the remaining candidates on the raw text
	// without its clock part, so compact and DD-Mon-YY forms survive.
	bare := strings.TrimSpace(clockPattern.ReplaceAllString(strings.TrimSpace(raw), ""))
	if d, ok := parseLayouts(bare); ok {
		return d, true
	}
	// Date-time cells read raw arrive as fractional Excel serials.
	if n, err := strconv.ParseFloat(bare, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		if d, ok := parseNumericDate(n); ok {
			return d, true
		}
	}
	if d, err := dateparse.ParseAny(bare); err == nil {
		return dateOnly(d), true
	}
	return time.Time{}, false
}

func parseLayouts(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return dateOnly(d), true
		}
	}
	return time.Time{}, false
}

func parseNumericDate(n float64) (time.Time, bool) {
	if n >= 10000101 && n <= 99991231 && n == float64(int64(n)) {
		return parseLayouts(strconv.FormatInt(int64(n), 10))
	}
	if n < minExcelSerial || n > maxExcelSerial {
		return time.Time{}, false
	}
	d, err := excelize.ExcelDateToTime(n, false)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(d), true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
