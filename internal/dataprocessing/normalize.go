package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// NormalizeColumnName lower-cases a header cell and joins its words with underscores,
// so "Media Type" and " media_type " both become "media_type".
func NormalizeColumnName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// ParseDate parses a date cell. Explicit layouts, when configured, are tried first and
// exactly; otherwise the format is inferred, month-first for ambiguous numeric dates.
func ParseDate(value string, layouts []string) (parsed time.Time, ok bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	// dateparse can panic on some malformed input
	defer func() {
		if recover() != nil {
			parsed, ok = time.Time{}, false
		}
	}()

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseEngagements converts a raw engagement cell to a non-negative count. Decimal values
// are truncated toward zero. The second result is true when the cell could not be used
// as-is and was replaced by 0.
func ParseEngagements(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, true
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n < 0 {
			return 0, true
		}
		return n, false
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f >= math.MaxInt64 {
		return 0, true
	}
	return int64(f), false
}
