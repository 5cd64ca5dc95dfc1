//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// DateLayout is the canonical layout for applied, interview and follow-up dates
const DateLayout = "2006-01-02"

// dateLayouts are tried in order; datetime-local values come from form inputs
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseDate parses a stored date string. Dates without a zone are read as UTC.
// The boolean is false for empty or unparsable input.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatDate renders t in DateLayout
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Epoch is the fallback instant for missing or unparsable dates when ordering
var Epoch = time.Unix(0, 0).UTC()

// ParseDateOrEpoch returns the parsed date, or Epoch when it cannot be parsed
func ParseDateOrEpoch(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return Epoch
}

// StartOfDay truncates t to midnight UTC
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
