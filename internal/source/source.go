// Package source contains the adapters that pull bill records from external
// legislative APIs and map them into the canonical domain shape. The three
// adapters share one REST client and differ only in endpoint construction,
// field mapping and status normalization.
package source

import (
	"time"
	"unicode/utf8"
)

const untitledBill = "Untitled Bill"

// truncate clips s to at most n bytes without splitting a rune; source titles
// routinely exceed the short-description column, and a clip landing mid-rune
// would make the value unstorable as TEXT.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// parseDateOr parses a YYYY-MM-DD date, falling back to the given time when
// the source omits or mangles it.
func parseDateOr(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return fallback
	}
	return t
}
