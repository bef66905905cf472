package domain

import (
	"strings"
	"time"
)

// Timestamp holds a vendor timestamp. Vendors normally send ISO-8601 but the
// contract is loose, so a value that fails to parse is carried verbatim
// rather than dropped.
type Timestamp struct {
	// Time is the parsed instant. Zero when parsing failed.
	Time time.Time
	// Raw is the original vendor string, kept as the fallback value.
	Raw string
}

// ParseTimestamp parses an ISO-8601 timestamp, treating a trailing Z as the
// UTC offset. Returns nil for an empty input. On parse failure the raw
// string is preserved and Parsed reports false.
func ParseTimestamp(s string) *Timestamp {
	if s == "" {
		return nil
	}
	// Accept both "Z" and explicit offsets; RFC 3339 covers each.
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Some vendor fields omit the offset entirely.
		t, err = time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(s, "Z"))
	}
	if err != nil {
		return &Timestamp{Raw: s}
	}
	return &Timestamp{Time: t, Raw: s}
}

// Parsed reports whether the timestamp carries a parsed instant.
func (t *Timestamp) Parsed() bool {
	return t != nil && !t.Time.IsZero()
}

// Value returns the serialisable form: an ISO-8601 string for parsed
// timestamps, the raw string for unparsed ones, nil for absent ones.
func (t *Timestamp) Value() any {
	if t == nil {
		return nil
	}
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.Time.Format(time.RFC3339)
}
