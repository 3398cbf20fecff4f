package sigv4

import (
	"time"
)

// Time is a signing timestamp with its two wire forms precomputed.
// The zero Time is invalid; build one with NewTime.
type Time struct {
	t     time.Time
	amz   string
	short string
}

// NewTime converts t to UTC and caches the timestamp and scope-date
// formats.
func NewTime(t time.Time) Time {
	utc := t.UTC()
	return Time{
		t:     utc,
		amz:   utc.Format(timeFormat),
		short: utc.Format(shortTimeFormat),
	}
}

// Format returns the full timestamp form, e.g. 20240101T000000Z.
func (t Time) Format() string {
	return t.amz
}

// ShortFormat returns the scope date form, e.g. 20240101.
func (t Time) ShortFormat() string {
	return t.short
}

// IsZero reports whether t was never initialized.
func (t Time) IsZero() bool {
	return t.t.IsZero()
}
