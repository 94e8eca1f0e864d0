package types

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the wire format for business dates (day granularity).
const DateLayout = "2006-01-02"

// Date is a calendar date without time-of-day.
// Transaction dates compare at day granularity everywhere.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to midnight UTC.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	return NewDate(time.Now().UTC())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

// Before reports whether d is strictly before other (day granularity).
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other (day granularity).
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports day equality.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

// String formats as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

// MarshalJSON encodes as a "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD" and full RFC 3339 timestamps
// (older documents stored ISO timestamps); anything else is a zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		d.Time = time.Time{}
		return nil
	}
	s = strings.TrimSpace(s)

	if t, err := time.Parse(DateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = NewDate(t.UTC())
		return nil
	}
	d.Time = time.Time{}
	return nil
}
