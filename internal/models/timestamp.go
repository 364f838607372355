// ABOUTME: Timestamp type for workout dates in ISO-8601 form.
// ABOUTME: Round-trips the microsecond, offset-free layout written by the tracker and finer loaded values.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	layoutLocal     = "2006-01-02T15:04:05"
	layoutLocalFrac = "2006-01-02T15:04:05.000000"
	layoutLocalNano = "2006-01-02T15:04:05.000000000"
)

var parseLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// Timestamp is the moment a workout was logged.
type Timestamp struct {
	time.Time
	zoned bool
}

// NewTimestamp returns t truncated to microseconds, encoded without an offset.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Microsecond)}
}

// ParseTimestamp accepts the local layout as well as RFC 3339.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t, zoned: true}, nil
	}
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// String returns the persisted form. Loaded values finer than a microsecond
// keep all nine fraction digits.
func (ts Timestamp) String() string {
	if ts.zoned {
		return ts.Format(time.RFC3339Nano)
	}
	switch ns := ts.Nanosecond(); {
	case ns%int(time.Microsecond) != 0:
		return ts.Format(layoutLocalNano)
	case ns != 0:
		return ts.Format(layoutLocalFrac)
	}
	return ts.Format(layoutLocal)
}

// Equal compares the instant and the encoding.
func (ts Timestamp) Equal(o Timestamp) bool {
	return ts.Time.Equal(o.Time) && ts.zoned == o.zoned
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
