// ABOUTME: Weight value type that keeps the JSON integer/real distinction.
// ABOUTME: Zero means no weight recorded and renders as bodyweight.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Weight is the load lifted in a set, in the user's own unit.
// The zero value is the integer 0, which is what an empty weight entry stores.
type Weight struct {
	value float64
	real  bool
}

// Bodyweight is the weight stored when none is entered.
var Bodyweight = Weight{}

// RealWeight returns a weight that is encoded as a JSON real.
func RealWeight(v float64) Weight {
	return Weight{value: v, real: true}
}

// IntWeight returns a weight that is encoded as a JSON integer.
func IntWeight(v int64) Weight {
	return Weight{value: float64(v)}
}

// ParseWeight parses user input. Empty input is Bodyweight.
func ParseWeight(s string) (Weight, error) {
	if s == "" {
		return Bodyweight, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Weight{}, fmt.Errorf("parse weight %q: %w", s, err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Weight{}, fmt.Errorf("weight must be a non-negative number: %q", s)
	}
	return RealWeight(v), nil
}

// Float returns the numeric value.
func (w Weight) Float() float64 {
	return w.value
}

// IsReal reports whether the weight is encoded with a fractional part.
func (w Weight) IsReal() bool {
	return w.real
}

// IsZero reports whether no weight was recorded.
func (w Weight) IsZero() bool {
	return w.value == 0
}

// Equal compares value and encoding.
func (w Weight) Equal(o Weight) bool {
	return w.value == o.value && w.real == o.real
}

// String formats the weight the way it is written to disk: 100 or 100.0.
func (w Weight) String() string {
	if !w.real {
		return strconv.FormatFloat(w.value, 'f', -1, 64)
	}
	s := strconv.FormatFloat(w.value, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// MarshalJSON implements json.Marshaler.
func (w Weight) MarshalJSON() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Weight) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("weight: %w", err)
	}
	w.value = v
	w.real = bytes.ContainsAny(data, ".eE")
	return nil
}
