// Package pricing turns raw curtain measurements into priced document lines.
package pricing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Unit is the unit a length was typed in.
type Unit string

const (
	Centimeters Unit = "cm"
	Meters      Unit = "m"
)

// ParseUnit maps user input to a Unit; anything unknown is centimeters.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "mt", "mts", "meters", "metros":
		return Meters
	default:
		return Centimeters
	}
}

// ToCentimeters converts a typed length to centimeters.
// Empty, malformed, negative or non-finite input yields 0, never an error.
func ToCentimeters(raw string, unit Unit) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if unit == Meters {
		return v * 100
	}
	return v
}

// RoundCentimeters gives the stored integer width or height.
func RoundCentimeters(cm float64) int {
	return int(math.Round(cm))
}

// Length is a measurement that arrives either as a JSON number or a JSON string.
type Length string

func (l *Length) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.Wrap(err, "length")
		}
		*l = Length(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.Wrap(err, "length")
	}
	*l = Length(n.String())
	return nil
}

// Centimeters normalizes the length typed in the given unit.
func (l Length) Centimeters(unit Unit) float64 {
	return ToCentimeters(string(l), unit)
}
