package core

// convert.go coerces archive cells into typed values.
//
// Conversion never fails. Archive exports leave many cells empty and some
// contain placeholders, so every converter returns a zero value together with
// an ok flag instead of an error:
//   - floats: empty, unparseable, NaN and ±Inf become 0
//   - years: anything that is not a plain integer becomes 0
//   - text: whitespace and a pair of surrounding double quotes are removed

import (
	"math"
	"strconv"
	"strings"
)

// CleanCell removes common CSV artifacts from a cell value.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// ParseFloatSoft parses a numeric cell. ok is false when the value was
// missing or malformed, in which case f is 0.
func ParseFloatSoft(s string) (f float64, ok bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseMagnitude parses a physical magnitude that cannot be negative.
// Negative values are treated as missing.
func ParseMagnitude(s string) (float64, bool) {
	v, ok := ParseFloatSoft(s)
	if !ok || v < 0 {
		return 0, false
	}
	return v, true
}

// ParseYear parses a discovery year cell. ok is false for anything other
// than a base-10 integer.
func ParseYear(s string) (year int, ok bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}
