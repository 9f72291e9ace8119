// Package core implements the estimate calculation engine: pricing
// resolution, per-member payout allocation, project aggregation and the
// monthly breakdown. Everything here is a pure function of its input.
//
// Numeric input follows a soft-fail policy: malformed values coerce to zero
// (or one, for duration fields that must be at least a month) instead of
// raising errors, so a partially edited form never halts a recomputation.
package core

import (
	"strconv"
	"strings"
)

// CoerceNumber parses a numeric field, returning 0 when the value is not
// parseable. Both dot and comma decimal separators are accepted.
func CoerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// CoerceInt parses an integer field, returning 0 when the value is not
// parseable. A decimal value truncates toward zero.
func CoerceInt(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		return int(f)
	}
	return 0
}

// CoerceDuration parses a project duration, which must be at least one
// month: parse failures and values below 1 both coerce to 1.
func CoerceDuration(s string) int {
	v := CoerceInt(s)
	if v < 1 {
		return 1
	}
	return v
}
