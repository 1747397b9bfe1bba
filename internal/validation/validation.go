// Package validation implements the integer/range checks required for
// every externally sourced chip amount.
package validation

import (
	"math"

	"github.com/lox/riversolver/internal/apperr"
)

// ChipAmount validates that v is a finite, non-negative integer, suitable
// for stacks, blinds, ante, pot, and action-amount fields.
func ChipAmount(field string, v float64) (int, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.Newf(apperr.InvalidChipAmount, field, "must be finite, got %v", v)
	}
	if v != math.Trunc(v) {
		return 0, apperr.Newf(apperr.InvalidChipAmount, field, "must be an integer, got %v", v)
	}
	if v < 0 {
		return 0, apperr.Newf(apperr.InvalidChipAmount, field, "must be non-negative, got %v", v)
	}
	return int(v), nil
}

// IntRange validates that v lies in [lo, hi] inclusive.
func IntRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return apperr.Newf(apperr.InvalidConfig, field, "must be in [%d, %d], got %d", lo, hi, v)
	}
	return nil
}

// AtLeast validates that v >= lo.
func AtLeast(field string, v, lo int) error {
	if v < lo {
		return apperr.Newf(apperr.InvalidConfig, field, "must be >= %d, got %d", lo, v)
	}
	return nil
}

// Sanitize rounds n to the nearest integer and clamps it to >= 0. Non-finite
// or NaN inputs return def, as specified.
func Sanitize(n float64, def int) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return def
	}
	rounded := int(math.Round(n))
	if rounded < 0 {
		return 0
	}
	return rounded
}
