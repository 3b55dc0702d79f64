package errors

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Bound describes one end of an allowed numeric range.
type Bound struct {
	Value     float64
	Inclusive bool
}

// Closed returns an inclusive bound.
func Closed(v float64) Bound { return Bound{Value: v, Inclusive: true} }

// Open returns an exclusive bound.
func Open(v float64) Bound { return Bound{Value: v} }

// ValidateRange checks that v lies between lo and hi and is not NaN.
// The returned error carries code and names the offending field.
//
// Examples:
//
//	ValidateRange(ErrCodeConfiguration, "edge_ratio", r, Open(0), Open(0.5))     // (0, 0.5)
//	ValidateRange(ErrCodeConfiguration, "shadow_level", l, Closed(0), Closed(1)) // [0, 1]
func ValidateRange(code Code, field string, v float64, lo, hi Bound) error {
	if math.IsNaN(v) {
		return New(code, "%s must be a number", field)
	}
	okLo := v > lo.Value || (lo.Inclusive && v == lo.Value)
	okHi := v < hi.Value || (hi.Inclusive && v == hi.Value)
	if okLo && okHi {
		return nil
	}
	return New(code, "%s must be in %s, got %v", field, rangeString(lo, hi), v)
}

// ValidatePositive checks that v is a finite number greater than zero.
func ValidatePositive(code Code, field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return New(code, "%s must be positive, got %v", field, v)
	}
	return nil
}

func rangeString(lo, hi Bound) string {
	var b strings.Builder
	if lo.Inclusive {
		b.WriteByte('[')
	} else {
		b.WriteByte('(')
	}
	b.WriteString(trimFloat(lo.Value))
	b.WriteString(", ")
	b.WriteString(trimFloat(hi.Value))
	if hi.Inclusive {
		b.WriteByte(']')
	} else {
		b.WriteByte(')')
	}
	return b.String()
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ValidatePath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
