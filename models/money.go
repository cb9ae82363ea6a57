package models

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with exactly two fractional digits. The exact
// binary value of f is rounded half to even, so 15.105 (stored as
// 15.10500000000000042...) renders as 15.11.
func FormatMoney(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "∞"
	case math.IsInf(f, -1):
		return "-∞"
	}
	return new(big.Float).SetFloat64(f).Text('f', 2)
}

// Cents returns an amount as the two-digit decimal printed in the transcript.
// Non-finite amounts map to zero.
func Cents(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.RequireFromString(FormatMoney(f))
}

// TruncInt32 converts f to an int32 the way a saturating cast does:
// fractions are truncated toward zero and out of range values clamp.
func TruncInt32(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}
