package nutrition

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ToNonNegativeFloat converts loosely typed numeric input to a finite,
// non-negative float64. Anything that cannot be read as such a number (nil,
// blank or malformed strings, NaN, infinities, negatives) becomes 0.
func ToNonNegativeFloat(v any) float64 {
	var f float64
	switch value := v.(type) {
	case nil:
		return 0
	case float64:
		f = value
	case *float64:
		if value == nil {
			return 0
		}
		f = *value
	case float32:
		f = float64(value)
	case int:
		f = float64(value)
	case int64:
		f = float64(value)
	case uint:
		f = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// Round rounds value to the precision of unit using round-half-to-even on
// the exact binary value, so 0.15 (stored as 0.1499...) rounds to 0.1.
// Non-finite values round to 0.
func Round(value float64, unit Unit) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	rounded, _ := exactDecimal(value).RoundBank(Precision(unit)).Float64()
	return rounded
}

// exactDecimal expands value without the shortest-representation shortcut of
// decimal.NewFromFloat. 1100 fractional digits cover every float64.
func exactDecimal(value float64) decimal.Decimal {
	d, err := decimal.NewFromString(new(big.Float).SetFloat64(value).Text('f', 1100))
	if err != nil {
		return decimal.NewFromFloat(value)
	}
	return d
}
