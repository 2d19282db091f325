// Package rating enforces the player rating domain: eleven half-point
// levels from 0 to 5 inclusive.
package rating

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// Min is the lowest allowed rating
	Min = 0.0
	// Max is the highest allowed rating
	Max = 5.0
	// Step is the granularity of allowed ratings
	Step = 0.5
)

var (
	minDec = decimal.NewFromFloat(Min)
	maxDec = decimal.NewFromFloat(Max)
	two    = decimal.NewFromInt(2)
)

// IsValid reports whether value is a number in [0, 5] that is an exact
// multiple of 0.5.
//
// The multiple check runs on the shortest decimal representation of the
// value, so 1.5 or 4.5 pass while 1.25 or 2.4999999999999996 do not.
// Non-numeric values (strings, nil, bools) are rejected.
func IsValid(value any) bool {
	d, ok := toDecimal(value)
	if !ok {
		return false
	}
	if d.LessThan(minDec) || d.GreaterThan(maxDec) {
		return false
	}
	return d.Mul(two).IsInteger()
}

// Float returns value as a float64 if it is a valid rating
func Float(value any) (float64, bool) {
	if !IsValid(value) {
		return 0, false
	}
	d, _ := toDecimal(value)
	return d.InexactFloat64(), true
}

// Levels returns all valid ratings in ascending order
func Levels() []float64 {
	n := int((Max-Min)/Step) + 1
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = Min + float64(i)*Step
	}
	return levels
}

// Normalize snaps r to the nearest half point
func Normalize(r float64) float64 {
	return math.Round(r*2) / 2
}

// Average returns the arithmetic mean of ratings rounded to two decimal
// places, or 0 for an empty slice.
func Average(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromFloat(r))
	}
	return sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(2).InexactFloat64()
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case float64:
		return fromFloat(v)
	case float32:
		return fromFloat(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), true
	case int8:
		return decimal.NewFromInt(int64(v)), true
	case int16:
		return decimal.NewFromInt(int64(v)), true
	case int32:
		return decimal.NewFromInt(int64(v)), true
	case int64:
		return decimal.NewFromInt(v), true
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return decimal.NewFromInt(int64(v)), true
	case uint16:
		return decimal.NewFromInt(int64(v)), true
	case uint32:
		return decimal.NewFromInt(int64(v)), true
	case uint64:
		return fromUint(v)
	case json.Number:
		return fromNumber(v)
	default:
		return decimal.Decimal{}, false
	}
}

// fromNumber keeps the exact decimal text of n, but only after the float
// reading is in range. Exponents such as 1e-20000000 never reach decimal
// comparison, which rescales to a 10^|exp| big integer.
func fromNumber(n json.Number) (decimal.Decimal, bool) {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < Min || f > Max {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	if d.Sign() == 0 {
		return decimal.Zero, true
	}
	// Non-zero but below float range: never a half point
	if f == 0 {
		return decimal.Decimal{}, false
	}
	return d, true
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

func fromUint(u uint64) (decimal.Decimal, bool) {
	if u > math.MaxInt64 {
		// far outside the range anyway
		return maxDec.Add(decimal.NewFromInt(1)), true
	}
	return decimal.NewFromInt(int64(u)), true
}
