package aggregation

import (
	"math"

	"github.com/shopspring/decimal"
)

// Accumulator folds coerced numeric values for sum, avg, min and max.
// It is created per request and never shared.
// Sum is kept as a decimal so long scans do not drift; min and max are exact float64
// comparisons of the inputs.
type Accumulator struct {
	sum        decimal.Decimal
	min        float64
	max        float64
	validCount int
}

// NewAccumulator returns an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		sum: decimal.Zero,
		min: math.Inf(1),
		max: math.Inf(-1),
	}
}

// Add folds one valid value.
func (a *Accumulator) Add(v float64) {
	a.validCount++
	a.sum = a.sum.Add(decimal.NewFromFloat(v))
	if v < a.min {
		a.min = v
	}
	if v > a.max {
		a.max = v
	}
}

// ValidCount is the number of values folded so far.
func (a *Accumulator) ValidCount() int {
	return a.validCount
}

// Result returns the final value for a numeric operator, or nil when no valid
// value was seen or the result overflows float64. Non-numeric operators always
// yield nil.
func (a *Accumulator) Result(op Operator) *float64 {
	if a.validCount == 0 {
		return nil
	}

	var v float64
	switch op {
	case OpSum:
		v = a.sum.InexactFloat64()
	case OpAvg:
		v = a.sum.Div(decimal.NewFromInt(int64(a.validCount))).InexactFloat64()
	case OpMin:
		v = a.min
	case OpMax:
		v = a.max
	default:
		return nil
	}
	// A sum past the float64 range has no JSON representation; report it as no value.
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
