package analysis

import (
	"math"

	"github.com/shopspring/decimal"
)

type Rating int

const (
	Poor Rating = iota
	Fair
	Good
)

func (r Rating) String() string {
	switch r {
	case Good:
		return "good"
	case Fair:
		return "fair"
	default:
		return "poor"
	}
}

// ROASThreshold is the minimum acceptable return on ad spend.
const ROASThreshold = 2.0

func RateROAS(v float64) Rating {
	switch {
	case v > 5:
		return Good
	case v > ROASThreshold:
		return Fair
	default:
		return Poor
	}
}

func RateScore(v float64) Rating {
	switch {
	case v > 60:
		return Good
	case v > 40:
		return Fair
	default:
		return Poor
	}
}

func RateROI(v float64) Rating {
	if v > 0 {
		return Good
	}
	return Poor
}

// ROI is the percentage return of revenue over cost; 0 when there is no cost.
func ROI(revenue, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return roiRatio(revenue, cost)
}

// roiRatio is ROI without the cost guard: zero cost gives ±Inf, or NaN when
// revenue is zero too.
func roiRatio(revenue, cost float64) float64 {
	return (revenue - cost) / cost * 100
}

// Normalize min-max scales values to 0-100. NaN stays NaN; when every
// finite value is equal the result is 0.
func Normalize(values []float64) []float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	result := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			result[i] = math.NaN()
		case hi == lo:
			result[i] = 0
		default:
			result[i] = (v - lo) / (hi - lo) * 100
		}
	}
	return result
}

// MeanFinite averages the non-NaN values, NaN when there are none.
func MeanFinite(values ...float64) float64 {
	total, n := 0.0, 0
	for _, v := range values {
		if !math.IsNaN(v) {
			total += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

// Round2 rounds half to even at two decimals, on the binary value scaled by
// 100: 2.675 is stored just below and gives 2.67. Non-finite values pass
// through.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v * 100).RoundBank(0).Div(hundred).Float64()
	return f
}

var hundred = decimal.NewFromInt(100)
