package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

type NumberStats struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	IQR    float64

	// Whiskers are the most extreme values inside 1.5 IQR of the quartiles.
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// Finite drops NaN and infinite values, keeping order.
func Finite(values []float64) []float64 {
	result := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			result = append(result, v)
		}
	}
	return result
}

// Quantile interpolates linearly between the closest ranks of sorted.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

func findOutliers(numbers []float64, lowerBound, upperBound float64) []float64 {
	outliers := make([]float64, 0)
	for _, num := range numbers {
		if num < lowerBound || num > upperBound {
			outliers = append(outliers, num)
		}
	}
	return outliers
}

// Describe summarises values, skipping missing ones. Std is the sample
// standard deviation and is NaN below two values.
func Describe(values []float64) NumberStats {
	numbers := Finite(values)
	if len(numbers) == 0 {
		nan := math.NaN()
		return NumberStats{
			Mean: nan, Std: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan, IQR: nan,
			LowerWhisker: nan, UpperWhisker: nan,
		}
	}

	sorted := make([]float64, len(numbers))
	copy(sorted, numbers)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	q1 := Quantile(sorted, 0.25)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	ns := NumberStats{
		Count:        len(sorted),
		Mean:         mean,
		Std:          std,
		Min:          sorted[0],
		Q1:           q1,
		Median:       Quantile(sorted, 0.5),
		Q3:           q3,
		Max:          sorted[len(sorted)-1],
		IQR:          iqr,
		LowerWhisker: q1,
		UpperWhisker: q3,
		Outliers:     findOutliers(numbers, lowerBound, upperBound),
	}
	for _, v := range sorted {
		if v >= lowerBound {
			ns.LowerWhisker = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= upperBound {
			ns.UpperWhisker = sorted[i]
			break
		}
	}
	return ns
}
