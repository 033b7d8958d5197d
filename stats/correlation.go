package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/pivolan/campaign_analyzer/dataset"
)

// Matrix is a square, symmetric correlation matrix.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

func (m Matrix) At(row, col string) float64 {
	i, j := m.index(row), m.index(col)
	if i < 0 || j < 0 {
		return math.NaN()
	}
	return m.Values[i][j]
}

func (m Matrix) index(name string) int {
	for i, c := range m.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Pearson correlates x and y over the rows where both are present. Fewer
// than two pairs or a constant side give NaN.
func Pearson(x, y []float64) float64 {
	var xs, ys []float64
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) || math.IsInf(x[i], 0) || math.IsInf(y[i], 0) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// Correlate builds the pairwise-complete correlation matrix of columns.
func Correlate(names []string, columns [][]float64) Matrix {
	m := Matrix{Columns: names, Values: make([][]float64, len(names))}
	for i := range names {
		m.Values[i] = make([]float64, len(names))
	}
	for i := range names {
		for j := i; j < len(names); j++ {
			r := Pearson(columns[i], columns[j])
			if i == j && !math.IsNaN(r) {
				r = 1
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

// Correlation correlates every numeric column of ds, bools included.
func Correlation(ds *dataset.Dataset) (Matrix, error) {
	return correlateColumns(ds, ds.NumericColumns())
}

// NumberCorrelation correlates the int and float columns of ds only.
func NumberCorrelation(ds *dataset.Dataset) (Matrix, error) {
	return correlateColumns(ds, ds.NumberColumns())
}

func correlateColumns(ds *dataset.Dataset, names []string) (Matrix, error) {
	columns := make([][]float64, len(names))
	for i, name := range names {
		values, err := ds.Float(name)
		if err != nil {
			return Matrix{}, err
		}
		columns[i] = values
	}
	return Correlate(names, columns), nil
}
