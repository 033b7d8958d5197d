package analysis

import (
	"math"
	"sort"
)

// Group is the set of row indices sharing one key.
type Group struct {
	Key  string
	Rows []int
}

// GroupBy splits rows by key in ascending key order. Rows with a missing key
// belong to no group.
func GroupBy(keys []string, missing []bool) []Group {
	groups := groupInOrder(keys, missing)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// GroupByAppearance is GroupBy keeping the order in which keys first appear.
func GroupByAppearance(keys []string, missing []bool) []Group {
	return groupInOrder(keys, missing)
}

func groupInOrder(keys []string, missing []bool) []Group {
	index := make(map[string]int)
	var groups []Group
	for row, key := range keys {
		if missing[row] {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Rows = append(groups[i].Rows, row)
	}
	return groups
}

// Sum adds values at rows, skipping NaN. No values sum to 0.
func Sum(values []float64, rows []int) float64 {
	total := 0.0
	for _, r := range rows {
		if !math.IsNaN(values[r]) {
			total += values[r]
		}
	}
	return total
}

// Mean averages values at rows, skipping NaN. No values give NaN.
func Mean(values []float64, rows []int) float64 {
	total, n := 0.0, 0
	for _, r := range rows {
		if !math.IsNaN(values[r]) {
			total += values[r]
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return total / float64(n)
}

// Pick gathers values at rows.
func Pick(values []float64, rows []int) []float64 {
	result := make([]float64, len(rows))
	for i, r := range rows {
		result[i] = values[r]
	}
	return result
}
