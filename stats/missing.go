package stats

import (
	"github.com/pivolan/campaign_analyzer/dataset"
	"github.com/pivolan/campaign_analyzer/domain/models"
)

// ColumnStats is the describe row of one numeric column.
type ColumnStats struct {
	Name string
	NumberStats
}

// DescribeColumns summarises every numeric column of ds in file order.
func DescribeColumns(ds *dataset.Dataset) ([]ColumnStats, error) {
	var result []ColumnStats
	for _, name := range ds.NumericColumns() {
		values, err := ds.Float(name)
		if err != nil {
			return nil, err
		}
		result = append(result, ColumnStats{Name: name, NumberStats: Describe(values)})
	}
	return result, nil
}

// MissingCounts counts missing cells per column in file order.
func MissingCounts(ds *dataset.Dataset) ([]models.ColumnCount, error) {
	names := ds.Names()
	result := make([]models.ColumnCount, 0, len(names))
	for _, name := range names {
		missing, err := ds.Missing(name)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, m := range missing {
			if m {
				count++
			}
		}
		result = append(result, models.ColumnCount{Name: name, Count: count})
	}
	return result, nil
}
