package main

import (
	"fmt"

	"github.com/pivolan/campaign_analyzer/dataset"
	"github.com/pivolan/campaign_analyzer/report"
	"github.com/pivolan/campaign_analyzer/stats"
)

func buildDescription(ds *dataset.Dataset, previewRows int) (report.Description, error) {
	rows, cols := ds.Shape()
	d := report.Description{
		Rows:    rows,
		Cols:    cols,
		Columns: ds.DTypes(),
		Head:    ds.Head(previewRows),
	}

	var err error
	if d.Stats, err = stats.DescribeColumns(ds); err != nil {
		return d, fmt.Errorf("describe: %w", err)
	}
	if d.Missing, err = stats.MissingCounts(ds); err != nil {
		return d, fmt.Errorf("missing values: %w", err)
	}
	if d.Correlation, err = stats.Correlation(ds); err != nil {
		return d, fmt.Errorf("correlation: %w", err)
	}
	return d, nil
}

// describe prints the dataset overview. It must run before charts, which
// turns the date column into datetime64.
func (a *app) describe(ds *dataset.Dataset) error {
	d, err := buildDescription(ds, a.cfg.PreviewRows)
	if err != nil {
		return err
	}
	a.log.Debug().Int("rows", d.Rows).Int("cols", d.Cols).Msg("dataset described")
	return report.WriteDescription(a.out, d)
}
