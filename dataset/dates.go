package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/pivolan/campaign_analyzer/domain/models"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"2006/01/02",
}

// ParseDate tries each supported layout in turn. Results are in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, value)
}

// FormatDate renders t as a date, adding the clock only when it is not midnight.
func FormatDate(t time.Time, missing bool) string {
	if missing {
		return "NaT"
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// ParseDates converts col to datetime64. Missing cells stay missing; any
// other unparseable cell fails the whole column.
func (d *Dataset) ParseDates(col string) error {
	if _, ok := d.dates[col]; ok {
		return nil
	}
	values, missing, err := d.Strings(col)
	if err != nil {
		return err
	}

	dates := make([]time.Time, len(values))
	for i, v := range values {
		if missing[i] {
			continue
		}
		t, err := ParseDate(v)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", col, i+1, err)
		}
		dates[i] = t
	}

	d.dates[col] = dates
	d.noDates[col] = missing
	d.dtypes[col] = models.DTypeDatetime
	return nil
}

// Dates returns a column previously converted by ParseDates.
func (d *Dataset) Dates(col string) ([]time.Time, []bool, error) {
	dates, ok := d.dates[col]
	if !ok {
		if err := d.Require(col); err != nil {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%s: not parsed as dates", col)
	}
	return append([]time.Time(nil), dates...), append([]bool(nil), d.noDates[col]...), nil
}
