package plot

import (
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const maxDateTicks = 8

// TimeSeriesPanel draws a filled line over dated values.
type TimeSeriesPanel struct {
	Title  string
	XLabel string
	YLabel string
	Dates  []time.Time
	Values []float64
	Color  drawing.Color
}

func (p TimeSeriesPanel) Render(width, height int) ([]byte, error) {
	var dates []time.Time
	var values []float64
	for i := 0; i < len(p.Dates) && i < len(p.Values); i++ {
		if finite(p.Values[i]) {
			dates = append(dates, p.Dates[i])
			values = append(values, p.Values[i])
		}
	}
	if len(dates) == 0 {
		return placeholder(p.Title, width, height)
	}

	color := p.Color
	if color.IsZero() {
		color = Green
	}

	first, last := dates[0], dates[len(dates)-1]
	if !last.After(first) {
		first = first.AddDate(0, 0, -3)
		last = last.AddDate(0, 0, 3)
	}
	lo, hi, _ := finiteRange(values)
	yScale := newScale(min(lo, 0), hi, 0, 1)

	c := baseChart(p.Title, width, height)
	c.XAxis = chart.XAxis{
		Name:      p.XLabel,
		NameStyle: axisName(),
		Style:     axisText(),
		Range:     &chart.ContinuousRange{Min: chart.TimeToFloat64(first), Max: chart.TimeToFloat64(last)},
		Ticks:     dateTicks(dates),
	}
	c.YAxis = yAxis(p.YLabel, yScale)
	c.Series = []chart.Series{chart.TimeSeries{
		Name:    p.YLabel,
		XValues: dates,
		YValues: values,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
			FillColor:   color.WithAlpha(50),
			DotColor:    color,
			DotWidth:    3,
		},
	}}
	return renderChart(c)
}

// dateTicks labels at most maxDateTicks of the given dates, always in UTC.
func dateTicks(dates []time.Time) []chart.Tick {
	every := (len(dates) + maxDateTicks - 1) / maxDateTicks
	if every < 1 {
		every = 1
	}
	var ticks []chart.Tick
	for i := 0; i < len(dates); i += every {
		d := dates[i].UTC()
		ticks = append(ticks, chart.Tick{Value: chart.TimeToFloat64(d), Label: d.Format("2006-01-02")})
	}
	return ticks
}
