package plot

import (
	"bytes"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var gridStyle = chart.Style{StrokeColor: gridColor, StrokeWidth: 1, StrokeDashArray: []float64{4, 3}}

// chartTicks pins go-chart's axis to the same steps the hand-drawn panels use.
func chartTicks(s scale) []chart.Tick {
	var ticks []chart.Tick
	for _, v := range s.ticks() {
		ticks = append(ticks, chart.Tick{Value: v, Label: s.label(v)})
	}
	return ticks
}

func axisText() chart.Style {
	return chart.Style{FontSize: tickFontSize, FontColor: textColor, StrokeColor: textColor}
}

func axisName() chart.Style {
	return chart.Style{FontSize: labelFontSize, FontColor: textColor}
}

func yAxis(name string, s scale) chart.YAxis {
	return chart.YAxis{
		Name:           name,
		NameStyle:      axisName(),
		Style:          axisText(),
		Range:          &chart.ContinuousRange{Min: s.min, Max: s.max},
		Ticks:          chartTicks(s),
		GridMajorStyle: gridStyle,
		GridMinorStyle: gridStyle,
	}
}

func baseChart(title string, width, height int) chart.Chart {
	return chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  titleFontSize,
			FontColor: textColor,
			Padding:   chart.Box{Top: 14},
		},
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   chart.Box{Top: 52, Left: 16, Right: 24, Bottom: 12},
		},
		YAxisSecondary: chart.YAxis{Style: chart.Hidden()},
	}
}

func renderChart(c chart.Chart) ([]byte, error) {
	buffer := bytes.NewBuffer([]byte{})
	if err := c.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
