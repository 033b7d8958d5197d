package plot

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type PieSlice struct {
	Label string
	Value float64
}

// PiePanel labels every slice with its share of the total.
type PiePanel struct {
	Title  string
	Slices []PieSlice
}

func (p PiePanel) Render(width, height int) ([]byte, error) {
	total := 0.0
	for _, s := range p.Slices {
		if finite(s.Value) && s.Value > 0 {
			total += s.Value
		}
	}
	if total <= 0 {
		return placeholder(p.Title, width, height)
	}

	var values []chart.Value
	for _, s := range p.Slices {
		if !finite(s.Value) || s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Label, s.Value/total*100),
			Value: s.Value,
			Style: chart.Style{
				FillColor:   paletteColor(len(values)),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 2,
				FontSize:    tickFontSize,
				FontColor:   textColor,
			},
		})
	}

	pie := chart.PieChart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: drawing.ColorWhite,
			Padding:   chart.Box{Top: 52, Left: 24, Right: 24, Bottom: 16},
		},
		Canvas: chart.Style{FillColor: drawing.ColorWhite, StrokeColor: drawing.ColorWhite},
		Values: values,
		Elements: []chart.Renderable{func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
			if p.Title == "" {
				return
			}
			style := chart.Style{Font: defaults.Font, FontSize: titleFontSize, FontColor: textColor}
			size := chart.Draw.MeasureText(r, p.Title, style)
			chart.Draw.Text(r, p.Title, (width-size.Width())/2, 26, style)
		}},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := pie.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
