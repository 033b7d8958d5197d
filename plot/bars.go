package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

type BarSeries struct {
	Name   string
	Values []float64
	Color  drawing.Color
	// Colors overrides Color per category when set.
	Colors []drawing.Color
	// Secondary plots the series against the right-hand axis.
	Secondary bool
	// Line draws the series as a line with markers instead of bars.
	Line bool
}

func (s BarSeries) colorAt(i int) drawing.Color {
	if i < len(s.Colors) {
		return s.Colors[i]
	}
	return s.Color
}

// RefLine is a dashed threshold drawn across the value axis.
type RefLine struct {
	Value float64
	Label string
	Color drawing.Color
	Solid bool
}

// BarPanel is a grouped bar chart. Vertical panels may carry a secondary
// axis; horizontal ones list categories top to bottom and print each value.
type BarPanel struct {
	Title      string
	XLabel     string
	YLabel     string
	Y2Label    string
	Categories []string
	Series     []BarSeries
	Horizontal bool
	RefLine    *RefLine
	// ValueFormat prints bar values next to horizontal bars, e.g. "%.1f%%".
	ValueFormat string
	Legend      bool
}

func (p BarPanel) Render(width, height int) ([]byte, error) {
	if len(p.Categories) == 0 || len(p.Series) == 0 {
		return placeholder(p.Title, width, height)
	}
	c, err := newCanvas(width, height, p.Title)
	if err != nil {
		return nil, err
	}
	if p.Horizontal {
		p.drawHorizontal(c)
	} else {
		p.drawVertical(c)
	}
	return c.png()
}

func (p BarPanel) valueRange(secondary bool) (lo, hi float64) {
	var values [][]float64
	for _, s := range p.Series {
		if s.Secondary == secondary {
			values = append(values, s.Values)
		}
	}
	if p.RefLine != nil && !secondary {
		values = append(values, []float64{p.RefLine.Value})
	}
	lo, hi, ok := finiteRange(values...)
	if !ok {
		return 0, 1
	}
	return math.Min(lo, 0), math.Max(hi, 0)
}

func (p BarPanel) hasSecondary() bool {
	for _, s := range p.Series {
		if s.Secondary {
			return true
		}
	}
	return false
}

func (p BarPanel) barCount() int {
	n := 0
	for _, s := range p.Series {
		if !s.Line {
			n++
		}
	}
	return n
}

func (p BarPanel) drawVertical(c *canvas) {
	secondary := p.hasSecondary()
	if secondary {
		c.plot.Right -= 56
	}

	lo, hi := p.valueRange(false)
	primary := newScale(lo, hi, c.plot.Bottom, c.plot.Top)
	axisColor := textColor
	if secondary && len(p.Series) > 0 {
		axisColor = p.Series[0].Color
	}
	c.yAxis(primary, false, p.YLabel, axisColor, true)

	alt := primary
	if secondary {
		lo, hi = p.valueRange(true)
		alt = newScale(lo, hi, c.plot.Bottom, c.plot.Top)
		altColor := textColor
		for _, s := range p.Series {
			if s.Secondary {
				altColor = s.Color
			}
		}
		c.yAxis(alt, true, p.Y2Label, altColor, false)
	}

	n := len(p.Categories)
	slot := float64(c.plot.Right-c.plot.Left) / float64(n)
	centers := make([]int, n)
	for i := range centers {
		centers[i] = c.plot.Left + int(math.Round(slot*(float64(i)+0.5)))
	}

	bars := p.barCount()
	barWidth := slot * 0.75
	if bars > 0 {
		barWidth /= float64(bars)
	}

	bar := 0
	for _, s := range p.Series {
		sc := primary
		if s.Secondary {
			sc = alt
		}
		if s.Line {
			xs := make([]int, n)
			ys := make([]int, n)
			valid := make([]bool, n)
			for i := 0; i < n && i < len(s.Values); i++ {
				xs[i] = centers[i]
				if finite(s.Values[i]) {
					ys[i] = sc.at(s.Values[i])
					valid[i] = true
				}
			}
			c.polyline(xs, ys, valid, s.Color, 2)
			for i := range xs {
				if valid[i] {
					c.marker(xs[i], ys[i], 4, s.Color)
				}
			}
			continue
		}

		offset := (float64(bar) - float64(bars-1)/2) * barWidth
		zero := sc.at(0)
		for i := 0; i < n && i < len(s.Values); i++ {
			if !finite(s.Values[i]) {
				continue
			}
			x := float64(centers[i]) + offset
			top := sc.at(s.Values[i])
			c.rect(chart.Box{
				Left:   int(math.Round(x - barWidth/2)),
				Right:  int(math.Round(x+barWidth/2)) - 1,
				Top:    min(top, zero),
				Bottom: max(top, zero),
			}, s.colorAt(i), drawing.Color{})
		}
		bar++
	}

	if p.RefLine != nil {
		y := primary.at(p.RefLine.Value)
		var dash []float64
		if !p.RefLine.Solid {
			dash = []float64{6, 4}
		}
		c.line(c.plot.Left, y, c.plot.Right, y, p.RefLine.Color, 1.5, dash)
	}

	c.categories(p.Categories, centers, int(slot))
	c.xName(p.XLabel)
	if p.Legend {
		c.legend(p.legendEntries())
	}
}

func (p BarPanel) legendEntries() []legendEntry {
	var entries []legendEntry
	for _, s := range p.Series {
		if s.Name != "" {
			entries = append(entries, legendEntry{Label: s.Name, Color: s.Color, Line: s.Line})
		}
	}
	if p.RefLine != nil && p.RefLine.Label != "" {
		entries = append(entries, legendEntry{Label: p.RefLine.Label, Color: p.RefLine.Color, Line: true})
	}
	return entries
}

func (p BarPanel) drawHorizontal(c *canvas) {
	c.plot.Left = 20 + c.widest(p.Categories, tickFontSize)
	c.plot.Right -= 40

	lo, hi := p.valueRange(false)
	sc := newScale(lo, hi, c.plot.Left, c.plot.Right)
	c.xAxis(sc, p.XLabel, true)
	c.line(c.plot.Left, c.plot.Top, c.plot.Left, c.plot.Bottom, textColor, 1, nil)

	n := len(p.Categories)
	slot := float64(c.plot.Bottom-c.plot.Top) / float64(n)
	barHeight := slot * 0.7
	zero := sc.at(0)
	s := p.Series[0]

	for i, label := range p.Categories {
		cy := c.plot.Top + int(math.Round(slot*(float64(i)+0.5)))
		c.text(label, c.plot.Left-6, cy+4, tickFontSize, textColor, alignRight)
		if i >= len(s.Values) || !finite(s.Values[i]) {
			continue
		}

		v := s.Values[i]
		end := sc.at(v)
		c.rect(chart.Box{
			Left:   min(zero, end),
			Right:  max(zero, end),
			Top:    cy - int(barHeight/2),
			Bottom: cy + int(barHeight/2),
		}, s.colorAt(i), drawing.Color{})

		if p.ValueFormat != "" {
			label := fmt.Sprintf(p.ValueFormat, v)
			if v >= 0 {
				c.text(label, end+4, cy+4, tickFontSize, textColor, alignLeft)
			} else {
				c.text(label, end-4, cy+4, tickFontSize, textColor, alignRight)
			}
		}
	}

	if p.RefLine != nil {
		x := sc.at(p.RefLine.Value)
		var dash []float64
		if !p.RefLine.Solid {
			dash = []float64{6, 4}
		}
		c.line(x, c.plot.Top, x, c.plot.Bottom, p.RefLine.Color, 1, dash)
	}
}
