package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ColorMap maps v within lo..hi to a colour.
type ColorMap func(v, lo, hi float64) drawing.Color

// Viridis guards chart.Viridis against empty and non-finite ranges.
func Viridis(v, lo, hi float64) drawing.Color {
	if !finite(v) || !(hi > lo) {
		return nanGray
	}
	return chart.Viridis(math.Max(lo, math.Min(hi, v)), lo, hi)
}

var (
	rdylgnLow  = drawing.ColorFromHex("d73027")
	rdylgnMid  = drawing.ColorFromHex("ffffbf")
	rdylgnHigh = drawing.ColorFromHex("1a9850")
)

// RdYlGn runs from red through yellow to green.
func RdYlGn(v, lo, hi float64) drawing.Color {
	if !finite(v) || !(hi > lo) {
		return nanGray
	}
	t := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	if t < 0.5 {
		return lerp(rdylgnLow, rdylgnMid, t*2)
	}
	return lerp(rdylgnMid, rdylgnHigh, (t-0.5)*2)
}

// ScatterPanel plots Y against X with each point coloured by C.
type ScatterPanel struct {
	Title      string
	XLabel     string
	YLabel     string
	X, Y, C    []float64
	ColorMap   ColorMap
	ColorLabel string
}

func (p ScatterPanel) Render(width, height int) ([]byte, error) {
	var xs, ys, cs []float64
	for i := 0; i < len(p.X) && i < len(p.Y); i++ {
		if !finite(p.X[i]) || !finite(p.Y[i]) {
			continue
		}
		c := math.NaN()
		if i < len(p.C) {
			c = p.C[i]
		}
		xs = append(xs, p.X[i])
		ys = append(ys, p.Y[i])
		cs = append(cs, c)
	}
	if len(xs) == 0 {
		return placeholder(p.Title, width, height)
	}

	colors := p.ColorMap
	if colors == nil {
		colors = Viridis
	}
	xlo, xhi, _ := finiteRange(xs)
	ylo, yhi, _ := finiteRange(ys)
	clo, chi, ok := finiteRange(cs)
	if !ok {
		clo, chi = 0, 1
	}
	if chi == clo {
		chi = clo + 1
	}

	xScale, yScale := newScale(xlo, xhi, 0, 1), newScale(ylo, yhi, 0, 1)
	c := baseChart(p.Title, width, height)
	c.Background.Padding.Right = 96
	c.XAxis = chart.XAxis{
		Name:           p.XLabel,
		NameStyle:      axisName(),
		Style:          axisText(),
		Range:          &chart.ContinuousRange{Min: xScale.min, Max: xScale.max},
		Ticks:          chartTicks(xScale),
		GridMajorStyle: gridStyle,
		GridMinorStyle: gridStyle,
	}
	c.YAxis = yAxis(p.YLabel, yScale)
	c.Series = []chart.Series{chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    4,
			DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
				return colors(cs[index], clo, chi).WithAlpha(200)
			},
		},
	}}
	c.Elements = []chart.Renderable{colorBar(colors, clo, chi, p.ColorLabel)}
	return renderChart(c)
}

// colorBar draws a vertical legend for a colour map right of the canvas.
func colorBar(colors ColorMap, lo, hi float64, name string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		const barWidth = 12
		left := box.Right + 14
		span := box.Height()
		if span <= 0 {
			return
		}
		for y := box.Top; y < box.Bottom; y++ {
			v := hi - (hi-lo)*float64(y-box.Top)/float64(span)
			chart.Draw.Box(r, chart.Box{Left: left, Right: left + barWidth, Top: y, Bottom: y + 1},
				chart.Style{FillColor: colors(v, lo, hi)})
		}

		text := chart.Style{Font: defaults.Font, FontSize: tickFontSize, FontColor: textColor}
		sc := newScale(lo, hi, box.Bottom, box.Top)
		for _, v := range sc.ticks() {
			if v < lo || v > hi {
				continue
			}
			chart.Draw.Text(r, sc.label(v), left+barWidth+4, sc.at(v)+4, text)
		}

		if name != "" {
			upright := chart.Style{Font: defaults.Font, FontSize: labelFontSize, FontColor: textColor}
			size := chart.Draw.MeasureText(r, name, upright)
			vertical := upright
			vertical.TextRotationDegrees = -90
			chart.Draw.Text(r, name, left+barWidth+52, (box.Top+box.Bottom)/2+size.Width()/2, vertical)
		}
	}
}
