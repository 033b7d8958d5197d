package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	coolBlue  = drawing.Color{R: 59, G: 76, B: 192, A: 255}
	coolWhite = drawing.Color{R: 221, G: 221, B: 221, A: 255}
	warmRed   = drawing.Color{R: 180, G: 4, B: 38, A: 255}
	nanGray   = drawing.Color{R: 235, G: 235, B: 235, A: 255}
)

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// CoolWarm is a diverging blue-white-red map centred between lo and hi.
func CoolWarm(v, lo, hi float64) drawing.Color {
	if !finite(v) || hi <= lo {
		return nanGray
	}
	t := math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
	if t < 0.5 {
		return lerp(coolBlue, coolWhite, t*2)
	}
	return lerp(coolWhite, warmRed, (t-0.5)*2)
}

// HeatmapPanel draws an annotated square matrix such as a correlation matrix.
type HeatmapPanel struct {
	Title    string
	Labels   []string
	Values   [][]float64
	Min, Max float64
	Legend   string
}

func (p HeatmapPanel) Render(width, height int) ([]byte, error) {
	n := len(p.Labels)
	if n == 0 {
		return placeholder(p.Title, width, height)
	}
	c, err := newCanvas(width, height, p.Title)
	if err != nil {
		return nil, err
	}

	labelWidth := c.widest(p.Labels, tickFontSize)
	c.plot.Left = labelWidth + 12
	c.plot.Bottom = height - labelWidth - 12
	c.plot.Right = width - 80

	cell := min(c.plot.Right-c.plot.Left, c.plot.Bottom-c.plot.Top) / n
	if cell < 1 {
		cell = 1
	}
	annotate := cell >= 22
	fontSize := math.Max(6, math.Min(tickFontSize, float64(cell)/3.2))

	for i := 0; i < n; i++ {
		y := c.plot.Top + i*cell
		c.text(p.Labels[i], c.plot.Left-6, y+cell/2+4, tickFontSize, textColor, alignRight)

		for j := 0; j < n; j++ {
			x := c.plot.Left + j*cell
			v := math.NaN()
			if i < len(p.Values) && j < len(p.Values[i]) {
				v = p.Values[i][j]
			}
			fill := CoolWarm(v, p.Min, p.Max)
			c.rect(chart.Box{Left: x, Top: y, Right: x + cell, Bottom: y + cell}, fill, drawing.ColorWhite)
			if annotate && finite(v) {
				ink := textColor
				if math.Abs(v) > 0.6*math.Max(math.Abs(p.Min), math.Abs(p.Max)) {
					ink = drawing.ColorWhite
				}
				c.text(fmt.Sprintf("%.2f", v), x+cell/2, y+cell/2+int(fontSize/3), fontSize, ink, alignCenter)
			}
		}
	}

	gridBottom := c.plot.Top + n*cell
	for j, label := range p.Labels {
		x := c.plot.Left + j*cell + cell/2
		box := c.measure(label, tickFontSize)
		c.vtext(label, x, gridBottom+6+box.Width()/2, tickFontSize, textColor)
	}

	p.colorBar(c, c.plot.Left+n*cell+18, c.plot.Top, gridBottom)
	return c.png()
}

func (p HeatmapPanel) colorBar(c *canvas, x, top, bottom int) {
	const barWidth = 14
	span := bottom - top
	if span <= 0 {
		return
	}
	for y := top; y < bottom; y++ {
		v := p.Max - (p.Max-p.Min)*float64(y-top)/float64(span)
		c.rect(chart.Box{Left: x, Right: x + barWidth, Top: y, Bottom: y + 1}, CoolWarm(v, p.Min, p.Max), drawing.Color{})
	}
	sc := newScale(p.Min, p.Max, bottom, top)
	for _, v := range sc.ticks() {
		if v < p.Min || v > p.Max {
			continue
		}
		c.text(sc.label(v), x+barWidth+4, sc.at(v)+4, tickFontSize, textColor, alignLeft)
	}
	c.vtext(p.Legend, x+barWidth+44, (top+bottom)/2, labelFontSize, textColor)
}
