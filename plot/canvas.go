package plot

import (
	"bytes"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	titleFontSize = 13.0
	labelFontSize = 10.0
	tickFontSize  = 8.5
)

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// canvas draws panels that go-chart has no native chart type for.
type canvas struct {
	r     chart.Renderer
	style chart.Style

	width, height int
	plot          chart.Box
}

func newCanvas(width, height int, title string) (*canvas, error) {
	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	c := &canvas{
		r:      r,
		style:  chart.Style{Font: font},
		width:  width,
		height: height,
		plot: chart.Box{
			Top:    52,
			Left:   72,
			Right:  width - 24,
			Bottom: height - 64,
		},
	}
	c.rect(chart.Box{Right: width, Bottom: height}, drawing.ColorWhite, drawing.Color{})
	c.text(title, width/2, 26, titleFontSize, textColor, alignCenter)
	return c, nil
}

func (c *canvas) textStyle(size float64, color drawing.Color) chart.Style {
	return chart.Style{Font: c.style.Font, FontSize: size, FontColor: color}
}

func (c *canvas) measure(body string, size float64) chart.Box {
	return chart.Draw.MeasureText(c.r, body, c.textStyle(size, textColor))
}

// text draws body with its baseline at y.
func (c *canvas) text(body string, x, y int, size float64, color drawing.Color, a align) {
	if body == "" {
		return
	}
	switch a {
	case alignCenter:
		x -= c.measure(body, size).Width() / 2
	case alignRight:
		x -= c.measure(body, size).Width()
	}
	chart.Draw.Text(c.r, body, x, y, c.textStyle(size, color))
}

// vtext draws body reading bottom to top, centred on (x, y).
func (c *canvas) vtext(body string, x, y int, size float64, color drawing.Color) {
	if body == "" {
		return
	}
	box := c.measure(body, size)
	style := c.textStyle(size, color)
	style.TextRotationDegrees = -90
	chart.Draw.Text(c.r, body, x+box.Height()/2, y+box.Width()/2, style)
}

func (c *canvas) rect(b chart.Box, fill, stroke drawing.Color) {
	style := chart.Style{FillColor: fill}
	if !stroke.IsZero() {
		style.StrokeColor = stroke
		style.StrokeWidth = 1
	}
	chart.Draw.Box(c.r, b, style)
}

func (c *canvas) line(x0, y0, x1, y1 int, color drawing.Color, width float64, dash []float64) {
	c.r.SetStrokeColor(color)
	c.r.SetStrokeWidth(width)
	c.r.SetStrokeDashArray(dash)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
	c.r.ResetStyle()
}

// polyline joins consecutive points, breaking at gaps.
func (c *canvas) polyline(xs, ys []int, valid []bool, color drawing.Color, width float64) {
	for i := 1; i < len(xs); i++ {
		if valid[i-1] && valid[i] {
			c.line(xs[i-1], ys[i-1], xs[i], ys[i], color, width, nil)
		}
	}
}

func (c *canvas) marker(x, y, radius int, color drawing.Color) {
	c.rect(chart.Box{Left: x - radius, Top: y - radius, Right: x + radius, Bottom: y + radius}, color, color.WithAlpha(255))
}

// yAxis draws ticks and an optional horizontal grid for s on the left or
// right edge of the plot area.
func (c *canvas) yAxis(s scale, right bool, name string, color drawing.Color, grid bool) {
	x := c.plot.Left
	if right {
		x = c.plot.Right
	}
	c.line(x, c.plot.Top, x, c.plot.Bottom, textColor, 1, nil)

	widest := 0
	for _, v := range s.ticks() {
		y := s.at(v)
		if grid {
			c.line(c.plot.Left, y, c.plot.Right, y, gridColor, 1, []float64{4, 3})
		}
		label := s.label(v)
		if w := c.measure(label, tickFontSize).Width(); w > widest {
			widest = w
		}
		if right {
			c.text(label, x+5, y+4, tickFontSize, color, alignLeft)
		} else {
			c.text(label, x-5, y+4, tickFontSize, color, alignRight)
		}
	}

	mid := (c.plot.Top + c.plot.Bottom) / 2
	if right {
		c.vtext(name, x+widest+16, mid, labelFontSize, color)
	} else {
		c.vtext(name, x-widest-18, mid, labelFontSize, color)
	}
}

// xAxis draws ticks and an optional vertical grid for s along the bottom.
func (c *canvas) xAxis(s scale, name string, grid bool) {
	c.line(c.plot.Left, c.plot.Bottom, c.plot.Right, c.plot.Bottom, textColor, 1, nil)
	for _, v := range s.ticks() {
		x := s.at(v)
		if grid {
			c.line(x, c.plot.Top, x, c.plot.Bottom, gridColor, 1, []float64{4, 3})
		}
		c.text(s.label(v), x, c.plot.Bottom+14, tickFontSize, textColor, alignCenter)
	}
	c.xName(name)
}

func (c *canvas) xName(name string) {
	c.text(name, (c.plot.Left+c.plot.Right)/2, c.height-14, labelFontSize, textColor, alignCenter)
}

// categories labels slots along the bottom edge, shrinking the font and
// then truncating until labels fit their slot.
func (c *canvas) categories(labels []string, centers []int, slot int) {
	c.line(c.plot.Left, c.plot.Bottom, c.plot.Right, c.plot.Bottom, textColor, 1, nil)

	size := tickFontSize
	for size > 6.5 && c.widest(labels, size) > slot-4 {
		size -= 0.5
	}
	for i, label := range labels {
		c.text(c.fit(label, size, slot-4), centers[i], c.plot.Bottom+14, size, textColor, alignCenter)
	}
}

func (c *canvas) widest(labels []string, size float64) int {
	widest := 0
	for _, l := range labels {
		if w := c.measure(l, size).Width(); w > widest {
			widest = w
		}
	}
	return widest
}

func (c *canvas) fit(label string, size float64, width int) string {
	if width <= 0 || c.measure(label, size).Width() <= width {
		return label
	}
	runes := []rune(label)
	for n := len(runes) - 1; n > 0; n-- {
		short := strings.TrimSpace(string(runes[:n])) + "."
		if c.measure(short, size).Width() <= width {
			return short
		}
	}
	return string(runes[:1])
}

type legendEntry struct {
	Label string
	Color drawing.Color
	Line  bool
}

// legend stacks entries in the top right corner of the plot area.
func (c *canvas) legend(entries []legendEntry) {
	if len(entries) == 0 {
		return
	}
	const rowHeight = 15
	width := c.widest(labelsOf(entries), tickFontSize) + 34
	box := chart.Box{
		Top:    c.plot.Top + 6,
		Right:  c.plot.Right - 6,
		Left:   c.plot.Right - 6 - width,
		Bottom: c.plot.Top + 10 + rowHeight*len(entries),
	}
	c.rect(box, drawing.ColorWhite.WithAlpha(220), gridColor)

	for i, e := range entries {
		y := box.Top + 4 + rowHeight*i + rowHeight/2
		if e.Line {
			c.line(box.Left+6, y, box.Left+22, y, e.Color, 2, nil)
			c.marker(box.Left+14, y, 3, e.Color)
		} else {
			c.rect(chart.Box{Left: box.Left + 6, Right: box.Left + 22, Top: y - 5, Bottom: y + 5}, e.Color, drawing.Color{})
		}
		c.text(e.Label, box.Left+28, y+4, tickFontSize, textColor, alignLeft)
	}
}

func labelsOf(entries []legendEntry) []string {
	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label
	}
	return labels
}

func (c *canvas) empty() {
	c.text("Sin datos", (c.plot.Left+c.plot.Right)/2, (c.plot.Top+c.plot.Bottom)/2, labelFontSize, textColor, alignCenter)
}

func (c *canvas) png() ([]byte, error) {
	buffer := bytes.NewBuffer([]byte{})
	if err := c.r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// placeholder renders a titled panel with no data.
func placeholder(title string, width, height int) ([]byte, error) {
	c, err := newCanvas(width, height, title)
	if err != nil {
		return nil, err
	}
	c.empty()
	return c.png()
}
