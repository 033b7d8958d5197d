package plot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// BoxGroup is one box of a box plot. Whiskers end at the most extreme
// values within 1.5 IQR; anything beyond is an outlier.
type BoxGroup struct {
	Label        string
	Q1           float64
	Median       float64
	Q3           float64
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
	Color        drawing.Color
}

type BoxPanel struct {
	Title  string
	XLabel string
	YLabel string
	Groups []BoxGroup
}

func (p BoxPanel) Render(width, height int) ([]byte, error) {
	var values [][]float64
	for _, g := range p.Groups {
		values = append(values, []float64{g.LowerWhisker, g.UpperWhisker}, g.Outliers)
	}
	lo, hi, ok := finiteRange(values...)
	if !ok {
		return placeholder(p.Title, width, height)
	}

	c, err := newCanvas(width, height, p.Title)
	if err != nil {
		return nil, err
	}
	sc := newScale(lo, hi, c.plot.Bottom, c.plot.Top)
	c.yAxis(sc, false, p.YLabel, textColor, true)

	n := len(p.Groups)
	slot := float64(c.plot.Right-c.plot.Left) / float64(n)
	half := int(slot * 0.25)
	labels := make([]string, n)
	centers := make([]int, n)

	for i, g := range p.Groups {
		cx := c.plot.Left + int(math.Round(slot*(float64(i)+0.5)))
		labels[i] = g.Label
		centers[i] = cx
		if !finite(g.Q1) || !finite(g.Q3) {
			continue
		}

		top, bottom := sc.at(g.Q3), sc.at(g.Q1)
		c.line(cx, sc.at(g.UpperWhisker), cx, top, textColor, 1, nil)
		c.line(cx, bottom, cx, sc.at(g.LowerWhisker), textColor, 1, nil)
		c.line(cx-half/2, sc.at(g.UpperWhisker), cx+half/2, sc.at(g.UpperWhisker), textColor, 1, nil)
		c.line(cx-half/2, sc.at(g.LowerWhisker), cx+half/2, sc.at(g.LowerWhisker), textColor, 1, nil)

		c.rect(chart.Box{Left: cx - half, Right: cx + half, Top: top, Bottom: bottom}, g.Color, textColor)
		median := sc.at(g.Median)
		c.line(cx-half, median, cx+half, median, Orange, 2, nil)

		for _, o := range g.Outliers {
			if finite(o) {
				c.marker(cx, sc.at(o), 3, textColor.WithAlpha(160))
			}
		}
	}

	c.categories(labels, centers, int(slot))
	c.xName(p.XLabel)
	return c.png()
}
