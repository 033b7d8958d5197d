package plot

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Panel is one chart of a composite image.
type Panel interface {
	Render(width, height int) ([]byte, error)
}

var (
	Green  = drawing.ColorFromHex("2ecc71")
	Blue   = drawing.ColorFromHex("3498db")
	Red    = drawing.ColorFromHex("e74c3c")
	Orange = drawing.ColorFromHex("f39c12")
	Purple = drawing.ColorFromHex("9b59b6")
	Teal   = drawing.ColorFromHex("1abc9c")

	gridColor = drawing.Color{R: 176, G: 176, B: 176, A: 110}
	textColor = drawing.Color{R: 51, G: 51, B: 51, A: 255}
)

// Palette colours categorical panels (pie slices, boxes) in order.
var Palette = []drawing.Color{Blue, Red, Green, Orange, Purple}

func paletteColor(i int) drawing.Color {
	return Palette[i%len(Palette)]
}

func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

// finiteRange is the min and max of the finite values; ok is false when
// there are none.
func finiteRange(values ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// scale maps data values linearly onto pixels, min at from and max at to.
type scale struct {
	min, max float64
	step     float64
	from, to int
}

// newScale widens lo..hi to whole grid steps.
func newScale(lo, hi float64, from, to int) scale {
	if hi < lo {
		lo, hi = hi, lo
	}
	if lo == hi {
		if lo == 0 {
			hi = 1
		} else {
			pad := math.Abs(lo) * 0.1
			lo, hi = lo-pad, hi+pad
		}
	}
	step := calculateGridStep(hi - lo)
	return scale{
		min:  math.Floor(lo/step) * step,
		max:  math.Ceil(hi/step) * step,
		step: step,
		from: from,
		to:   to,
	}
}

func (s scale) at(v float64) int {
	return s.from + int(math.Round((v-s.min)/(s.max-s.min)*float64(s.to-s.from)))
}

func (s scale) ticks() []float64 {
	var ticks []float64
	n := int(math.Round((s.max - s.min) / s.step))
	for i := 0; i <= n; i++ {
		ticks = append(ticks, s.min+float64(i)*s.step)
	}
	return ticks
}

func (s scale) label(v float64) string {
	return formatTick(v, s.step)
}

func formatTick(v, step float64) string {
	if math.Abs(v) < step*1e-9 {
		v = 0
	}
	if step >= 1 {
		return fmt.Sprintf("%.0f", v)
	}
	decimals := int(math.Ceil(-math.Log10(step)))
	return fmt.Sprintf("%.*f", decimals, v)
}
