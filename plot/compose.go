package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Compose renders panels into a grid of the given number of columns,
// each cell width x height, and returns the whole figure as PNG.
func Compose(panels []Panel, columns, width, height int) ([]byte, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("compose: no panels")
	}
	if columns <= 0 {
		columns = 1
	}
	rows := (len(panels) + columns - 1) / columns

	figure := image.NewRGBA(image.Rect(0, 0, columns*width, rows*height))
	draw.Draw(figure, figure.Bounds(), image.NewUniform(drawing.ColorWhite), image.Point{}, draw.Src)

	for i, panel := range panels {
		data, err := panel.Render(width, height)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i+1, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i+1, err)
		}
		origin := image.Pt((i%columns)*width, (i/columns)*height)
		draw.Draw(figure, img.Bounds().Add(origin), img, img.Bounds().Min, draw.Over)
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := png.Encode(buffer, figure); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
