package render

import (
	"image"
	"image/color"

	"github.com/quarterface/quarterface/internal/render/geom"
)

// Tee forwards every primitive to each canvas in order. Bounds come from the
// first canvas.
type Tee []Canvas

func (t Tee) Bounds() image.Rectangle {
	if len(t) == 0 {
		return image.Rectangle{}
	}
	return t[0].Bounds()
}

func (t Tee) FillRect(rect image.Rectangle, c color.Color) {
	for _, cv := range t {
		cv.FillRect(rect, c)
	}
}

func (t Tee) DrawCircle(center image.Point, radius int, c color.Color) {
	for _, cv := range t {
		cv.DrawCircle(center, radius, c)
	}
}

func (t Tee) FillCircle(center image.Point, radius int, c color.Color) {
	for _, cv := range t {
		cv.FillCircle(center, radius, c)
	}
}

func (t Tee) DrawPolygon(poly geom.Polygon, c color.Color) {
	for _, cv := range t {
		cv.DrawPolygon(poly, c)
	}
}

func (t Tee) FillPolygon(poly geom.Polygon, c color.Color) {
	for _, cv := range t {
		cv.FillPolygon(poly, c)
	}
}

func (t Tee) DrawText(text string, rect image.Rectangle, c color.Color) {
	for _, cv := range t {
		cv.DrawText(text, rect, c)
	}
}
