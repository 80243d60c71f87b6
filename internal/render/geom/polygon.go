package geom

import "image"

// Polygon is a closed path in local coordinates, placed on the canvas by
// rotating about the local origin and then translating by Offset.
type Polygon struct {
	Points   []image.Point
	Rotation Angle
	Offset   image.Point
}

// Rotate turns p clockwise (screen space, y down) about the origin.
func Rotate(p image.Point, a Angle) image.Point {
	sin, cos := int64(Sin(a)), int64(Cos(a))
	x, y := int64(p.X), int64(p.Y)
	return image.Point{
		X: int((x*cos - y*sin) / MaxRatio),
		Y: int((x*sin + y*cos) / MaxRatio),
	}
}

// Transformed returns the polygon's vertices in canvas coordinates.
func (poly Polygon) Transformed() []image.Point {
	out := make([]image.Point, len(poly.Points))
	for i, p := range poly.Points {
		out[i] = Rotate(p, poly.Rotation).Add(poly.Offset)
	}
	return out
}

// Bounds is the smallest rectangle containing every transformed vertex.
// Max is exclusive, as with image.Rectangle.
func (poly Polygon) Bounds() image.Rectangle {
	pts := poly.Transformed()
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: pts[0], Max: pts[0].Add(image.Pt(1, 1))}
	for _, p := range pts[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}
