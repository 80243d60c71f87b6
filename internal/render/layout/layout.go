// Package layout turns a wall-clock time into the screen-space shapes of the
// quarter analogue face: one hand rotating about an off-centre pivot, a ring
// of minute dots around that pivot, a seconds bar inside the hand and an
// optional hour badge.
//
// Everything here is a pure function of its inputs and uses only the integer
// trigonometry in package geom.
package layout

import (
	"fmt"
	"image"

	"github.com/quarterface/quarterface/internal/render/geom"
	"github.com/quarterface/quarterface/internal/watch"
)

// Geometry holds the pixel dimensions of the face.
type Geometry struct {
	HandLength      int
	HandHalfWidth   int
	SecondHalfWidth int

	// DivisionRadius is the distance from the pivot to each dot centre.
	DivisionRadius int
	// PivotDistance is how far the pivot sits from the canvas centre.
	PivotDistance int

	LargeDot int
	SmallDot int

	BadgeRadius int

	// ClampMargin is how many pixels a hand vertex may sit outside the canvas.
	ClampMargin int
	// VisibleSpan is the number of dots drawn on each side of the current minute.
	VisibleSpan int
}

// DefaultGeometry matches the 144x168 reference display.
func DefaultGeometry() Geometry {
	return Geometry{
		HandLength:      120,
		HandHalfWidth:   4,
		SecondHalfWidth: 5,
		DivisionRadius:  120,
		PivotDistance:   120 * 3 / 4,
		LargeDot:        5,
		SmallDot:        2,
		BadgeRadius:     9,
		ClampMargin:     2,
		VisibleSpan:     14,
	}
}

// Dot is one minute division on the ring.
type Dot struct {
	Minute int
	Center image.Point
	Radius int
	Large  bool
	Filled bool
}

// Badge is the digital hour label drawn over the current-minute dot.
type Badge struct {
	Center   image.Point
	Radius   int
	Text     string
	TextRect image.Rectangle
}

// Face is the complete geometry for one time.
type Face struct {
	Time     watch.WatchTime
	Rotation geom.Angle
	Pivot    image.Point

	Hand   geom.Polygon
	Second geom.Polygon

	// Divisions are ordered from minute-VisibleSpan to minute+VisibleSpan.
	Divisions []Dot

	Badge *Badge
}

// Layout computes the full face for t on canvas. An unset time is laid out
// as midnight; callers are expected to skip drawing in that case.
func Layout(t watch.WatchTime, canvas image.Rectangle, cfg watch.Config, geo Geometry) Face {
	t = drawable(t)
	rotation := HandRotation(t.Minute)
	pivot := Pivot(t, canvas, geo)

	face := Face{
		Time:      t,
		Rotation:  rotation,
		Pivot:     pivot,
		Hand:      handPolygon(geo.HandLength, geo.HandHalfWidth, rotation, pivot),
		Second:    SecondHand(t, canvas, cfg, geo),
		Divisions: Divisions(t, pivot, geo),
	}
	if cfg.ShowHourBadge {
		face.Badge = hourBadge(t, pivot, rotation, geo)
	}
	return face
}

// HandRotation is minute * FullCircle / 60.
func HandRotation(minute int) geom.Angle {
	return geom.MinuteAngle(minute)
}

// Pivot returns the point the hand rotates about. It sits PivotDistance away
// from the canvas centre, opposite the combined hour/minute direction, so the
// tip of the hand and the nearby dots stay on screen. The result is clamped so
// no vertex of the hand or a full-length seconds bar lands more than
// ClampMargin pixels outside canvas.
func Pivot(t watch.WatchTime, canvas image.Rectangle, geo Geometry) image.Point {
	t = drawable(t)
	sign := 1
	if t.IsAM() {
		sign = -1
	}
	mh2 := t.Minute*2 + sign*t.Hour12()
	angle := geom.Angle(int32(mh2) * int32(geom.FullCircle) / 120)

	center := image.Pt(canvas.Min.X+canvas.Dx()/2, canvas.Min.Y+canvas.Dy()/2)
	p := geom.Polar(center, -geo.PivotDistance, angle)

	rotation := HandRotation(t.Minute)
	extent := handPolygon(geo.HandLength, geo.HandHalfWidth, rotation, image.Point{}).Bounds().
		Union(handPolygon(geo.HandLength, geo.SecondHalfWidth, rotation, image.Point{}).Bounds())
	return clampPivot(p, extent, canvas, geo.ClampMargin)
}

// clampPivot keeps extent, positioned at p, inside canvas grown by margin.
// extent is relative to the pivot with an exclusive Max.
func clampPivot(p image.Point, extent, canvas image.Rectangle, margin int) image.Point {
	p.X = clamp(p.X, canvas.Min.X-margin-extent.Min.X, canvas.Max.X+margin-extent.Max.X)
	p.Y = clamp(p.Y, canvas.Min.Y-margin-extent.Min.Y, canvas.Max.Y+margin-extent.Max.Y)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// Divisions lays out the visible dots around pivot and marks the hour wedge.
func Divisions(t watch.WatchTime, pivot image.Point, geo Geometry) []Dot {
	t = drawable(t)
	span := clamp(geo.VisibleSpan, 0, 29)
	dots := make([]Dot, 0, 2*span+1)
	for i := t.Minute - span; i <= t.Minute+span; i++ {
		minute := (i + 60) % 60
		dot := Dot{
			Minute: minute,
			Center: geom.Polar(pivot, geo.DivisionRadius, geom.MinuteAngle(minute)),
			Radius: geo.SmallDot,
			Large:  minute%5 == 0,
			Filled: InWedge(t, i-t.Minute),
		}
		if dot.Large {
			dot.Radius = geo.LargeDot
		}
		dots = append(dots, dot)
	}
	return dots
}

// InWedge reports whether the dot offset minutes from the current minute is
// filled. Before noon the wedge runs counter-clockwise from the hand over
// [-hour12, 0); after noon it runs clockwise over (0, hour12]. The current
// dot itself is filled only when the wedge has any width.
func InWedge(t watch.WatchTime, offset int) bool {
	t = drawable(t)
	hour12 := t.Hour12()
	switch {
	case offset == 0:
		return hour12 > 0
	case t.IsAM():
		return offset >= -hour12 && offset < 0
	default:
		return offset > 0 && offset <= hour12
	}
}

// SecondLength is second*HandLength/59, or the full length when the face
// only ticks once a minute.
func SecondLength(second int, cfg watch.Config, geo Geometry) int {
	if cfg.Granularity == watch.Minute {
		return geo.HandLength
	}
	return second * geo.HandLength / 59
}

// SecondHand builds the seconds bar for t from scratch.
func SecondHand(t watch.WatchTime, canvas image.Rectangle, cfg watch.Config, geo Geometry) geom.Polygon {
	t = drawable(t)
	return SecondHandAt(t.Second, HandRotation(t.Minute), Pivot(t, canvas, geo), cfg, geo)
}

// SecondHandAt builds the seconds bar for an already placed hand. Only the two
// tip vertices depend on second.
func SecondHandAt(second int, rotation geom.Angle, pivot image.Point, cfg watch.Config, geo Geometry) geom.Polygon {
	return handPolygon(SecondLength(second, cfg, geo), geo.SecondHalfWidth, rotation, pivot)
}

func handPolygon(length, halfWidth int, rotation geom.Angle, pivot image.Point) geom.Polygon {
	return geom.Polygon{
		Points: []image.Point{
			{X: -halfWidth, Y: -length},
			{X: halfWidth, Y: -length},
			{X: halfWidth, Y: 0},
			{X: -halfWidth, Y: 0},
		},
		Rotation: rotation,
		Offset:   pivot,
	}
}

func hourBadge(t watch.WatchTime, pivot image.Point, rotation geom.Angle, geo Geometry) *Badge {
	center := geom.Polar(pivot, geo.DivisionRadius, rotation)
	r := geo.BadgeRadius
	return &Badge{
		Center:   center,
		Radius:   r,
		Text:     fmt.Sprintf("%02d", t.Hour),
		TextRect: image.Rect(center.X-r, center.Y-r, center.X+r+1, center.Y+r+1),
	}
}

func drawable(t watch.WatchTime) watch.WatchTime {
	if t.IsUnset() {
		return watch.WatchTime{}
	}
	return t.Normalize()
}
