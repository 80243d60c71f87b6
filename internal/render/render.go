package render

import (
	"context"
	"image"
	"image/color"

	"github.com/quarterface/quarterface/internal/render/geom"
	"github.com/quarterface/quarterface/internal/state"
)

// Renderer owns the output surface and asks the current screen to paint onto it.
type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	Redraw(snap state.State) PaintKind
}

// Screen paints itself onto a Canvas. Screens may paint incrementally: a
// Draw call does not imply the canvas was cleared.
type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(c Canvas, s state.State) PaintKind
	// Invalidate makes the next Draw repaint everything.
	Invalidate()
}

// PaintKind tells the renderer how much of the canvas a Draw call touched.
type PaintKind int

const (
	// PaintSkipped means there was nothing to show yet.
	PaintSkipped PaintKind = iota
	// PaintNone means the canvas is already up to date.
	PaintNone
	PaintSeconds
	PaintFull
)

func (k PaintKind) String() string {
	switch k {
	case PaintSkipped:
		return "skipped"
	case PaintNone:
		return "none"
	case PaintSeconds:
		return "seconds"
	case PaintFull:
		return "full"
	default:
		return "unknown"
	}
}

// Drew reports whether any primitive was issued.
func (k PaintKind) Drew() bool { return k == PaintSeconds || k == PaintFull }

// Stub implementation
type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error { return nil }
func (n *NoopRenderer) Stop() error                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)         {}
func (n *NoopRenderer) Redraw(snap state.State) PaintKind {
	return PaintSkipped
}

// Canvas is the set of primitives a screen may issue. Coordinates are
// logical canvas pixels with the origin at the top-left.
type Canvas interface {
	Bounds() image.Rectangle

	FillRect(rect image.Rectangle, c color.Color)

	DrawCircle(center image.Point, radius int, c color.Color)
	FillCircle(center image.Point, radius int, c color.Color)

	// Polygons are closed; rotation and translation are applied by the canvas.
	DrawPolygon(poly geom.Polygon, c color.Color)
	FillPolygon(poly geom.Polygon, c color.Color)

	// DrawText centres a short string inside rect.
	DrawText(text string, rect image.Rectangle, c color.Color)
}
