package screens

import (
	"context"
	"image"

	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/render/geom"
	"github.com/quarterface/quarterface/internal/render/layout"
	"github.com/quarterface/quarterface/internal/state"
	"github.com/quarterface/quarterface/internal/watch"
)

// RenderState is everything the face remembers between ticks.
type RenderState struct {
	Last      watch.WatchTime
	ForceFull bool

	// Placement of the hand at the last full paint; seconds-only repaints
	// reuse it instead of laying the face out again.
	Pivot    image.Point
	Rotation geom.Angle
	Badge    *layout.Badge
}

// WatchFace is the quarter analogue face. It repaints everything when the
// hour or minute changes and only the seconds bar when just the second does.
type WatchFace struct {
	Geometry layout.Geometry

	state   RenderState
	painted watch.Config
}

func NewWatchFace(geo layout.Geometry) *WatchFace {
	return &WatchFace{Geometry: geo, state: RenderState{Last: watch.Unset}}
}

func (f *WatchFace) Start(ctx context.Context) error { return nil }
func (f *WatchFace) Stop() error                     { return nil }

// Invalidate forces the next paint to be a full one.
func (f *WatchFace) Invalidate() { f.state.ForceFull = true }

// State returns a copy of the render state.
func (f *WatchFace) State() RenderState { return f.state }

func (f *WatchFace) Draw(c render.Canvas, s state.State) render.PaintKind {
	return f.Paint(c, s.Time, s.Face)
}

// Paint brings c up to date with t. An unset time draws nothing and leaves the
// state untouched so the next tick starts over with fresh input.
func (f *WatchFace) Paint(c render.Canvas, t watch.WatchTime, cfg watch.Config) render.PaintKind {
	if t.IsUnset() {
		return render.PaintSkipped
	}
	t = t.Normalize()
	if cfg != f.painted {
		f.state.ForceFull = true
	}

	last := f.state.Last
	var kind render.PaintKind
	switch {
	case f.state.ForceFull || last.IsUnset() || !t.SameMinute(last):
		f.paintFull(c, t, cfg)
		kind = render.PaintFull
	case t.Second != last.Second:
		f.paintSeconds(c, t, cfg)
		kind = render.PaintSeconds
	default:
		kind = render.PaintNone
	}

	f.state.Last = t
	f.state.ForceFull = false
	return kind
}

func (f *WatchFace) paintFull(c render.Canvas, t watch.WatchTime, cfg watch.Config) {
	face := layout.Layout(t, c.Bounds(), cfg, f.Geometry)
	bg, fg := cfg.Theme.Background, cfg.Theme.Foreground

	c.FillRect(c.Bounds(), bg)
	c.DrawPolygon(face.Hand, fg)
	for _, dot := range face.Divisions {
		if dot.Filled {
			c.FillCircle(dot.Center, dot.Radius, fg)
		} else {
			c.DrawCircle(dot.Center, dot.Radius, fg)
		}
	}
	c.FillPolygon(face.Second, fg)
	drawBadge(c, face.Badge, cfg.Theme)

	f.state.Pivot = face.Pivot
	f.state.Rotation = face.Rotation
	f.state.Badge = face.Badge
	f.painted = cfg
}

// paintSeconds grows the seconds bar in place. The bar runs under the badge, so
// the badge is stamped again on top; the dots wait for the next full paint.
func (f *WatchFace) paintSeconds(c render.Canvas, t watch.WatchTime, cfg watch.Config) {
	bar := layout.SecondHandAt(t.Second, f.state.Rotation, f.state.Pivot, cfg, f.Geometry)
	c.FillPolygon(bar, cfg.Theme.Foreground)
	drawBadge(c, f.state.Badge, cfg.Theme)
}

func drawBadge(c render.Canvas, b *layout.Badge, theme watch.Theme) {
	if b == nil {
		return
	}
	c.FillCircle(b.Center, b.Radius, theme.Background)
	c.DrawCircle(b.Center, b.Radius, theme.Foreground)
	c.DrawText(b.Text, b.TextRect, theme.Foreground)
}
