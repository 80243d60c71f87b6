package web

import (
	"image"
	"time"

	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/render/layout"
	"github.com/quarterface/quarterface/internal/state"
	"github.com/quarterface/quarterface/internal/watch"
)

// FaceStore is the read side of state.Store used by the API.
type FaceStore interface {
	Snapshot() state.State
}

type APIV1Deps struct {
	Store FaceStore

	// ApplyFace edits the face options atomically and must force a full
	// repaint when fn succeeds.
	ApplyFace func(fn func(watch.Config) (watch.Config, error)) (watch.Config, error)

	// Canvas and Geometry size the preview image.
	Canvas   image.Rectangle
	Geometry layout.Geometry

	// Now stands in for the tick when none has arrived yet.
	Now func() time.Time
}

func (d APIV1Deps) withDefaults() APIV1Deps {
	out := d
	if out.Canvas.Empty() {
		out.Canvas = render.CanvasBounds(0, 0)
	}
	if out.Geometry == (layout.Geometry{}) {
		out.Geometry = layout.DefaultGeometry()
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	return out
}
