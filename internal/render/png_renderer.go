package render

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/quarterface/quarterface/internal/state"
)

// PNGRenderer stands in for the display: every frame that draws something is
// written to Dir as a PNG. With Trace set, the primitives of each frame are
// written there as text too.
type PNGRenderer struct {
	Dir    string
	Canvas image.Rectangle
	Trace  io.Writer
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	canvas   *Raster
	recorder *Recorder
	current  Screen
	frame    int
}

func NewPNGRenderer(dir string, canvas image.Rectangle) *PNGRenderer {
	return &PNGRenderer{Dir: dir, Canvas: canvas}
}

func (r *PNGRenderer) Start(ctx context.Context) error {
	if r.Dir != "" {
		if err := os.MkdirAll(r.Dir, 0o755); err != nil {
			return fmt.Errorf("create frame dir: %w", err)
		}
	}
	r.canvas = NewRaster(r.Canvas)
	r.canvas.Logger = r.Logger
	r.recorder = NewRecorder(r.Canvas)
	return nil
}

func (r *PNGRenderer) Stop() error { return nil }

func (r *PNGRenderer) SetScreen(screen Screen) {
	r.current = screen
	if screen != nil {
		screen.Invalidate()
	}
}

// Frames is the number of PNG frames written so far.
func (r *PNGRenderer) Frames() int { return r.frame }

func (r *PNGRenderer) Redraw(snap state.State) PaintKind {
	if r.current == nil || r.canvas == nil {
		return PaintSkipped
	}
	r.recorder.Reset()
	kind := r.current.Draw(Tee{r.canvas, r.recorder}, snap)
	r.canvas.TakeDirty()
	if !kind.Drew() {
		return kind
	}
	r.frame++
	if r.Trace != nil {
		fmt.Fprintf(r.Trace, "# frame %d %s %s\n%s", r.frame, snap.Time, kind, r.recorder.Trace())
	}
	if r.Dir == "" {
		return kind
	}
	name := filepath.Join(r.Dir, fmt.Sprintf("frame-%05d.png", r.frame))
	if err := r.writeFrame(name); err != nil && r.Logger != nil {
		r.Logger.Errorf("png", "write %s: %v", name, err)
	}
	return kind
}

func (r *PNGRenderer) writeFrame(name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := r.canvas.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
