package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	"github.com/quarterface/quarterface/internal/state"
	xdraw "golang.org/x/image/draw"
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device string
	Canvas image.Rectangle

	fbDev   *fb.Device
	canvas  *Raster
	target  image.Rectangle
	running atomic.Bool
	current Screen
	Logger  interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
	Debug bool
}

func NewFBRenderer(device string, canvas image.Rectangle) *FBRenderer {
	if device == "" {
		device = "/dev/fb0"
	}
	return &FBRenderer{Device: device, Canvas: canvas}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	bounds := dev.Bounds()
	r.target = fitRect(r.Canvas, bounds)
	if r.Logger != nil {
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d, face at %v", r.Device, bounds.Dx(), bounds.Dy(), r.target)
	}

	// Letterbox bars stay black; the face only repaints its own rectangle.
	draw.Draw(dev, bounds, &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	r.canvas = NewRaster(r.Canvas)
	r.canvas.Logger = r.Logger
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the screen drawn on the next Redraw and forces it to repaint.
func (r *FBRenderer) SetScreen(screen Screen) {
	r.current = screen
	if screen != nil {
		screen.Invalidate()
	}
}

// Redraw lets the current screen update the canvas and pushes whatever it
// touched to the device.
func (r *FBRenderer) Redraw(snap state.State) PaintKind {
	if !r.running.Load() || r.current == nil || r.fbDev == nil {
		return PaintSkipped
	}
	kind := r.current.Draw(r.canvas, snap)
	dirty := r.canvas.TakeDirty()
	if kind.Drew() && !dirty.Empty() {
		blitToFB(r.fbDev, r.target, r.canvas.Image(), dirty)
	}
	if r.Logger != nil && r.Debug {
		r.Logger.Infof("fb", "redraw %s at %s, dirty=%v", kind, snap.Time, dirty)
	}
	return kind
}

// fitRect returns the largest rectangle with canvas's aspect ratio centred
// in device.
func fitRect(canvas, device image.Rectangle) image.Rectangle {
	cw, ch := canvas.Dx(), canvas.Dy()
	dw, dh := device.Dx(), device.Dy()
	if cw <= 0 || ch <= 0 || dw <= 0 || dh <= 0 {
		return device
	}
	w, h := dw, dw*ch/cw
	if h > dh {
		w, h = dh*cw/ch, dh
	}
	origin := device.Min.Add(image.Pt((dw-w)/2, (dh-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}
}

// scaleRect maps src, a sub-rectangle of from, onto the matching region of to.
func scaleRect(src, from, to image.Rectangle) image.Rectangle {
	fw, fh := from.Dx(), from.Dy()
	if fw <= 0 || fh <= 0 {
		return image.Rectangle{}
	}
	tw, th := to.Dx(), to.Dy()
	return image.Rect(
		to.Min.X+(src.Min.X-from.Min.X)*tw/fw,
		to.Min.Y+(src.Min.Y-from.Min.Y)*th/fh,
		to.Min.X+((src.Max.X-from.Min.X)*tw+fw-1)/fw,
		to.Min.Y+((src.Max.Y-from.Min.Y)*th+fh-1)/fh,
	)
}

// blitToFB scales the dirty part of canvas onto target with nearest-neighbour sampling.
func blitToFB(dev draw.Image, target image.Rectangle, canvas *image.RGBA, dirty image.Rectangle) {
	if dev == nil {
		return
	}
	dst := scaleRect(dirty, canvas.Bounds(), target)
	xdraw.NearestNeighbor.Scale(dev, dst, canvas, dirty, xdraw.Src, nil)
}
