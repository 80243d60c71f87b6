package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/quarterface/quarterface/internal/assets"
	"github.com/quarterface/quarterface/internal/render/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// bezierCircle is the control point distance for a quarter circle cubic.
const bezierCircle = 0.5522847

// Raster is a Canvas backed by an in-memory RGBA image. Fills are rasterized
// with x/image/vector, outlines are stepped on the integer grid and text goes
// through freetype. It records the region touched since the last TakeDirty so
// presenters only push what changed.
type Raster struct {
	img    *image.RGBA
	dirty  image.Rectangle
	ttFont *truetype.Font
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}
}

func NewRaster(bounds image.Rectangle) *Raster {
	r := &Raster{img: image.NewRGBA(bounds)}
	if tt, err := truetype.Parse(assets.FontTTF); err == nil {
		r.ttFont = tt
	}
	return r
}

func (r *Raster) Bounds() image.Rectangle { return r.img.Bounds() }

// Image exposes the backing image; callers must not keep it across draws.
func (r *Raster) Image() *image.RGBA { return r.img }

// TakeDirty returns the region drawn since the previous call and resets it.
func (r *Raster) TakeDirty() image.Rectangle {
	d := r.dirty
	r.dirty = image.Rectangle{}
	return d
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

func (r *Raster) markDirty(rect image.Rectangle) {
	rect = rect.Intersect(r.img.Bounds())
	if rect.Empty() {
		return
	}
	r.dirty = r.dirty.Union(rect)
}

func (r *Raster) FillRect(rect image.Rectangle, c color.Color) {
	rect = rect.Intersect(r.img.Bounds())
	draw.Draw(r.img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
	r.markDirty(rect)
}

func (r *Raster) FillCircle(center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	z, origin := r.rasterizer()
	cx := float32(center.X-origin.X) + 0.5
	cy := float32(center.Y-origin.Y) + 0.5
	rr := float32(radius) + 0.5
	k := rr * bezierCircle
	z.MoveTo(cx, cy-rr)
	z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	z.ClosePath()
	r.fill(z, c)
	r.markDirty(image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1))
}

// DrawCircle traces a one pixel outline with the midpoint algorithm.
func (r *Raster) DrawCircle(center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	col := rgba(c)
	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		for _, p := range [8]image.Point{
			{X: x, Y: y}, {X: y, Y: x}, {X: -y, Y: x}, {X: -x, Y: y},
			{X: -x, Y: -y}, {X: -y, Y: -x}, {X: y, Y: -x}, {X: x, Y: -y},
		} {
			r.set(center.X+p.X, center.Y+p.Y, col)
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
	r.markDirty(image.Rect(center.X-radius, center.Y-radius, center.X+radius+1, center.Y+radius+1))
}

func (r *Raster) FillPolygon(poly geom.Polygon, c color.Color) {
	pts := poly.Transformed()
	if len(pts) < 3 {
		return
	}
	z, origin := r.rasterizer()
	z.MoveTo(float32(pts[0].X-origin.X)+0.5, float32(pts[0].Y-origin.Y)+0.5)
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-origin.X)+0.5, float32(p.Y-origin.Y)+0.5)
	}
	z.ClosePath()
	r.fill(z, c)
	r.markDirty(poly.Bounds())
}

func (r *Raster) DrawPolygon(poly geom.Polygon, c color.Color) {
	pts := poly.Transformed()
	if len(pts) == 0 {
		return
	}
	col := rgba(c)
	for i := range pts {
		r.line(pts[i], pts[(i+1)%len(pts)], col)
	}
	r.markDirty(poly.Bounds())
}

func (r *Raster) DrawText(text string, rect image.Rectangle, c color.Color) {
	if text == "" || rect.Empty() {
		return
	}
	if r.ttFont != nil {
		err := r.drawTrueType(text, rect, c)
		if err == nil {
			r.markDirty(rect)
			return
		}
		if r.Logger != nil {
			r.Logger.Errorf("raster", "freetype draw failed, using basicfont: %v", err)
		}
	}
	drawCentered(r.img, text, rect, c, basicfont.Face7x13)
	r.markDirty(rect)
}

func (r *Raster) drawTrueType(text string, rect image.Rectangle, c color.Color) error {
	size := float64(rect.Dy()) * 0.7
	face := truetype.NewFace(r.ttFont, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.ttFont)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(rect.Intersect(r.img.Bounds()))
	ctx.SetDst(r.img)
	ctx.SetSrc(image.NewUniform(c))

	x, baseline := centeredOrigin(face, text, rect)
	_, err := ctx.DrawString(text, freetype.Pt(x, baseline))
	return err
}

// centeredOrigin returns the dot that centres text in rect for face.
func centeredOrigin(face font.Face, text string, rect image.Rectangle) (x, baseline int) {
	width := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	x = rect.Min.X + (rect.Dx()-width)/2
	baseline = rect.Min.Y + (rect.Dy()+ascent-descent)/2
	return x, baseline
}

func drawCentered(img draw.Image, text string, rect image.Rectangle, c color.Color, face font.Face) {
	x, baseline := centeredOrigin(face, text, rect)
	drawer := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face}
	drawer.Dot = fixed.P(x, baseline)
	drawer.DrawString(text)
}

func (r *Raster) rasterizer() (*vector.Rasterizer, image.Point) {
	b := r.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z, b.Min
}

func (r *Raster) fill(z *vector.Rasterizer, c color.Color) {
	z.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
}

// line draws a one pixel Bresenham segment, both ends included.
func (r *Raster) line(a, b image.Point, c color.RGBA) {
	dx, dy := abs(b.X-a.X), -abs(b.Y-a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	for {
		r.set(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func (r *Raster) set(x, y int, c color.RGBA) {
	if image.Pt(x, y).In(r.img.Bounds()) {
		r.img.SetRGBA(x, y, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
