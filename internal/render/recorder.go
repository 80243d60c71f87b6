package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/quarterface/quarterface/internal/render/geom"
)

// OpKind identifies a recorded primitive.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpDrawCircle
	OpFillCircle
	OpDrawPolygon
	OpFillPolygon
	OpDrawText
)

var opNames = [...]string{"fill-rect", "draw-circle", "fill-circle", "draw-polygon", "fill-polygon", "draw-text"}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return "op(" + fmt.Sprint(int(k)) + ")"
}

// Op is one recorded draw call. Only the fields relevant to Kind are set.
type Op struct {
	Kind    OpKind
	Rect    image.Rectangle
	Center  image.Point
	Radius  int
	Polygon geom.Polygon
	Text    string
	Color   color.RGBA
}

func (op Op) String() string {
	c := fmt.Sprintf("#%02x%02x%02x", op.Color.R, op.Color.G, op.Color.B)
	switch op.Kind {
	case OpFillRect:
		return fmt.Sprintf("%s %v %s", op.Kind, op.Rect, c)
	case OpDrawCircle, OpFillCircle:
		return fmt.Sprintf("%s %v r=%d %s", op.Kind, op.Center, op.Radius, c)
	case OpDrawPolygon, OpFillPolygon:
		return fmt.Sprintf("%s %v %s", op.Kind, op.Polygon.Transformed(), c)
	case OpDrawText:
		return fmt.Sprintf("%s %q %v %s", op.Kind, op.Text, op.Rect, c)
	default:
		return op.Kind.String()
	}
}

// Recorder is a Canvas that keeps every primitive it receives. It backs the
// tests and the simulator trace, and can replay onto a real canvas.
type Recorder struct {
	bounds image.Rectangle
	ops    []Op
}

func NewRecorder(bounds image.Rectangle) *Recorder {
	return &Recorder{bounds: bounds}
}

func (r *Recorder) Bounds() image.Rectangle { return r.bounds }

// Ops returns a copy of the recorded primitives.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() { r.ops = r.ops[:0] }

// Replay issues the recorded primitives, in order, onto c.
func (r *Recorder) Replay(c Canvas) {
	for _, op := range r.ops {
		switch op.Kind {
		case OpFillRect:
			c.FillRect(op.Rect, op.Color)
		case OpDrawCircle:
			c.DrawCircle(op.Center, op.Radius, op.Color)
		case OpFillCircle:
			c.FillCircle(op.Center, op.Radius, op.Color)
		case OpDrawPolygon:
			c.DrawPolygon(op.Polygon, op.Color)
		case OpFillPolygon:
			c.FillPolygon(op.Polygon, op.Color)
		case OpDrawText:
			c.DrawText(op.Text, op.Rect, op.Color)
		}
	}
}

// Trace renders the recorded primitives one per line.
func (r *Recorder) Trace() string {
	var b strings.Builder
	for _, op := range r.ops {
		b.WriteString(op.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Recorder) FillRect(rect image.Rectangle, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillRect, Rect: rect, Color: rgba(c)})
}

func (r *Recorder) DrawCircle(center image.Point, radius int, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpDrawCircle, Center: center, Radius: radius, Color: rgba(c)})
}

func (r *Recorder) FillCircle(center image.Point, radius int, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillCircle, Center: center, Radius: radius, Color: rgba(c)})
}

func (r *Recorder) DrawPolygon(poly geom.Polygon, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpDrawPolygon, Polygon: clonePolygon(poly), Color: rgba(c)})
}

func (r *Recorder) FillPolygon(poly geom.Polygon, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpFillPolygon, Polygon: clonePolygon(poly), Color: rgba(c)})
}

func (r *Recorder) DrawText(text string, rect image.Rectangle, c color.Color) {
	r.ops = append(r.ops, Op{Kind: OpDrawText, Text: text, Rect: rect, Color: rgba(c)})
}

func clonePolygon(poly geom.Polygon) geom.Polygon {
	pts := make([]image.Point, len(poly.Points))
	copy(pts, poly.Points)
	poly.Points = pts
	return poly
}

func rgba(c color.Color) color.RGBA {
	if v, ok := c.(color.RGBA); ok {
		return v
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
