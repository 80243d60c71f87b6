package screens

import (
	"reflect"
	"testing"

	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/render/layout"
	"github.com/quarterface/quarterface/internal/state"
	"github.com/quarterface/quarterface/internal/watch"
)

func newFace() (*WatchFace, *render.Recorder) {
	return NewWatchFace(layout.DefaultGeometry()), render.NewRecorder(render.CanvasBounds(0, 0))
}

func kinds(ops []render.Op) []render.OpKind {
	out := make([]render.OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func paint(face *WatchFace, rec *render.Recorder, t watch.WatchTime, cfg watch.Config) (render.PaintKind, []render.Op) {
	rec.Reset()
	kind := face.Paint(rec, t, cfg)
	return kind, rec.Ops()
}

func TestUnsetTimeDrawsNothing(t *testing.T) {
	face, rec := newFace()
	kind, ops := paint(face, rec, watch.WatchTime{Hour: -1, Minute: 3, Second: 4}, watch.DefaultConfig())
	if kind != render.PaintSkipped || len(ops) != 0 {
		t.Fatalf("kind = %v, ops = %v", kind, ops)
	}
	if !face.State().Last.IsUnset() {
		t.Fatalf("state advanced on a skipped paint: %v", face.State().Last)
	}
}

func TestFullPaintOrder(t *testing.T) {
	face, rec := newFace()
	cfg := watch.DefaultConfig()
	kind, ops := paint(face, rec, watch.WatchTime{Hour: 3, Minute: 15}, cfg)
	if kind != render.PaintFull {
		t.Fatalf("kind = %v", kind)
	}
	geo := layout.DefaultGeometry()
	dots := 2*geo.VisibleSpan + 1
	if len(ops) != 3+dots {
		t.Fatalf("%d ops, want %d", len(ops), 3+dots)
	}
	if ops[0].Kind != render.OpFillRect || ops[0].Rect != rec.Bounds() || ops[0].Color != cfg.Theme.Background {
		t.Fatalf("first op = %v", ops[0])
	}
	if ops[1].Kind != render.OpDrawPolygon {
		t.Fatalf("second op = %v", ops[1])
	}
	filled, outlined := 0, 0
	for _, op := range ops[2 : 2+dots] {
		switch op.Kind {
		case render.OpFillCircle:
			filled++
		case render.OpDrawCircle:
			outlined++
		default:
			t.Fatalf("unexpected op among divisions: %v", op)
		}
		if op.Color != cfg.Theme.Foreground {
			t.Fatalf("division colour = %v", op.Color)
		}
	}
	if filled != 4 || outlined != dots-4 {
		t.Fatalf("filled = %d, outlined = %d", filled, outlined)
	}
	if last := ops[len(ops)-1]; last.Kind != render.OpFillPolygon {
		t.Fatalf("last op = %v", last)
	}
}

func TestBadgeIsDrawnLast(t *testing.T) {
	face, rec := newFace()
	cfg := watch.Config{Theme: watch.ThemeBlack, Granularity: watch.Second, ShowHourBadge: true}
	_, ops := paint(face, rec, watch.WatchTime{Hour: 21, Minute: 5, Second: 1}, cfg)
	tail := kinds(ops[len(ops)-4:])
	want := []render.OpKind{render.OpFillPolygon, render.OpFillCircle, render.OpDrawCircle, render.OpDrawText}
	if !reflect.DeepEqual(tail, want) {
		t.Fatalf("tail = %v, want %v", tail, want)
	}
	if ops[len(ops)-3].Color != watch.ThemeBlack.Background {
		t.Fatalf("badge disc should be background coloured")
	}
	if ops[len(ops)-1].Text != "21" {
		t.Fatalf("badge text = %q", ops[len(ops)-1].Text)
	}
}

func TestSecondOnlyTickRedrawsSecondsBar(t *testing.T) {
	face, rec := newFace()
	cfg := watch.DefaultConfig()
	paint(face, rec, watch.WatchTime{Hour: 10, Minute: 30, Second: 5}, cfg)
	next := watch.WatchTime{Hour: 10, Minute: 30, Second: 6}
	kind, ops := paint(face, rec, next, cfg)
	if kind != render.PaintSeconds {
		t.Fatalf("kind = %v", kind)
	}
	if len(ops) != 1 || ops[0].Kind != render.OpFillPolygon {
		t.Fatalf("ops = %v", ops)
	}
	want := layout.SecondHand(next, rec.Bounds(), cfg, layout.DefaultGeometry())
	if !reflect.DeepEqual(ops[0].Polygon, want) {
		t.Fatalf("seconds bar = %+v, want %+v", ops[0].Polygon, want)
	}
}

func TestSecondOnlyTickRestampsBadge(t *testing.T) {
	face, rec := newFace()
	cfg := watch.Config{Theme: watch.ThemeWhite, Granularity: watch.Second, ShowHourBadge: true}
	paint(face, rec, watch.WatchTime{Hour: 7, Minute: 45, Second: 0}, cfg)
	kind, ops := paint(face, rec, watch.WatchTime{Hour: 7, Minute: 45, Second: 30}, cfg)
	if kind != render.PaintSeconds {
		t.Fatalf("kind = %v", kind)
	}
	want := []render.OpKind{render.OpFillPolygon, render.OpFillCircle, render.OpDrawCircle, render.OpDrawText}
	if got := kinds(ops); !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	if ops[1].Color != watch.ThemeWhite.Background || ops[3].Text != "07" {
		t.Fatalf("badge ops = %v", ops[1:])
	}
	if ops[1].Center != face.State().Badge.Center {
		t.Fatalf("badge moved: %v vs %v", ops[1].Center, face.State().Badge.Center)
	}
}

func TestMinuteChangeRepaintsEverything(t *testing.T) {
	face, rec := newFace()
	cfg := watch.DefaultConfig()
	paint(face, rec, watch.WatchTime{Hour: 10, Minute: 30, Second: 6}, cfg)
	kind, ops := paint(face, rec, watch.WatchTime{Hour: 10, Minute: 31, Second: 6}, cfg)
	if kind != render.PaintFull || ops[0].Kind != render.OpFillRect {
		t.Fatalf("kind = %v, first op = %v", kind, ops[0])
	}
}

func TestRepaintDecision(t *testing.T) {
	cfg := watch.DefaultConfig()
	cases := []struct {
		name     string
		from, to watch.WatchTime
		want     render.PaintKind
	}{
		{"same", watch.WatchTime{Hour: 8, Minute: 1, Second: 1}, watch.WatchTime{Hour: 8, Minute: 1, Second: 1}, render.PaintNone},
		{"second", watch.WatchTime{Hour: 8, Minute: 1, Second: 1}, watch.WatchTime{Hour: 8, Minute: 1, Second: 2}, render.PaintSeconds},
		{"second backwards", watch.WatchTime{Hour: 8, Minute: 1, Second: 40}, watch.WatchTime{Hour: 8, Minute: 1, Second: 20}, render.PaintSeconds},
		{"minute", watch.WatchTime{Hour: 8, Minute: 1, Second: 1}, watch.WatchTime{Hour: 8, Minute: 2, Second: 1}, render.PaintFull},
		{"hour only", watch.WatchTime{Hour: 8, Minute: 1, Second: 1}, watch.WatchTime{Hour: 20, Minute: 1, Second: 1}, render.PaintFull},
		{"backwards jump", watch.WatchTime{Hour: 8, Minute: 1, Second: 0}, watch.WatchTime{Hour: 7, Minute: 59, Second: 59}, render.PaintFull},
		{"minute and second", watch.WatchTime{Hour: 8, Minute: 1, Second: 59}, watch.WatchTime{Hour: 8, Minute: 2, Second: 0}, render.PaintFull},
	}
	for _, tc := range cases {
		face, rec := newFace()
		paint(face, rec, tc.from, cfg)
		if got, _ := paint(face, rec, tc.to, cfg); got != tc.want {
			t.Fatalf("%s: kind = %v, want %v", tc.name, got, tc.want)
		}
		if face.State().Last != tc.to || face.State().ForceFull {
			t.Fatalf("%s: state = %+v", tc.name, face.State())
		}
	}
}

func TestInvalidateForcesFullRepaint(t *testing.T) {
	face, rec := newFace()
	cfg := watch.DefaultConfig()
	tm := watch.WatchTime{Hour: 12, Minute: 0, Second: 0}
	paint(face, rec, tm, cfg)
	face.Invalidate()
	if kind, _ := paint(face, rec, tm, cfg); kind != render.PaintFull {
		t.Fatalf("kind after Invalidate = %v", kind)
	}
	if kind, _ := paint(face, rec, tm, cfg); kind != render.PaintNone {
		t.Fatalf("force flag not cleared, kind = %v", kind)
	}
}

func TestConfigChangeForcesFullRepaint(t *testing.T) {
	face, rec := newFace()
	cfg := watch.DefaultConfig()
	paint(face, rec, watch.WatchTime{Hour: 1, Minute: 1, Second: 1}, cfg)
	cfg.Theme = watch.ThemeBlack
	kind, ops := paint(face, rec, watch.WatchTime{Hour: 1, Minute: 1, Second: 2}, cfg)
	if kind != render.PaintFull || ops[0].Color != watch.ThemeBlack.Background {
		t.Fatalf("kind = %v, first op = %v", kind, ops[0])
	}
}

func TestUnsetMidStreamKeepsState(t *testing.T) {
	face, rec := newFace()
	cfg := watch.DefaultConfig()
	paint(face, rec, watch.WatchTime{Hour: 6, Minute: 6, Second: 6}, cfg)
	if kind, _ := paint(face, rec, watch.Unset, cfg); kind != render.PaintSkipped {
		t.Fatalf("kind = %v", kind)
	}
	if kind, _ := paint(face, rec, watch.WatchTime{Hour: 6, Minute: 6, Second: 7}, cfg); kind != render.PaintSeconds {
		t.Fatalf("kind after unset = %v", kind)
	}
}

func TestDrawUsesSnapshot(t *testing.T) {
	face, rec := newFace()
	snap := state.State{Time: watch.WatchTime{Hour: 2, Minute: 2, Second: 2}, Face: watch.DefaultConfig()}
	if kind := face.Draw(rec, snap); kind != render.PaintFull {
		t.Fatalf("kind = %v", kind)
	}
	if face.State().Pivot != layout.Pivot(snap.Time, rec.Bounds(), layout.DefaultGeometry()) {
		t.Fatalf("pivot not recorded")
	}
}
