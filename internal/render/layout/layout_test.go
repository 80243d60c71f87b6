package layout

import (
	"image"
	"reflect"
	"testing"

	"github.com/quarterface/quarterface/internal/render/geom"
	"github.com/quarterface/quarterface/internal/watch"
)

var testCanvas = image.Rect(0, 0, 144, 168)

func filledMinutes(face Face) map[int]bool {
	out := map[int]bool{}
	for _, d := range face.Divisions {
		if d.Filled {
			out[d.Minute] = true
		}
	}
	return out
}

func TestHandRotationForEveryMinute(t *testing.T) {
	cfg := watch.DefaultConfig()
	for minute := 0; minute < 60; minute++ {
		face := Layout(watch.WatchTime{Hour: 7, Minute: minute}, testCanvas, cfg, DefaultGeometry())
		want := geom.Angle(minute * int(geom.FullCircle) / 60)
		if face.Rotation != want || face.Hand.Rotation != want {
			t.Fatalf("minute %d: rotation %d / hand %d, want %d", minute, face.Rotation, face.Hand.Rotation, want)
		}
	}
}

func TestWedgeWidthMatchesHour(t *testing.T) {
	cfg := watch.DefaultConfig()
	geo := DefaultGeometry()
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute++ {
			tm := watch.WatchTime{Hour: hour, Minute: minute}
			face := Layout(tm, testCanvas, cfg, geo)
			if len(face.Divisions) != 2*geo.VisibleSpan+1 {
				t.Fatalf("%v: %d dots, want %d", tm, len(face.Divisions), 2*geo.VisibleSpan+1)
			}
			others := 0
			currentFilled := false
			for _, d := range face.Divisions {
				if d.Minute == minute {
					currentFilled = d.Filled
					continue
				}
				if d.Filled {
					others++
				}
			}
			if others != hour%12 {
				t.Fatalf("%v: %d filled dots besides the current one, want %d", tm, others, hour%12)
			}
			if currentFilled != (hour%12 > 0) {
				t.Fatalf("%v: current dot filled = %v", tm, currentFilled)
			}
		}
	}
}

func TestWedgeMorningScenario(t *testing.T) {
	face := Layout(watch.WatchTime{Hour: 3, Minute: 15}, testCanvas, watch.DefaultConfig(), DefaultGeometry())
	if face.Rotation != 15*geom.FullCircle/60 {
		t.Fatalf("rotation = %d", face.Rotation)
	}
	want := map[int]bool{12: true, 13: true, 14: true, 15: true}
	if got := filledMinutes(face); !reflect.DeepEqual(got, want) {
		t.Fatalf("filled = %v, want %v", got, want)
	}
}

func TestWedgeAfternoonScenario(t *testing.T) {
	cfg := watch.DefaultConfig()
	geo := DefaultGeometry()
	face := Layout(watch.WatchTime{Hour: 15, Minute: 0, Second: 30}, testCanvas, cfg, geo)
	want := map[int]bool{0: true, 1: true, 2: true, 3: true}
	if got := filledMinutes(face); !reflect.DeepEqual(got, want) {
		t.Fatalf("filled = %v, want %v", got, want)
	}
	if got, want := -face.Second.Points[0].Y, 30*geo.HandLength/59; got != want {
		t.Fatalf("seconds length = %d, want %d", got, want)
	}
}

func TestWedgeWrapsAroundTheHour(t *testing.T) {
	face := Layout(watch.WatchTime{Hour: 5, Minute: 2}, testCanvas, watch.DefaultConfig(), DefaultGeometry())
	want := map[int]bool{57: true, 58: true, 59: true, 0: true, 1: true, 2: true}
	if got := filledMinutes(face); !reflect.DeepEqual(got, want) {
		t.Fatalf("filled = %v, want %v", got, want)
	}
	face = Layout(watch.WatchTime{Hour: 23, Minute: 55}, testCanvas, watch.DefaultConfig(), DefaultGeometry())
	filled := filledMinutes(face)
	for _, m := range []int{55, 56, 59, 0, 5, 6} {
		if !filled[m] {
			t.Fatalf("23:55: minute %d should be filled (got %v)", m, filled)
		}
	}
	if filled[7] || filled[54] {
		t.Fatalf("23:55: wedge too wide: %v", filled)
	}
}

func TestNoonLeavesCurrentDotEmpty(t *testing.T) {
	for _, hour := range []int{0, 12} {
		face := Layout(watch.WatchTime{Hour: hour, Minute: 40}, testCanvas, watch.DefaultConfig(), DefaultGeometry())
		if got := filledMinutes(face); len(got) != 0 {
			t.Fatalf("hour %d: filled = %v, want none", hour, got)
		}
	}
}

func TestDivisionsOrderAndSize(t *testing.T) {
	geo := DefaultGeometry()
	face := Layout(watch.WatchTime{Hour: 9, Minute: 10}, testCanvas, watch.DefaultConfig(), geo)
	for i, d := range face.Divisions {
		wantMinute := (10 - geo.VisibleSpan + i + 60) % 60
		if d.Minute != wantMinute {
			t.Fatalf("dot %d minute = %d, want %d", i, d.Minute, wantMinute)
		}
		wantRadius := geo.SmallDot
		if wantMinute%5 == 0 {
			wantRadius = geo.LargeDot
		}
		if d.Radius != wantRadius || d.Large != (wantMinute%5 == 0) {
			t.Fatalf("dot %d radius = %d large = %v", i, d.Radius, d.Large)
		}
		want := geom.Polar(face.Pivot, geo.DivisionRadius, geom.MinuteAngle(d.Minute))
		if d.Center != want {
			t.Fatalf("dot %d centre = %v, want %v", i, d.Center, want)
		}
	}
}

func TestLayoutIsPure(t *testing.T) {
	cfg := watch.Config{Theme: watch.ThemeBlack, Granularity: watch.Second, ShowHourBadge: true}
	tm := watch.WatchTime{Hour: 18, Minute: 44, Second: 12}
	a := Layout(tm, testCanvas, cfg, DefaultGeometry())
	b := Layout(tm, testCanvas, cfg, DefaultGeometry())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("layout differs between identical calls:\n%+v\n%+v", a, b)
	}
}

func TestSecondLengthMonotonic(t *testing.T) {
	cfg := watch.DefaultConfig()
	geo := DefaultGeometry()
	prev := -1
	for second := 0; second < 60; second++ {
		l := SecondLength(second, cfg, geo)
		if l < prev {
			t.Fatalf("second %d: length %d shorter than %d", second, l, prev)
		}
		prev = l
	}
	if SecondLength(0, cfg, geo) != 0 || SecondLength(59, cfg, geo) != geo.HandLength {
		t.Fatalf("range = %d..%d", SecondLength(0, cfg, geo), SecondLength(59, cfg, geo))
	}
}

func TestMinuteGranularityFreezesSecondsBar(t *testing.T) {
	cfg := watch.Config{Theme: watch.ThemeWhite, Granularity: watch.Minute}
	geo := DefaultGeometry()
	for _, second := range []int{0, 17, 59} {
		poly := SecondHand(watch.WatchTime{Hour: 1, Minute: 2, Second: second}, testCanvas, cfg, geo)
		if poly.Points[0].Y != -geo.HandLength || poly.Points[1].Y != -geo.HandLength {
			t.Fatalf("second %d: tip at %v", second, poly.Points[:2])
		}
	}
}

func TestSecondHandKeepsBase(t *testing.T) {
	cfg := watch.DefaultConfig()
	geo := DefaultGeometry()
	a := SecondHand(watch.WatchTime{Hour: 4, Minute: 20, Second: 5}, testCanvas, cfg, geo)
	b := SecondHand(watch.WatchTime{Hour: 4, Minute: 20, Second: 50}, testCanvas, cfg, geo)
	if a.Points[2] != b.Points[2] || a.Points[3] != b.Points[3] || a.Offset != b.Offset {
		t.Fatalf("base moved: %v vs %v", a, b)
	}
	if a.Points[0] == b.Points[0] {
		t.Fatalf("tip did not move")
	}
}

func TestPivotKeepsHandOnCanvas(t *testing.T) {
	geo := DefaultGeometry()
	cfg := watch.DefaultConfig()
	canvases := []image.Rectangle{
		image.Rect(0, 0, 120, 120),
		testCanvas,
		image.Rect(0, 0, 200, 200),
		image.Rect(10, 20, 131, 320),
	}
	for _, canvas := range canvases {
		allowed := image.Rect(canvas.Min.X-geo.ClampMargin, canvas.Min.Y-geo.ClampMargin,
			canvas.Max.X+geo.ClampMargin, canvas.Max.Y+geo.ClampMargin)
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute++ {
				tm := watch.WatchTime{Hour: hour, Minute: minute, Second: 59}
				face := Layout(tm, canvas, cfg, geo)
				for _, poly := range []geom.Polygon{face.Hand, face.Second} {
					for _, p := range poly.Transformed() {
						if !p.In(allowed) {
							t.Fatalf("canvas %v, %v: vertex %v outside %v", canvas, tm, p, allowed)
						}
					}
				}
			}
		}
	}
}

func TestHourBadge(t *testing.T) {
	geo := DefaultGeometry()
	cfg := watch.Config{Theme: watch.ThemeWhite, ShowHourBadge: true}
	face := Layout(watch.WatchTime{Hour: 15, Minute: 0}, testCanvas, cfg, geo)
	if face.Badge == nil {
		t.Fatalf("badge missing")
	}
	if face.Badge.Text != "15" {
		t.Fatalf("badge text = %q", face.Badge.Text)
	}
	if want := geom.Polar(face.Pivot, geo.DivisionRadius, face.Rotation); face.Badge.Center != want {
		t.Fatalf("badge centre = %v, want %v", face.Badge.Center, want)
	}
	if !face.Badge.Center.In(face.Badge.TextRect) {
		t.Fatalf("text rect %v does not contain centre", face.Badge.TextRect)
	}

	cfg.ShowHourBadge = false
	if Layout(watch.WatchTime{Hour: 15}, testCanvas, cfg, geo).Badge != nil {
		t.Fatalf("badge drawn while disabled")
	}
}

func TestOutOfRangeTimeIsWrapped(t *testing.T) {
	cfg := watch.DefaultConfig()
	geo := DefaultGeometry()
	got := Layout(watch.WatchTime{Hour: 25, Minute: 75, Second: 61}, testCanvas, cfg, geo)
	want := Layout(watch.WatchTime{Hour: 1, Minute: 15, Second: 1}, testCanvas, cfg, geo)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("wrapped layout differs")
	}
}
