package watch

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WatchTime is the wall-clock snapshot delivered once per tick.
// Hour < 0 means no time has been received yet.
type WatchTime struct {
	Hour   int
	Minute int
	Second int
}

// Unset is the value held before the first tick arrives.
var Unset = WatchTime{Hour: -1, Minute: -1, Second: -1}

func FromClock(t time.Time) WatchTime {
	hour, minute, second := t.Clock()
	return WatchTime{Hour: hour, Minute: minute, Second: second}
}

func (t WatchTime) IsUnset() bool { return t.Hour < 0 }

// SameMinute reports whether hour and minute match. Seconds are ignored.
func (t WatchTime) SameMinute(other WatchTime) bool {
	return t.Hour == other.Hour && t.Minute == other.Minute
}

// Normalize wraps out-of-range fields into 0..23 / 0..59 so a misbehaving
// source still yields a drawable face. An unset time is returned unchanged.
func (t WatchTime) Normalize() WatchTime {
	if t.IsUnset() {
		return t
	}
	return WatchTime{
		Hour:   wrap(t.Hour, 24),
		Minute: wrap(t.Minute, 60),
		Second: wrap(t.Second, 60),
	}
}

// Hour12 is the hour on a twelve hour dial; 12 o'clock is 0.
func (t WatchTime) Hour12() int { return t.Hour % 12 }

func (t WatchTime) IsAM() bool { return t.Hour < 12 }

func (t WatchTime) String() string {
	if t.IsUnset() {
		return "--:--:--"
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Parse reads "HH:MM" or "HH:MM:SS" in 24 hour form.
func Parse(s string) (WatchTime, error) {
	var t WatchTime
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Unset, fmt.Errorf("time %q: want HH:MM[:SS]", s)
	}
	fields := []*int{&t.Hour, &t.Minute, &t.Second}
	limits := []int{24, 60, 60}
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v >= limits[i] {
			return Unset, fmt.Errorf("time %q: bad field %q", s, p)
		}
		*fields[i] = v
	}
	return t, nil
}
