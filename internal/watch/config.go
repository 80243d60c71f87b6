package watch

import (
	"fmt"
	"image/color"
	"strings"
	"time"
)

// Granularity selects how often the face is redrawn.
type Granularity int

const (
	Second Granularity = iota
	Minute
)

func (g Granularity) Interval() time.Duration {
	if g == Minute {
		return time.Minute
	}
	return time.Second
}

func (g Granularity) String() string {
	if g == Minute {
		return "minute"
	}
	return "second"
}

func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "second":
		return Second, nil
	case "minute":
		return Minute, nil
	default:
		return Second, fmt.Errorf("unknown interval %q", s)
	}
}

// Theme is the background/foreground colour pair used for every primitive.
type Theme struct {
	Name       string
	Background color.RGBA
	Foreground color.RGBA
}

var (
	ThemeBlack = Theme{
		Name:       "black",
		Background: color.RGBA{A: 0xFF},
		Foreground: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	}
	ThemeWhite = Theme{
		Name:       "white",
		Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Foreground: color.RGBA{A: 0xFF},
	}
)

func ThemeByName(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black":
		return ThemeBlack, nil
	case "white":
		return ThemeWhite, nil
	default:
		return ThemeWhite, fmt.Errorf("unknown theme %q", name)
	}
}

// Config holds the user-selectable face options.
type Config struct {
	Theme         Theme
	Granularity   Granularity
	ShowHourBadge bool
}

func DefaultConfig() Config {
	return Config{Theme: ThemeWhite, Granularity: Second}
}
