package watch

import (
	"testing"
	"time"
)

func TestParseGranularity(t *testing.T) {
	for in, want := range map[string]Granularity{"second": Second, "Minute": Minute, " minute ": Minute} {
		got, err := ParseGranularity(in)
		if err != nil || got != want {
			t.Fatalf("ParseGranularity(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseGranularity("hour"); err == nil {
		t.Fatalf("expected error for hour")
	}
	if Minute.Interval() != time.Minute || Second.Interval() != time.Second {
		t.Fatalf("unexpected intervals")
	}
}

func TestThemeByName(t *testing.T) {
	th, err := ThemeByName("black")
	if err != nil || th != ThemeBlack {
		t.Fatalf("ThemeByName(black) = %+v, %v", th, err)
	}
	if ThemeBlack.Background == ThemeBlack.Foreground {
		t.Fatalf("black theme has no contrast")
	}
	if _, err := ThemeByName("sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Theme != ThemeWhite || cfg.Granularity != Second || cfg.ShowHourBadge {
		t.Fatalf("DefaultConfig = %+v", cfg)
	}
}
