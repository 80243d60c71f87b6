package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/quarterface/quarterface/internal/app"
	"github.com/quarterface/quarterface/internal/app/screens"
	"github.com/quarterface/quarterface/internal/clock"
	"github.com/quarterface/quarterface/internal/config"
	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/render/layout"
	"github.com/quarterface/quarterface/internal/state"
	"github.com/quarterface/quarterface/internal/watch"
	"github.com/quarterface/quarterface/internal/web"
)

type simOptions struct {
	Start  watch.WatchTime
	Ticks  int
	Step   int
	OutDir string

	Theme     string
	Interval  string
	HourDigit string

	// Listen keeps the simulator running with the settings API and the
	// /sim endpoints after the script has been replayed.
	Listen string
	Dev    bool
}

func main() {
	start := flag.String("start", "10:30:00", "first simulated time, HH:MM[:SS]")
	ticks := flag.Int("ticks", 90, "number of ticks to replay")
	step := flag.Duration("step", time.Second, "simulated time between ticks")
	outDir := flag.String("out", "./sim-frames", "directory for PNG frames and trace.log")
	theme := flag.String("theme", "white", "black | white")
	interval := flag.String("interval", "second", "second | minute")
	hourDigit := flag.String("hour-digit", "hide", "show | hide")
	listen := flag.String("listen", "", "serve the settings API and /sim endpoints here after the replay")
	dev := flag.Bool("dev", false, "enable permissive CORS")
	flag.Parse()

	t, err := watch.Parse(*start)
	if err != nil {
		fmt.Println("start time:", err)
		os.Exit(2)
	}
	opts := simOptions{
		Start:     t,
		Ticks:     *ticks,
		Step:      int(step.Seconds()),
		OutDir:    *outDir,
		Theme:     *theme,
		Interval:  *interval,
		HourDigit: *hourDigit,
		Listen:    *listen,
		Dev:       *dev,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("simulator error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts simOptions, stdout io.Writer) error {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}
	trace, err := os.Create(filepath.Join(opts.OutDir, "trace.log"))
	if err != nil {
		return err
	}
	defer trace.Close()

	faceCfg := config.DefaultConfig()
	faceCfg.Theme, faceCfg.Interval, faceCfg.HourDigit = opts.Theme, opts.Interval, opts.HourDigit
	faceCfg.Normalize()

	canvas := render.CanvasBounds(0, 0)
	geo := layout.DefaultGeometry()
	store := state.NewStore(faceCfg.Face())
	logger := app.NewFileLogger(stdout)

	renderer := render.NewPNGRenderer(opts.OutDir, canvas)
	renderer.Trace = trace
	renderer.Logger = logger

	// Unbuffered, so a finished Push means the loop has the tick.
	source := clock.NewManualSource(0)
	control := NewSimControl(source)

	a := app.New(store, renderer, screens.NewWatchFace(geo), source, nil)
	a.Logger = logger
	if opts.Listen != "" {
		server := web.NewHTTPServer(
			web.ServerConfig{ListenAddr: opts.Listen, DevMode: opts.Dev},
			web.APIV1Deps{Store: store, ApplyFace: a.ApplyFace, Canvas: canvas, Geometry: geo},
		)
		server.Routes = append(server.Routes, registerSimEndpoints(control))
		server.Logger = logger
		a.Web = server
	}

	// The replay stops pushing as soon as the app loop is gone.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- a.Start(runCtx)
		cancel()
	}()

	step := opts.Step
	if step <= 0 {
		step = 1
	}
	if err := control.Replay(runCtx, clock.Sequence(opts.Start, opts.Ticks, step)); err != nil {
		a.Exit(err)
		return <-done
	}
	fmt.Fprintf(stdout, "replayed %d ticks from %s into %s\n", opts.Ticks, opts.Start, opts.OutDir)

	if opts.Listen == "" {
		a.Exit(nil)
	} else {
		fmt.Fprintln(stdout, "serving on", opts.Listen, "until interrupted")
	}
	err = <-done
	fmt.Fprintf(stdout, "%d frames written\n", renderer.Frames())
	return err
}
