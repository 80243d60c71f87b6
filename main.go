package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quarterface/quarterface/internal/app"
	"github.com/quarterface/quarterface/internal/app/screens"
	"github.com/quarterface/quarterface/internal/clock"
	"github.com/quarterface/quarterface/internal/config"
	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/render/layout"
	"github.com/quarterface/quarterface/internal/state"
	"github.com/quarterface/quarterface/internal/system"
	"github.com/quarterface/quarterface/internal/web"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "YAML config path; created with defaults on first run")
	listen := flag.String("listen", "", "override the settings API listen address; \"off\" disables it")
	debug := flag.Bool("debug", false, "enable debug logging to ./quarterface-debug.log")
	renderOnly := flag.Bool("render-only", false, "write PNG frames to -out instead of the framebuffer")
	outDir := flag.String("out", "./frames", "frame directory for -render-only")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via QUARTERFACE_STDIO_LOG")
	flag.Parse()

	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("QUARTERFACE_STDIO_LOG")
	}
	if logPath != "" {
		if err := system.RedirectStdIO(logPath); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	var logger app.Logger = app.NoopLogger{}
	if *debug {
		f, err := os.OpenFile("./quarterface-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	cfg, err := config.Load(*configPath)
	if cfg == nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	if err != nil {
		logger.Errorf("config", "%v; continuing with what was loaded", err)
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if cfg.Listen == "off" {
		cfg.Listen = ""
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	canvas := render.CanvasBounds(cfg.CanvasWidth, cfg.CanvasHeight)
	geo := layout.DefaultGeometry()
	face := cfg.Face()
	store := state.NewStore(face)

	var renderer render.Renderer
	if *renderOnly {
		png := render.NewPNGRenderer(*outDir, canvas)
		png.Logger = logger
		renderer = png
	} else {
		renderer = render.NewFBRenderer(cfg.Framebuffer, canvas)
	}

	source := clock.NewCronSource(cfg.Location(), face.Granularity)
	source.Logger = logger

	a := app.New(store, renderer, screens.NewWatchFace(geo), source, nil)
	a.Logger = logger
	a.Debug = *debug
	a.Console = !*renderOnly

	if cfg.Listen != "" {
		server := web.NewHTTPServer(
			web.ServerConfig{ListenAddr: cfg.Listen, DevMode: cfg.Dev, SettingsURL: cfg.SettingsURL},
			web.APIV1Deps{Store: store, ApplyFace: a.ApplyFace, Canvas: canvas, Geometry: geo},
		)
		server.Logger = logger
		a.Web = server
	}

	system.WatchKeys(ctx, logger, map[uint16]func(){
		system.KeyF4: func() { a.Exit(nil) },
		system.KeyF5: a.Refresh,
	})

	fmt.Println("quarterface starting, canvas", canvas.Dx(), "x", canvas.Dy())
	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
