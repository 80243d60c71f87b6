package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/quarterface/quarterface/internal/clock"
	"github.com/quarterface/quarterface/internal/render"
	"github.com/quarterface/quarterface/internal/state"
	"github.com/quarterface/quarterface/internal/system"
	"github.com/quarterface/quarterface/internal/watch"
	"github.com/quarterface/quarterface/internal/web"
)

// App owns the tick loop. Ticks and face changes are serialized on one
// goroutine, so the screen and renderer never see concurrent draws.
type App struct {
	Store  *state.Store
	Render render.Renderer
	Screen render.Screen
	Clock  clock.Source
	Web    web.Server
	Logger Logger

	// Console switches the active VT to graphics mode while running.
	Console bool
	Debug   bool

	faceCh   chan struct{}
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, screen render.Screen, source clock.Source, webServer web.Server) *App {
	return &App{
		Store:  store,
		Render: renderer,
		Screen: screen,
		Clock:  source,
		Web:    webServer,
		Logger: NoopLogger{},
		faceCh: make(chan struct{}, 1),
		exitCh: make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// UpdateFace stores the new options and asks the loop to repaint with them.
// It is safe to call from any goroutine; bursts collapse into one repaint.
func (app *App) UpdateFace(face watch.Config) {
	app.Store.SetFace(face)
	app.Refresh()
}

// ApplyFace edits the current options atomically with fn and, on success,
// asks the loop to repaint with the result.
func (app *App) ApplyFace(fn func(watch.Config) (watch.Config, error)) (watch.Config, error) {
	face, err := app.Store.UpdateFace(fn)
	if err != nil {
		return face, err
	}
	app.Refresh()
	return face, nil
}

// Refresh asks the loop for a full repaint with the current options.
func (app *App) Refresh() {
	select {
	case app.faceCh <- struct{}{}:
	default:
	}
}

func (app *App) Start(ctx context.Context) error {
	if app.Store == nil || app.Screen == nil || app.Clock == nil {
		return errors.New("app needs a store, a screen and a clock")
	}
	if app.faceCh == nil {
		app.faceCh = make(chan struct{}, 1)
	}
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	app.exitOnce.Store(false)

	if app.Render == nil {
		app.Render = &render.NoopRenderer{}
	}
	if fb, ok := app.Render.(*render.FBRenderer); ok {
		fb.Logger = app.Logger
		fb.Debug = app.Debug
	}
	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		return err
	}
	defer app.Render.Stop()

	if app.Console {
		console := system.Console{Logger: app.Logger}
		console.Enter()
		defer console.Leave()
	}

	if err := app.Screen.Start(ctx); err != nil {
		return err
	}
	defer app.Screen.Stop()
	app.Render.SetScreen(app.Screen)

	if app.Web != nil {
		if err := app.Web.Start(ctx); err != nil {
			app.Logger.Errorf("web", "start error: %v", err)
			return err
		}
		defer app.Web.Stop()
	}

	granularity := app.Store.Snapshot().Face.Granularity
	if err := app.Clock.SetGranularity(granularity); err != nil {
		return err
	}
	if err := app.Clock.Start(ctx); err != nil {
		app.Logger.Errorf("clock", "start error: %v", err)
		return err
	}
	defer app.Clock.Stop()

	app.Logger.Infof("app", "running, interval=%s", granularity)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case t := <-app.Clock.Ticks():
			app.Store.SetTime(t)
			app.redraw()
		case <-app.faceCh:
			face := app.Store.Snapshot().Face
			if face.Granularity != granularity {
				if err := app.Clock.SetGranularity(face.Granularity); err != nil {
					app.Logger.Errorf("clock", "switch to %s: %v", face.Granularity, err)
				} else {
					granularity = face.Granularity
				}
			}
			app.Screen.Invalidate()
			app.redraw()
		}
	}
}

func (app *App) redraw() {
	snap := app.Store.Snapshot()
	kind := app.Render.Redraw(snap)
	if !kind.Drew() {
		return
	}
	app.Store.RecordPaint(kind.String())
	if app.Debug {
		app.Logger.Infof("app", "%s paint at %s", kind, snap.Time)
	}
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
