package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/quarterface/quarterface/internal/clock"
	"github.com/quarterface/quarterface/internal/watch"
)

// SimControl feeds the simulated clock, either from the replay script or
// from the /sim endpoints.
type SimControl struct {
	source *clock.ManualSource

	mu   sync.Mutex
	last watch.WatchTime
}

func NewSimControl(source *clock.ManualSource) *SimControl {
	return &SimControl{source: source, last: watch.Unset}
}

// Tick pushes t and waits until the app loop has taken it.
func (c *SimControl) Tick(ctx context.Context, t watch.WatchTime) error {
	if err := c.source.Push(ctx, t); err != nil {
		return err
	}
	c.mu.Lock()
	c.last = t
	c.mu.Unlock()
	return nil
}

// Step advances the last pushed time by seconds and pushes it.
func (c *SimControl) Step(ctx context.Context, seconds int) (watch.WatchTime, error) {
	c.mu.Lock()
	last := c.last
	c.mu.Unlock()
	if last.IsUnset() {
		last = watch.WatchTime{}
	}
	t := clock.Sequence(last, 2, seconds)[1]
	return t, c.Tick(ctx, t)
}

func (c *SimControl) Replay(ctx context.Context, script []watch.WatchTime) error {
	for _, t := range script {
		if err := c.Tick(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (c *SimControl) Last() watch.WatchTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

type simTickRequest struct {
	// Time is HH:MM[:SS]; empty steps the last time by Step seconds.
	Time string `json:"time"`
	Step int    `json:"step"`
}

type simTickResponse struct {
	Time string `json:"time"`
}

func registerSimEndpoints(control *SimControl) func(r chi.Router) {
	return func(r chi.Router) {
		r.Post("/sim/tick", func(w http.ResponseWriter, r *http.Request) {
			var req simTickRequest
			if r.ContentLength != 0 {
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					writeSimError(w, http.StatusBadRequest, err.Error())
					return
				}
			}

			var t watch.WatchTime
			var err error
			if req.Time != "" {
				if t, err = watch.Parse(req.Time); err != nil {
					writeSimError(w, http.StatusBadRequest, err.Error())
					return
				}
				err = control.Tick(r.Context(), t)
			} else {
				if req.Step == 0 {
					req.Step = 1
				}
				t, err = control.Step(r.Context(), req.Step)
			}
			if err != nil {
				writeSimError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			writeSimJSON(w, http.StatusOK, simTickResponse{Time: t.String()})
		})
		r.Get("/sim/last", func(w http.ResponseWriter, r *http.Request) {
			writeSimJSON(w, http.StatusOK, simTickResponse{Time: control.Last().String()})
		})
	}
}

func writeSimJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeSimError(w http.ResponseWriter, status int, message string) {
	writeSimJSON(w, status, map[string]any{"error": "sim_error", "message": message})
}
