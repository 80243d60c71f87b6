// Package clock produces the wall-clock ticks that drive the watch face.
package clock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quarterface/quarterface/internal/watch"
	"github.com/robfig/cron/v3"
)

// Source delivers watch times on Ticks. Slow consumers lose ticks rather than
// stalling the source; the next tick carries the current time anyway.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Ticks() <-chan watch.WatchTime
	SetGranularity(g watch.Granularity) error
}

// Schedule returns the six-field cron spec that fires once per g.
func Schedule(g watch.Granularity) string {
	if g == watch.Minute {
		return "0 * * * * *"
	}
	return "* * * * * *"
}

// CronSource ticks on a cron schedule in Location. The first tick is sent as
// soon as it starts so the face does not wait up to a minute for content.
type CronSource struct {
	Location *time.Location
	Now      func() time.Time
	Logger   interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	mu          sync.Mutex
	cron        *cron.Cron
	entry       cron.EntryID
	granularity watch.Granularity
	ticks       chan watch.WatchTime
}

func NewCronSource(loc *time.Location, g watch.Granularity) *CronSource {
	if loc == nil {
		loc = time.Local
	}
	return &CronSource{
		Location:    loc,
		Now:         time.Now,
		granularity: g,
		ticks:       make(chan watch.WatchTime, 1),
	}
}

func (s *CronSource) Ticks() <-chan watch.WatchTime { return s.ticks }

func (s *CronSource) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return errors.New("clock already started")
	}
	s.cron = cron.New(cron.WithSeconds(), cron.WithLocation(s.Location))
	if err := s.schedule(); err != nil {
		s.cron = nil
		return err
	}
	s.cron.Start()
	s.log("clock started, schedule %q in %s", Schedule(s.granularity), s.Location)
	s.emit()
	return nil
}

func (s *CronSource) Stop() error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return nil
	}
	<-c.Stop().Done()
	return nil
}

// SetGranularity swaps the schedule in place and ticks once immediately.
func (s *CronSource) SetGranularity(g watch.Granularity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g == s.granularity {
		return nil
	}
	s.granularity = g
	if s.cron == nil {
		return nil
	}
	s.cron.Remove(s.entry)
	if err := s.schedule(); err != nil {
		return err
	}
	s.log("clock schedule now %q", Schedule(g))
	s.emit()
	return nil
}

func (s *CronSource) schedule() error {
	id, err := s.cron.AddFunc(Schedule(s.granularity), s.emit)
	if err != nil {
		return fmt.Errorf("schedule clock: %w", err)
	}
	s.entry = id
	return nil
}

func (s *CronSource) emit() {
	t := watch.FromClock(s.Now().In(s.Location))
	select {
	case s.ticks <- t:
	default:
	}
}

func (s *CronSource) log(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("clock", format, args...)
	}
}

// ManualSource hands out whatever is pushed to it. The simulator and tests
// use it to replay a fixed tick sequence.
type ManualSource struct {
	mu          sync.Mutex
	ticks       chan watch.WatchTime
	granularity watch.Granularity
}

func NewManualSource(buffer int) *ManualSource {
	return &ManualSource{ticks: make(chan watch.WatchTime, buffer)}
}

func (s *ManualSource) Start(ctx context.Context) error { return nil }
func (s *ManualSource) Stop() error                     { return nil }

func (s *ManualSource) Ticks() <-chan watch.WatchTime { return s.ticks }

func (s *ManualSource) SetGranularity(g watch.Granularity) error {
	s.mu.Lock()
	s.granularity = g
	s.mu.Unlock()
	return nil
}

func (s *ManualSource) Granularity() watch.Granularity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.granularity
}

// Push blocks until t is accepted or ctx is done.
func (s *ManualSource) Push(ctx context.Context, t watch.WatchTime) error {
	select {
	case s.ticks <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

const secondsPerDay = 24 * 60 * 60

// Sequence returns n times starting at start, each step seconds apart. step
// may be negative; either way the times wrap around midnight.
func Sequence(start watch.WatchTime, n, step int) []watch.WatchTime {
	out := make([]watch.WatchTime, 0, n)
	start = start.Normalize()
	secs := (start.Hour*60+start.Minute)*60 + start.Second
	for i := 0; i < n; i++ {
		s := ((secs+i*step)%secondsPerDay + secondsPerDay) % secondsPerDay
		out = append(out, watch.WatchTime{Hour: s / 3600, Minute: s / 60 % 60, Second: s % 60})
	}
	return out
}
