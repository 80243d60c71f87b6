package state

import (
	"sync"

	"github.com/quarterface/quarterface/internal/watch"
)

// State is the snapshot handed to screens and to the web API.
type State struct {
	Time watch.WatchTime
	Face watch.Config

	// Revision increases every time Face changes.
	Revision uint64

	Frames    uint64
	LastPaint string
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore(face watch.Config) *Store {
	return &Store{state: State{Time: watch.Unset, Face: face}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetTime(t watch.WatchTime) {
	store.mu.Lock()
	store.state.Time = t
	store.mu.Unlock()
}

func (store *Store) SetFace(face watch.Config) {
	store.mu.Lock()
	store.state.Face = face
	store.state.Revision++
	store.mu.Unlock()
}

// UpdateFace applies fn to the current face under the store lock, so
// concurrent partial updates cannot lose each other. An error from fn leaves
// the face and Revision unchanged.
func (store *Store) UpdateFace(fn func(watch.Config) (watch.Config, error)) (watch.Config, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	face, err := fn(store.state.Face)
	if err != nil {
		return store.state.Face, err
	}
	store.state.Face = face
	store.state.Revision++
	return face, nil
}

// RecordPaint notes the outcome of the last redraw for status reporting.
func (store *Store) RecordPaint(kind string) {
	store.mu.Lock()
	store.state.Frames++
	store.state.LastPaint = kind
	store.mu.Unlock()
}
