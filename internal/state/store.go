package state

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Renderer turns a state snapshot into markup.
type Renderer func(AppState) string

// Mount receives the markup of every render and replaces what it shows.
type Mount interface {
	Replace(html string) error
}

// MountFunc adapts a function to Mount.
type MountFunc func(html string) error

func (f MountFunc) Replace(html string) error { return f(html) }

// Store owns one AppState. Updates are serialized so that merge and render
// happen as a single step. The rendered markup is written to the mount after
// the state lock is released, so a slow mount never blocks state changes.
// Mount writes stay in update order; a render older than the one already
// mounted is dropped.
type Store struct {
	mu     sync.Mutex
	state  AppState
	seq    uint64 // renders produced, guarded by mu
	render Renderer

	mountMu sync.Mutex
	mounted uint64 // seq of the last mounted render, guarded by mountMu
	mount   Mount

	logger logrus.FieldLogger
}

// NewStore creates a Store. mount may be nil, in which case renders are
// discarded.
func NewStore(initial AppState, render Renderer, mount Mount, logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		state:  initial.clone(),
		render: render,
		mount:  mount,
		logger: logger,
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Render returns the markup for the current state without mounting it.
func (s *Store) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render(s.state.clone())
}

// Refresh re-renders the current state into the mount.
func (s *Store) Refresh() {
	s.mu.Lock()
	seq, html := s.renderLocked()
	s.mu.Unlock()
	s.write(seq, html)
}

// Update shallow-merges p into the state, re-renders and mounts the result.
// It returns the new state.
func (s *Store) Update(p Patch) AppState {
	s.mu.Lock()
	s.state = s.state.apply(p)
	next := s.state.clone()
	seq, html := s.renderLocked()
	s.mu.Unlock()

	s.write(seq, html)
	return next
}

// UpdateIf applies p only when cond holds for the current state. Nothing is
// rendered when cond fails.
func (s *Store) UpdateIf(cond func(AppState) bool, p Patch) (AppState, bool) {
	s.mu.Lock()
	if !cond(s.state.clone()) {
		cur := s.state.clone()
		s.mu.Unlock()
		return cur, false
	}
	s.state = s.state.apply(p)
	next := s.state.clone()
	seq, html := s.renderLocked()
	s.mu.Unlock()

	s.write(seq, html)
	return next, true
}

// renderLocked must be called with mu held.
func (s *Store) renderLocked() (uint64, string) {
	s.seq++
	return s.seq, s.render(s.state.clone())
}

func (s *Store) write(seq uint64, html string) {
	if s.mount == nil {
		return
	}
	s.mountMu.Lock()
	defer s.mountMu.Unlock()
	if seq <= s.mounted {
		return
	}
	s.mounted = seq
	if err := s.mount.Replace(html); err != nil {
		s.logger.WithError(err).Warn("mount rejected render")
	}
}
