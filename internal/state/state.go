// Package state holds the dashboard's AppState and the Store that owns it.
//
// The store is the single mutation point: every change goes through Update
// or UpdateIf, which merge a Patch, re-render the whole state and hand the
// markup to the Mount.
package state

import "github.com/ziadkadry99/marsdash/internal/rover"

// Status is the lifecycle of the fetch for the selected rover.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusEmpty   Status = "empty"
	StatusFailed  Status = "failed"
)

// FetchState describes the data for the selected rover. Payload is set only
// when Status is StatusLoaded and Err only when Status is StatusFailed.
// Payloads are never mutated after they are stored.
type FetchState struct {
	Status  Status
	Payload *rover.Payload
	Err     string
}

// Idle is the fetch state of a rover that has not been requested yet.
func Idle() FetchState { return FetchState{Status: StatusIdle} }

// AppState is everything the dashboard shows.
type AppState struct {
	SelectedRover string
	Fetch         FetchState
	Rovers        []string

	// Generation changes every time SelectedRover changes value. Fetch
	// results carry the generation they were issued for.
	Generation uint64
}

// Initial returns the startup state: no selection, nothing fetched.
func Initial(rovers []string) AppState {
	return AppState{
		Fetch:  Idle(),
		Rovers: append([]string(nil), rovers...),
	}
}

// HasSelection reports whether a rover is selected.
func (s AppState) HasSelection() bool { return s.SelectedRover != "" }

// clone copies the parts of s a reader could mutate.
func (s AppState) clone() AppState {
	s.Rovers = append([]string(nil), s.Rovers...)
	return s
}

// Patch is a partial AppState. Nil fields are preserved by Update.
type Patch struct {
	SelectedRover *string
	Fetch         *FetchState
}

// Select is the patch applied when the user picks a rover. It touches only
// the selection.
func Select(name string) Patch {
	return Patch{SelectedRover: &name}
}

// Back clears the selection and the fetched data together.
func Back() Patch {
	empty := ""
	idle := Idle()
	return Patch{SelectedRover: &empty, Fetch: &idle}
}

// WithFetch sets only the fetch state.
func WithFetch(fs FetchState) Patch {
	return Patch{Fetch: &fs}
}

// apply merges p into s. A selection change without an explicit fetch state
// resets the fetch to idle, so data never outlives the rover it belongs to.
func (s AppState) apply(p Patch) AppState {
	if p.SelectedRover != nil && *p.SelectedRover != s.SelectedRover {
		s.SelectedRover = *p.SelectedRover
		s.Generation++
		if p.Fetch == nil {
			s.Fetch = Idle()
		}
	}
	if p.Fetch != nil {
		s.Fetch = *p.Fetch
	}
	if s.SelectedRover == "" {
		s.Fetch = Idle()
	}
	return s
}
