// Package controller turns user actions into store updates and runs the
// fetch side effect those updates call for.
//
// Rendering never starts a fetch. After each action the controller looks at
// the new state, and when a rover is selected with an idle fetch it moves the
// state to loading and starts exactly one request tagged with the current
// selection generation. A result is applied only while that generation is
// still current; anything else is discarded.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/marsdash/internal/activity"
	"github.com/ziadkadry99/marsdash/internal/fetcher"
	"github.com/ziadkadry99/marsdash/internal/rover"
	"github.com/ziadkadry99/marsdash/internal/state"
)

// ErrUnknownRover is returned when a select action names a rover that is not
// in the catalog.
var ErrUnknownRover = errors.New("unknown rover")

// ErrUnknownAction is returned for action types the controller does not handle.
var ErrUnknownAction = errors.New("unknown action")

// ActionType names a user action.
type ActionType string

const (
	ActionSelect ActionType = "select"
	ActionBack   ActionType = "back"
	ActionRetry  ActionType = "retry"
)

// Action is one user interaction.
type Action struct {
	Type  ActionType
	Rover string
}

// Recorder persists fetch outcomes. *activity.Store implements it.
type Recorder interface {
	Log(ctx context.Context, entry activity.Entry) error
}

// Options configures a Controller.
type Options struct {
	SessionID string
	Recorder  Recorder // optional
	Logger    logrus.FieldLogger
}

// Controller is the single mutation entry point for one session.
type Controller struct {
	store     *state.Store
	fetcher   fetcher.Fetcher
	recorder  Recorder
	logger    logrus.FieldLogger
	sessionID string

	ctx    context.Context
	stop   context.CancelFunc
	mu     sync.Mutex
	cancel context.CancelFunc // in-flight fetch
	wg     sync.WaitGroup
}

// New creates a Controller driving store. Fetches run under ctx; Close
// cancels them.
func New(ctx context.Context, store *state.Store, f fetcher.Fetcher, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if opts.SessionID != "" {
		logger = logger.WithField("session", opts.SessionID)
	}
	cctx, stop := context.WithCancel(ctx)
	return &Controller{
		store:     store,
		fetcher:   f,
		recorder:  opts.Recorder,
		logger:    logger,
		sessionID: opts.SessionID,
		ctx:       cctx,
		stop:      stop,
	}
}

// Store returns the store the controller drives.
func (c *Controller) Store() *state.Store { return c.store }

// Dispatch applies a user action and runs any effect the new state needs.
func (c *Controller) Dispatch(a Action) error {
	switch a.Type {
	case ActionSelect:
		if !c.inCatalog(a.Rover) {
			return fmt.Errorf("%w: %q", ErrUnknownRover, a.Rover)
		}
		snap := c.store.Snapshot()
		if snap.SelectedRover != a.Rover {
			c.cancelInFlight()
		}
		c.store.Update(state.Select(a.Rover))

	case ActionBack:
		c.cancelInFlight()
		c.store.Update(state.Back())

	case ActionRetry:
		snap := c.store.Snapshot()
		if snap.Fetch.Status != state.StatusFailed {
			return nil
		}
		c.store.UpdateIf(func(s state.AppState) bool {
			return s.Generation == snap.Generation && s.Fetch.Status == state.StatusFailed
		}, state.WithFetch(state.Idle()))

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	c.runEffects()
	return nil
}

// Wait blocks until no fetch is in flight.
func (c *Controller) Wait() { c.wg.Wait() }

// Close cancels any in-flight fetch and waits for it to finish.
func (c *Controller) Close() {
	c.stop()
	c.wg.Wait()
}

func (c *Controller) inCatalog(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range c.store.Snapshot().Rovers {
		if r == name {
			return true
		}
	}
	return false
}

// runEffects starts a fetch when a rover is selected and nothing has been
// requested for it yet.
func (c *Controller) runEffects() {
	snap := c.store.Snapshot()
	if !snap.HasSelection() || snap.Fetch.Status != state.StatusIdle {
		return
	}

	gen := snap.Generation
	name := snap.SelectedRover
	_, ok := c.store.UpdateIf(func(s state.AppState) bool {
		return s.Generation == gen && s.Fetch.Status == state.StatusIdle
	}, state.WithFetch(state.FetchState{Status: state.StatusLoading}))
	if !ok {
		// Another dispatch got there first.
		return
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.mu.Unlock()

	c.wg.Add(1)
	go c.fetch(ctx, cancel, name, gen)
}

func (c *Controller) cancelInFlight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) fetch(ctx context.Context, cancel context.CancelFunc, name string, gen uint64) {
	defer c.wg.Done()
	defer cancel()

	log := c.logger.WithFields(logrus.Fields{"rover": name, "generation": gen})
	log.Debug("fetching rover data")

	start := time.Now()
	payload, err := c.fetcher.Fetch(ctx, name)
	elapsed := time.Since(start)

	next, outcome := result(payload, err)
	_, applied := c.store.UpdateIf(func(s state.AppState) bool {
		return s.Generation == gen && s.Fetch.Status == state.StatusLoading
	}, state.WithFetch(next))
	if !applied {
		outcome = activity.OutcomeDiscarded
	}

	fields := logrus.Fields{"outcome": outcome, "duration": elapsed.Round(time.Millisecond)}
	switch {
	case outcome == activity.OutcomeFailed:
		log.WithFields(fields).WithError(err).Warn("rover fetch failed")
	case outcome == activity.OutcomeDiscarded:
		log.WithFields(fields).Debug("discarded stale rover fetch")
	default:
		log.WithFields(fields).Info("rover fetch finished")
	}

	c.record(activity.Entry{
		SessionID:  c.sessionID,
		Rover:      name,
		Generation: gen,
		Outcome:    outcome,
		Photos:     photoCount(payload),
		DurationMS: elapsed.Milliseconds(),
		Error:      errText(err),
	})
}

// result maps a fetch result to the fetch state shown to the user.
func result(payload *rover.Payload, err error) (state.FetchState, activity.Outcome) {
	switch {
	case err == nil:
		return state.FetchState{Status: state.StatusLoaded, Payload: payload}, activity.OutcomeLoaded
	case errors.Is(err, rover.ErrNoPhotos):
		return state.FetchState{Status: state.StatusEmpty}, activity.OutcomeEmpty
	default:
		return state.FetchState{Status: state.StatusFailed, Err: err.Error()}, activity.OutcomeFailed
	}
}

func (c *Controller) record(e activity.Entry) {
	if c.recorder == nil {
		return
	}
	// The session context may already be gone; the log entry should still land.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.recorder.Log(ctx, e); err != nil {
		c.logger.WithError(err).Warn("recording fetch activity")
	}
}

func photoCount(p *rover.Payload) int {
	if p == nil {
		return 0
	}
	return len(p.Photos)
}

func errText(err error) string {
	if err == nil || errors.Is(err, rover.ErrNoPhotos) {
		return ""
	}
	return err.Error()
}
