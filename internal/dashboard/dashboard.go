// Package dashboard serves the rover dashboard page and the websocket
// sessions that keep it live.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/marsdash/internal/activity"
	"github.com/ziadkadry99/marsdash/internal/fetcher"
	"github.com/ziadkadry99/marsdash/internal/state"
	"github.com/ziadkadry99/marsdash/internal/view"
)

// Options configures a Dashboard.
type Options struct {
	Rovers   []string
	View     view.Options
	Fetcher  fetcher.Fetcher
	Activity *activity.Store // optional
	Logger   logrus.FieldLogger
}

// Dashboard provides the rover page and its live sessions.
type Dashboard struct {
	rovers   []string
	view     view.Options
	render   state.Renderer
	fetcher  fetcher.Fetcher
	activity *activity.Store
	logger   logrus.FieldLogger
}

// New creates a new Dashboard.
func New(opts Options) *Dashboard {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dashboard{
		rovers:   append([]string(nil), opts.Rovers...),
		view:     opts.View,
		render:   view.Renderer(opts.View),
		fetcher:  opts.Fetcher,
		activity: opts.Activity,
		logger:   logger,
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/ws", d.handleWebSocket)
	r.Get("/api/rovers", d.handleRovers)
	r.Get("/api/dashboard/stats", d.handleStats)
}

// initialState is the state every page load and every session starts from.
func (d *Dashboard) initialState() state.AppState {
	return state.Initial(d.rovers)
}
