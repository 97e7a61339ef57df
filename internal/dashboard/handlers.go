package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/ziadkadry99/marsdash/internal/activity"
)

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	Loaded    int `json:"loaded"`
	Empty     int `json:"empty"`
	Failed    int `json:"failed"`
	Discarded int `json:"discarded"`
	Total     int `json:"total"`
}

// roversResponse is the JSON response for the catalog endpoint.
type roversResponse struct {
	Rovers []string `json:"rovers"`
}

func (d *Dashboard) handleRovers(w http.ResponseWriter, r *http.Request) {
	rovers := d.rovers
	if rovers == nil {
		rovers = []string{}
	}
	writeJSON(w, http.StatusOK, roversResponse{Rovers: rovers})
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	var stats statsResponse
	if d.activity == nil {
		writeJSON(w, http.StatusOK, stats)
		return
	}

	counts, err := d.activity.CountByOutcome(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	stats.Loaded = counts[activity.OutcomeLoaded]
	stats.Empty = counts[activity.OutcomeEmpty]
	stats.Failed = counts[activity.OutcomeFailed]
	stats.Discarded = counts[activity.OutcomeDiscarded]
	stats.Total = stats.Loaded + stats.Empty + stats.Failed + stats.Discarded
	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
