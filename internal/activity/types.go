package activity

import "time"

// Outcome is how a fetch for a rover ended.
type Outcome string

const (
	OutcomeLoaded Outcome = "loaded"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
	// OutcomeDiscarded marks a result that arrived after the user had
	// moved on to another selection.
	OutcomeDiscarded Outcome = "discarded"
)

// Entry is one fetch recorded in the activity log.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	Rover      string    `json:"rover"`
	Generation uint64    `json:"generation"`
	Outcome    Outcome   `json:"outcome"`
	Photos     int       `json:"photos"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}
