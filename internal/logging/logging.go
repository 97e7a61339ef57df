// Package logging holds the process-wide logrus logger.
package logging

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Components receive it as a logrus.FieldLogger.
var Log = logrus.New()

// SetLevel sets the level of Log from a config string.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(lvl)
	return nil
}

// ParseLevel maps the levels marsdash accepts onto logrus levels.
// Trace and panic are not used.
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel, nil
	case "", "info":
		return logrus.InfoLevel, nil
	case "warning", "warn":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", level)
	}
}
