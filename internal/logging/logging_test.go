package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"":        logrus.InfoLevel,
		"INFO":    logrus.InfoLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseLevelInvalid(t *testing.T) {
	if _, err := ParseLevel("trace"); err == nil {
		t.Error("expected error for unsupported level")
	}
}

func TestSetLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	if err := SetLevel("debug"); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", Log.GetLevel())
	}
	if err := SetLevel("nope"); err == nil {
		t.Error("expected error for bad level")
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Error("bad level must not change the current level")
	}
}
