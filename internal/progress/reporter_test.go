package progress

import (
	"bytes"
	"testing"
)

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}).(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterInTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter(&bytes.Buffer{}).(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}

func TestCIReporterOutput(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}
	r.Start(3)
	r.Update(1, "Spirit")
	r.Update(2, "Opportunity")
	r.Finish()

	want := "Probing 3 rovers\n[1/3] Spirit\n[2/3] Opportunity\nProbe complete\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTerminalReporterBeforeStart(t *testing.T) {
	r := &TerminalReporter{Out: &bytes.Buffer{}}
	// Update and Finish must tolerate a missing bar.
	r.Update(1, "Spirit")
	r.Finish()
}
