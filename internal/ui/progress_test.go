package ui

import (
	"strings"
	"testing"
	"time"

	"grammarworks/internal/driver"
)

func TestApplyEvents(t *testing.T) {
	m := NewCheckModel("check", []string{"a.g", "b.g"}, nil)

	m.apply(driver.Event{File: "a.g", Stage: driver.StageAnalyze, Status: driver.StatusWorking})
	if got := m.rows[0].label; got != "analyzing" {
		t.Fatalf("label = %q, want analyzing", got)
	}
	if p := m.percent(); p != 0.2 {
		t.Fatalf("percent = %v, want 0.2", p)
	}

	m.apply(driver.Event{File: "a.g", Stage: driver.StageCheck, Status: driver.StatusDone, Diagnostics: 3, Elapsed: time.Millisecond})
	m.apply(driver.Event{File: "b.g", Stage: driver.StageLoad, Status: driver.StatusError})
	// события после завершения файла игнорируются
	m.apply(driver.Event{File: "b.g", Stage: driver.StageLoad, Status: driver.StatusWorking})
	m.apply(driver.Event{File: "missing.g", Stage: driver.StageLoad, Status: driver.StatusWorking})
	m.apply(driver.Event{Stage: driver.StageCheck, Status: driver.StatusDone})

	if m.finished != 2 || m.failed != 1 || m.diags != 3 {
		t.Fatalf("finished=%d failed=%d diags=%d", m.finished, m.failed, m.diags)
	}
	if m.rows[1].label != "error" {
		t.Fatalf("b.g label = %q", m.rows[1].label)
	}
	if p := m.percent(); p != 1 {
		t.Fatalf("percent = %v, want 1", p)
	}

	m.done = true
	view := m.View()
	for _, want := range []string{"done: check  2/2", "a.g", "3 diagnostic(s), 1 file(s) failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"grammar.g", 20, "grammar.g"},
		{"very/long/path/to/grammar.g", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"文法文法.g", 5, "文..."},
		{"x", 0, "x"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
