package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Measure("tokenize", func() string { return "12 tokens" })
	idx := tm.Begin("parse")
	tm.End(idx, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "tokenize" || r.Phases[0].Note != "12 tokens" {
		t.Fatalf("unexpected report %+v", r)
	}
	s := tm.Summary()
	if !strings.Contains(s, "tokenize") || !strings.Contains(s, "// 12 tokens") || !strings.Contains(s, "total") {
		t.Fatalf("unexpected summary:\n%s", s)
	}
}

func TestReportMerge(t *testing.T) {
	a := Report{TotalMS: 3, Phases: []PhaseReport{{Name: "tokenize", DurationMS: 1, Note: "x"}, {Name: "parse", DurationMS: 2}}}
	b := Report{TotalMS: 4, Phases: []PhaseReport{{Name: "parse", DurationMS: 3}, {Name: "check", DurationMS: 1}}}
	m := a.Merge(b)
	if m.TotalMS != 7 || len(m.Phases) != 3 {
		t.Fatalf("unexpected merge %+v", m)
	}
	if m.Phases[1].DurationMS != 5 || m.Phases[2].Name != "check" {
		t.Fatalf("unexpected phases %+v", m.Phases)
	}
	if a.Phases[1].DurationMS != 2 {
		t.Fatal("merge must not modify the receiver")
	}
}

func TestNilTimerReport(t *testing.T) {
	var tm *Timer
	if r := tm.Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatal("nil timer must produce an empty report")
	}
}
