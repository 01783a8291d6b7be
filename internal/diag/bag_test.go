package diag

import (
	"testing"

	"grammarworks/internal/source"
)

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(3)
	b.Add(New(SevInfo, GrmEmptyAlternative, source.SpanOf(10, 12), "c"))
	b.Add(New(SevWarning, GrmDuplicateRule, source.SpanOf(2, 4), "b"))
	b.Add(New(SevError, GrmDuplicateRule, source.SpanOf(2, 4), "a"))
	if b.Add(New(SevInfo, GrmInfo, source.SpanOf(0, 1), "dropped")) {
		t.Fatal("limit must reject the fourth diagnostic")
	}
	if b.Dropped() != 1 || b.Len() != 3 {
		t.Fatalf("dropped=%d len=%d", b.Dropped(), b.Len())
	}
	b.Sort()
	got := []string{}
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	if got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected order %v", got)
	}
	if !b.HasErrors() || !b.HasWarnings() || b.Count(SevInfo) != 1 {
		t.Fatal("severity queries")
	}
}

func TestBagFilter(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, GrmLeftRecursion, source.SpanOf(1, 2), "x"))
	b.Add(New(SevInfo, GrmEmptyAlternative, source.SpanOf(1, 2), "y"))
	b.Filter(SevWarning)
	if b.Len() != 1 || b.Items()[0].Code != GrmLeftRecursion {
		t.Fatalf("filter: %+v", b.Items())
	}
}

func TestReportBuilder(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	for range 2 {
		ReportWarning(r, GrmDuplicateRule, source.SpanOf(5, 6), "dup").
			WithNote(source.SpanOf(0, 1), "first here").
			WithFix("rename", FixEdit{Span: source.SpanOf(5, 6), NewText: "b"}).
			Emit()
	}
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "b" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestCodesAndSeverity(t *testing.T) {
	if GrmLeftRecursion.ID() != "GRM1003" || IOLoadFileError.ID() != "IO4000" || Code(9999).ID() != "E0000" {
		t.Fatal("unexpected code ids")
	}
	if Code(1999).Title() != "Unknown error" {
		t.Fatal("unknown code title")
	}
	for _, name := range []string{"info", "Warn", "ERROR"} {
		if _, err := ParseSeverity(name); err != nil {
			t.Fatalf("ParseSeverity(%q): %v", name, err)
		}
	}
	var s Severity
	if err := s.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatShort(t *testing.T) {
	text := "a : b ;\nb : c ;"
	lines := source.Lines{{Start: 0}, {Start: 8}}
	d := New(SevWarning, GrmDuplicateRule, source.SpanOf(8, 9), "duplicate rule b").
		WithNote(source.SpanOf(4, 5), "referenced here")
	got := FormatShort([]Diagnostic{d}, "g.g", text, lines, true)
	want := "WARNING GRM1002 g.g:2:1 duplicate rule b\n  note g.g:1:5 referenced here"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
