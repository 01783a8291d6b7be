package analysis

import "testing"

func TestErrorMap(t *testing.T) {
	m := Analyze("a : b ; a : c ; d : e ;")
	a1, a2, d := m.Rules[0], m.Rules[1], m.Rules[2]
	errs := NewErrorMap()

	errs.Add(a2, "undefined <b>")
	errs.Add(a2, "x & y")
	if errs.HasErrors(a1) || !errs.HasErrors(a2) {
		t.Fatal("errors must be keyed by rule identity, not name")
	}
	if got, want := errs.ErrorText(a2), "<html>undefined &lt;b&gt;<br>x &amp; y</html>"; got != want {
		t.Fatalf("ErrorText: got %q want %q", got, want)
	}
	if errs.ErrorText(d) != "" {
		t.Fatal("no errors, no text")
	}

	errs.Set(d, []string{"bad"})
	if got := errs.RulesWithErrors(m); len(got) != 2 || got[0] != a2 || got[1] != d {
		t.Fatalf("RulesWithErrors: %v", got)
	}
	if errs.NumberOfRulesWithErrors(m) != 2 {
		t.Fatal("NumberOfRulesWithErrors")
	}

	msgs := errs.Errors(d)
	msgs[0] = "changed"
	if errs.Errors(d)[0] != "bad" {
		t.Fatal("Errors must return a copy")
	}

	errs.Set(d, nil)
	if errs.HasErrors(d) {
		t.Fatal("Set(nil) must clear")
	}
	errs.Set(a2, nil)
	if errs.NumberOfRulesWithErrors(m) != 0 {
		t.Fatal("every rule must be clean")
	}
}
