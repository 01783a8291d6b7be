package fuzztests

import (
	"strings"
	"testing"
	"time"

	"grammarworks/internal/analysis"
	"grammarworks/internal/testkit"
)

// analyzeTimeout bounds one analysis; exceeding it means a loop that never
// advances.
const analyzeTimeout = 5 * time.Second

func FuzzAnalyzeInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		text := clampInput(input)
		done := make(chan *analysis.Model, 1)
		go func() { done <- analysis.Analyze(text) }()

		var m *analysis.Model
		select {
		case m = <-done:
		case <-time.After(analyzeTimeout):
			t.Fatalf("analysis did not finish in %v", analyzeTimeout)
		}
		if err := testkit.CheckModelInvariants(m); err != nil {
			t.Fatal(err)
		}
	})
}

func FuzzRuleRewrite(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		m := analysis.Analyze(clampInput(input))
		for _, r := range m.Rules {
			rewrite := r.TextWithoutLeftRecursion()
			if !strings.HasPrefix(rewrite, "(") || !strings.HasSuffix(rewrite, ")*") {
				t.Fatalf("rule %s: malformed rewrite %q", r.Name, rewrite)
			}
			alts := r.Alternatives()
			recursive := r.LeftRecursiveAlternatives()
			if len(recursive) > len(alts) {
				t.Fatalf("rule %s: %d recursive of %d alternatives", r.Name, len(recursive), len(alts))
			}
			// без левой рекурсии хвост пуст
			if len(recursive) == 0 && !strings.HasSuffix(rewrite, ") ()*") {
				t.Fatalf("rule %s: non-recursive rule has a tail: %q", r.Name, rewrite)
			}
			if r.HasLeftRecursion() != (len(recursive) > 0) {
				t.Fatalf("rule %s: HasLeftRecursion disagrees with alternatives", r.Name)
			}
		}
	})
}
