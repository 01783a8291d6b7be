package lsp

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"grammarworks/internal/analysis"
)

const groupedGrammar = "grammar G;\n" + // 0
	"options {\n" + // 1
	"  k = 2;\n" + // 2
	"}\n" + // 3
	"/* about\n" + // 4
	"   rules */\n" + // 5
	"// $<Statements\n" + // 6
	"stat : expr\n" + // 7
	"     ;\n" + // 8
	"// $<Inner\n" + // 9
	"expr : ID ;\n" + // 10
	"// $>\n" + // 11
	"// $>\n" + // 12
	"ID : [a-z]+ ;\n" // 13

func TestFoldingRanges(t *testing.T) {
	m := analysis.Analyze(groupedGrammar)
	got := buildFoldingRanges(m)
	want := []foldingRange{
		{StartLine: 1, EndLine: 3, Kind: "region"},
		{StartLine: 4, EndLine: 5, Kind: "comment"},
		{StartLine: 6, EndLine: 12, Kind: "region"},
		{StartLine: 7, EndLine: 8, Kind: "region"},
		{StartLine: 9, EndLine: 11, Kind: "region"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("folding ranges (-want +got):\n%s", diff)
	}
}

func TestDocumentSymbolsNestGroups(t *testing.T) {
	m := analysis.Analyze(groupedGrammar)
	syms := buildDocumentSymbols(m)

	var outline func(prefix string, list []documentSymbol) []string
	outline = func(prefix string, list []documentSymbol) []string {
		var out []string
		for _, s := range list {
			out = append(out, prefix+s.Name)
			out = append(out, outline(prefix+"  ", s.Children)...)
		}
		return out
	}
	want := []string{
		"G",
		"options",
		"Statements",
		"  stat",
		"  Inner",
		"    expr",
		"ID",
	}
	if diff := cmp.Diff(want, outline("", syms)); diff != "" {
		t.Fatalf("symbols (-want +got):\n%s", diff)
	}
	if syms[len(syms)-1].Kind != symbolKindConstant || syms[len(syms)-1].SelectionRange.Start.Line != 13 {
		t.Fatalf("unexpected lexer rule symbol: %+v", syms[len(syms)-1])
	}
}

func TestHoverRule(t *testing.T) {
	m := analysis.Analyze(exprGrammar)
	errs := analysis.NewErrorMap()
	errs.Add(m.RuleByName("expr"), "rule \"expr\" is directly left-recursive")

	// ссылка на expr внутри тела, каретка сразу за идентификатором
	h := buildHover(m, errs, position{Line: 1, Character: 11})
	if h == nil {
		t.Fatal("expected hover")
	}
	for _, want := range []string{
		"**parser rule** `expr` (line 2)",
		"2 alternative(s)",
		"- `expr '+' term`",
		"expr : (term) ('+' term)* ;",
		"- rule \"expr\" is directly left-recursive",
	} {
		if !strings.Contains(h.Contents.Value, want) {
			t.Fatalf("hover missing %q:\n%s", want, h.Contents.Value)
		}
	}
	if h.Range.Start != (position{Line: 1, Character: 7}) {
		t.Fatalf("unexpected range: %+v", h.Range)
	}

	if h := buildHover(m, errs, position{Line: 1, Character: 5}); h != nil {
		t.Fatalf("no hover expected on ':', got %+v", h)
	}
}

func TestDefinitionAndCompletion(t *testing.T) {
	m := analysis.Analyze(exprGrammar)

	tok := identAt(m, position{Line: 4, Character: 8})
	if tok == nil || tok.Text() != "INT" {
		t.Fatalf("unexpected token: %v", tok)
	}
	def := m.RuleByName(tok.Text())
	if r := rangeForToken(m, def.NameToken); r.Start.Line != 5 {
		t.Fatalf("definition at %+v", r)
	}

	labels := func(l completionList) []string {
		out := []string{}
		for _, it := range l.Items {
			out = append(out, it.Label)
		}
		return out
	}
	if diff := cmp.Diff([]string{"term"}, labels(buildCompletions(m, "te"))); diff != "" {
		t.Fatalf("completions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"INT"}, labels(buildCompletions(m, "in"))); diff != "" {
		t.Fatalf("case-insensitive completions (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"fragment"}, labels(buildCompletions(nil, "fr"))); diff != "" {
		t.Fatalf("keyword completions (-want +got):\n%s", diff)
	}
}

func TestIdentPrefix(t *testing.T) {
	text := "a : exp"
	if got := identPrefix(text, len(text)); got != "exp" {
		t.Fatalf("prefix = %q", got)
	}
	if got := identPrefix("a : ", 4); got != "" {
		t.Fatalf("prefix = %q", got)
	}
}
