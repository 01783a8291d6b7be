package diagfmt

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"grammarworks/internal/analysis"
	"grammarworks/internal/syntax"
)

// WriteRulesTable prints one row per rule in source order.
func WriteRulesTable(w io.Writer, m *analysis.Model, colored bool) {
	WriteRules(w, m, m.Rules, colored)
}

// WriteRules prints the given rules of m as an aligned table:
// NAME  KIND  LINES  ALTS  FLAGS
func WriteRules(w io.Writer, m *analysis.Model, rules []*syntax.Rule, colored bool) {
	p := newPalette(colored)
	width := runewidth.StringWidth("name")
	for _, r := range rules {
		width = max(width, runewidth.StringWidth(r.Name))
	}
	fmt.Fprintf(w, "  %s  %-6s %-9s %4s  %s\n", runewidth.FillRight("name", width), "kind", "lines", "alts", "flags")
	for _, r := range rules {
		kind := "parser"
		if r.IsLexerRule() {
			kind = "lexer"
		}
		flags := ""
		if r.Fragment {
			flags += " fragment"
		}
		if r.HasLeftRecursion() {
			flags += p.warn.Sprint(" left-recursive")
		}
		if m.IsDuplicate(r.Name) {
			flags += p.warn.Sprint(" duplicate")
		}
		lines := fmt.Sprintf("%d-%d", r.StartLine()+1, r.EndLine()+1)
		fmt.Fprintf(w, "  %s  %-6s %-9s %4d %s\n",
			runewidth.FillRight(r.Name, width), kind, lines, len(r.Alternatives()), flags)
	}
}

// WriteRuleDetail prints a rule with its alternatives and, for left-recursive
// rules, the rewritten body.
func WriteRuleDetail(w io.Writer, m *analysis.Model, r *syntax.Rule, colored bool) {
	p := newPalette(colored)
	pos := m.Position(r.Start.Start)
	fmt.Fprintf(w, "%s  line %d:%d\n", p.path.Sprint(r.Name), pos.Line, pos.Col)
	fmt.Fprintln(w, r.Text())
	for i, alt := range r.Alternatives() {
		text := alt.Text()
		if text == "" {
			text = "<empty>"
		}
		fmt.Fprintf(w, "  %2d: %s\n", i+1, text)
	}
	if r.HasLeftRecursion() {
		fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("rewrite:"), r.TextWithoutLeftRecursion())
	}
}
