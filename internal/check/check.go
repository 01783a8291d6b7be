// Package check runs lint checks over an analyzed grammar and reports them as
// diagnostics.
package check

import (
	"fmt"

	"grammarworks/internal/analysis"
	"grammarworks/internal/diag"
	"grammarworks/internal/parser"
	"grammarworks/internal/source"
	"grammarworks/internal/syntax"
	"grammarworks/internal/token"
)

// Options toggles individual checks.
type Options struct {
	GrammarDecl       bool
	Duplicates        bool
	LeftRecursion     bool
	Groups            bool
	EmptyAlternatives bool
	Unterminated      bool
	MinSeverity       diag.Severity
	MaxDiagnostics    int // 0 means unlimited
}

// DefaultOptions enables every check.
func DefaultOptions() Options {
	return Options{
		GrammarDecl:       true,
		Duplicates:        true,
		LeftRecursion:     true,
		Groups:            true,
		EmptyAlternatives: true,
		Unterminated:      true,
		MinSeverity:       diag.SevInfo,
	}
}

type checker struct {
	m    *analysis.Model
	opts Options
	r    diag.Reporter
}

// Run checks m and returns the sorted diagnostics.
func Run(m *analysis.Model, opts Options) *diag.Bag {
	bag := diag.NewBag(opts.MaxDiagnostics)
	c := checker{
		m:    m,
		opts: opts,
		r:    diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	}
	if opts.GrammarDecl {
		c.grammarDecl()
	}
	if opts.Duplicates {
		c.duplicates()
	}
	if opts.LeftRecursion {
		c.leftRecursion()
	}
	if opts.EmptyAlternatives {
		c.emptyAlternatives()
	}
	if opts.Groups {
		c.groups()
	}
	if opts.Unterminated {
		c.unterminated()
	}
	bag.Filter(opts.MinSeverity)
	bag.Sort()
	return bag
}

func (c *checker) grammarDecl() {
	n := c.m.Name
	if n == nil {
		diag.ReportInfo(c.r, diag.GrmMissingGrammar, source.Span{}, "no grammar declaration found").Emit()
		return
	}
	prev := c.m.Tokens.At(n.Start.Index - 1)
	if prev != nil && prev.Kind == token.Ident && !n.HasKind() && prev.EndLine == n.Start.StartLine {
		diag.ReportWarning(c.r, diag.GrmUnknownGrammarKind, prev.Span(),
			fmt.Sprintf("unknown grammar kind %q (expected lexer, parser, combined or treeparser)", prev.Text())).Emit()
	}
}

func (c *checker) duplicates() {
	first := make(map[string]*syntax.Rule, len(c.m.Rules))
	for _, r := range c.m.Rules {
		orig, seen := first[r.Name]
		if !seen {
			first[r.Name] = r
			continue
		}
		diag.ReportWarning(c.r, diag.GrmDuplicateRule, r.NameToken.Span(),
			fmt.Sprintf("rule %q is already defined", r.Name)).
			WithNote(orig.NameToken.Span(), "first defined here").
			Emit()
	}
}

func (c *checker) leftRecursion() {
	for _, r := range c.m.Rules {
		if !r.HasLeftRecursion() {
			continue
		}
		body := source.SpanOf(r.Colon.End, r.End.Start)
		b := diag.ReportWarning(c.r, diag.GrmLeftRecursion, r.NameToken.Span(),
			fmt.Sprintf("rule %q is directly left-recursive", r.Name))
		for _, alt := range r.LeftRecursiveAlternatives() {
			b.WithNote(alt[0].Span(), "alternative starts with the rule itself")
		}
		b.WithFix("rewrite without left recursion", diag.FixEdit{
			Span:    body,
			NewText: " " + r.TextWithoutLeftRecursion() + " ",
		}).Emit()
	}
}

func (c *checker) emptyAlternatives() {
	for _, r := range c.m.Rules {
		for i, alt := range r.Alternatives() {
			if len(alt) == 0 {
				diag.ReportInfo(c.r, diag.GrmEmptyAlternative, r.NameToken.Span(),
					fmt.Sprintf("rule %q has an empty alternative (#%d)", r.Name, i+1)).Emit()
			}
		}
	}
}

func (c *checker) groups() {
	_, unmatched := c.m.GroupRanges()
	for _, g := range unmatched {
		msg := "group end marker without a matching start"
		if g.Open {
			msg = fmt.Sprintf("group %q is never closed", g.Name)
		}
		diag.ReportWarning(c.r, diag.GrmUnmatchedGroup, g.Span(), msg).
			WithFix("remove marker", diag.FixEdit{Span: g.Span()}).
			Emit()
	}
}

// unterminated reports a rule header after the last recognized rule, which
// the parser drops because no semicolon follows it.
func (c *checker) unterminated() {
	start := 0
	if n := len(c.m.Rules); n > 0 {
		start = c.m.Rules[n-1].End.Index + 1
	}
	toks := c.m.Tokens.All()
	for i := start; i < len(toks); i++ {
		t := toks[i]
		if t.Kind != token.Ident || t.Text() == "grammar" || parser.IsBlockIdentifier(t.Text()) {
			continue
		}
		j := i + 1
		for j < len(toks) && toks[j].Kind.IsComment() {
			j++
		}
		if j < len(toks) && toks[j].Kind == token.Colon {
			diag.ReportWarning(c.r, diag.GrmUnterminatedRule, t.Span(),
				fmt.Sprintf("rule %q is missing its terminating ';'", t.Text())).
				WithFix("insert ';'", diag.FixEdit{Span: source.SpanOf(len(c.m.Text), len(c.m.Text)), NewText: " ;"}).
				Emit()
			return
		}
	}
}
