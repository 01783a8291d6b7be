package syntax

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"grammarworks/internal/source"
	"grammarworks/internal/token"
)

// Alternative is one top-level branch of a rule body.
type Alternative []*token.Token

// Rule is a grammar rule spanning from its name (or `fragment`) through the
// terminating semicolon.
type Rule struct {
	Name      string
	Fragment  bool
	Start     *token.Token
	NameToken *token.Token
	Colon     *token.Token
	End       *token.Token

	seq      *token.Sequence
	lexer    bool
	altsOnce sync.Once
	alts     []Alternative
}

// NewRule builds a rule over tokens of seq. The lexer-rule flag is computed
// here once.
func NewRule(seq *token.Sequence, start, name, colon, end *token.Token) *Rule {
	r := &Rule{
		Name:      name.Text(),
		Fragment:  start != name,
		Start:     start,
		NameToken: name,
		Colon:     colon,
		End:       end,
		seq:       seq,
	}
	r.lexer = isAllUpperCase(r.Name)
	return r
}

func isAllUpperCase(name string) bool {
	return name != "" && strings.ToUpper(name) == name
}

// IsLexerRule reports the all-uppercase heuristic; no grammar semantics are
// consulted.
func (r *Rule) IsLexerRule() bool { return r.lexer }

// Tokens returns the contiguous tokens from Start through End.
func (r *Rule) Tokens() []*token.Token {
	return r.seq.Range(r.Start, r.End)
}

// Text returns the exact source of the rule.
func (r *Rule) Text() string {
	return r.seq.Substring(r.Start, r.End)
}

// Body returns the source between the colon and the semicolon, trimmed.
func (r *Rule) Body() string {
	src := r.seq.Source()
	if r.Colon == nil || r.Colon.End > r.End.Start {
		return ""
	}
	return strings.TrimSpace(src[r.Colon.End:r.End.Start])
}

func (r *Rule) Span() source.Span {
	return source.SpanOf(r.Start.Start, r.End.End)
}

// Contains reports whether off falls within the rule text.
func (r *Rule) Contains(off int) bool {
	return off >= r.Start.Start && off < r.End.End
}

// StartLine and EndLine are 0-based.
func (r *Rule) StartLine() int { return r.Start.StartLine }
func (r *Rule) EndLine() int   { return r.End.EndLine }

// CompareRules orders rules lexicographically by name.
func CompareRules(a, b *Rule) int {
	return cmp.Compare(a.Name, b.Name)
}

// SortRules sorts rules by name in place; rules with equal names keep their
// source order.
func SortRules(rules []*Rule) {
	slices.SortStableFunc(rules, CompareRules)
}
