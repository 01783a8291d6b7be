package syntax

import (
	"strings"

	"golang.org/x/text/cases"

	"grammarworks/internal/token"
)

// Alternatives splits the rule body on top-level `|`. Parenthesized groups
// and action blocks do not split; an `options{...}` block is kept as rule
// syntax. The result is memoized on the rule instance.
func (r *Rule) Alternatives() []Alternative {
	r.altsOnce.Do(func() {
		r.alts = r.splitAlternatives()
	})
	return r.alts
}

func (r *Rule) splitAlternatives() []Alternative {
	toks := r.Tokens()
	var (
		alts    []Alternative
		current Alternative
		colon   bool
		depth   int
	)
	for i, t := range toks {
		if t == r.End {
			break
		}
		if !colon {
			colon = t == r.Colon
			continue
		}
		switch {
		case t.Kind == token.Block:
			// тело действия не участвует в разбиении
			if i == 0 || !isOptionsKeyword(toks[i-1]) {
				continue
			}
		case t.IsChar('('):
			depth++
		case t.IsChar(')'):
			depth--
		case t.IsChar('|') && depth == 0:
			alts = append(alts, current)
			current = nil
			continue
		}
		current = append(current, t)
	}
	if len(current) > 0 {
		alts = append(alts, current)
	}
	if colon && len(alts) == 0 {
		alts = append(alts, Alternative{})
	}
	return alts
}

// isOptionsKeyword matches `options` in any case, like the parser's block
// keywords.
func isOptionsKeyword(t *token.Token) bool {
	return t.Kind == token.Ident && cases.Fold().String(t.Text()) == "options"
}

// Text returns the exact source from the first to the last token, or "" for
// an empty alternative.
func (a Alternative) Text() string {
	if len(a) == 0 {
		return ""
	}
	first, last := a[0], a[len(a)-1]
	src := first.Source()
	return src[first.Start:last.End]
}

func (r *Rule) isLeftRecursive(alt Alternative) bool {
	return len(alt) > 0 && alt[0].Text() == r.Name
}

// HasLeftRecursion reports whether some alternative starts with the rule's
// own name.
func (r *Rule) HasLeftRecursion() bool {
	for _, alt := range r.Alternatives() {
		if r.isLeftRecursive(alt) {
			return true
		}
	}
	return false
}

// LeftRecursiveAlternatives returns the alternatives that start with the
// rule's own name.
func (r *Rule) LeftRecursiveAlternatives() []Alternative {
	var out []Alternative
	for _, alt := range r.Alternatives() {
		if r.isLeftRecursive(alt) {
			out = append(out, alt)
		}
	}
	return out
}

// TextWithoutLeftRecursion rewrites direct left recursion as iteration:
// "(<head>) (<tail>)*", where head joins the non-recursive alternatives and
// tail joins the continuations after the leading self-reference.
func (r *Rule) TextWithoutLeftRecursion() string {
	var head, tail []string
	for _, alt := range r.Alternatives() {
		if !r.isLeftRecursive(alt) {
			head = append(head, alt.Text())
			continue
		}
		if len(alt) > 1 {
			tail = append(tail, alt[1:].Text())
		}
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(strings.Join(head, " | "))
	b.WriteString(") (")
	b.WriteString(strings.Join(tail, " | "))
	b.WriteString(")*")
	return b.String()
}
