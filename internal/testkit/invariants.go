// Package testkit holds invariant checkers shared by unit tests and fuzz
// harnesses. Each checker returns the first violation it finds.
package testkit

import (
	"fmt"
	"strings"
	"unicode"

	"fortio.org/safecast"

	"grammarworks/internal/analysis"
	"grammarworks/internal/source"
	"grammarworks/internal/token"
)

// CheckTokenInvariants verifies a token sequence against its source text:
// 1) indices match positions and spans are non-empty, ordered, non-overlapping
// 2) every byte outside tokens is whitespace
// 3) token text is a slice of the source and line fields agree with lines
func CheckTokenInvariants(text string, seq *token.Sequence, lines source.Lines) error {
	if seq == nil {
		return fmt.Errorf("nil sequence")
	}
	if seq.Source() != text {
		return fmt.Errorf("sequence source differs from input")
	}
	if lines.Len() == 0 || lines.Offset(0) != 0 {
		return fmt.Errorf("line table must start with offset 0")
	}
	prevEnd := 0
	for i, t := range seq.All() {
		if t.Index != i {
			return fmt.Errorf("token %d has index %d", i, t.Index)
		}
		if t.Start < prevEnd || t.End <= t.Start || t.End > len(text) {
			return fmt.Errorf("token %d (%s) has bad span %d-%d after %d", i, t.Kind, t.Start, t.End, prevEnd)
		}
		if gap := text[prevEnd:t.Start]; !onlySpace(gap) {
			return fmt.Errorf("non-whitespace %q before token %d is not covered", gap, i)
		}
		if t.Text() != text[t.Start:t.End] {
			return fmt.Errorf("token %d text mismatch", i)
		}
		if got := lines.LineOf(t.Start); got != t.StartLine {
			return fmt.Errorf("token %d starts on line %d, table says %d", i, t.StartLine, got)
		}
		if got := lines.Offset(t.StartLine); got != t.StartLineOffset {
			return fmt.Errorf("token %d start line offset %d, table says %d", i, t.StartLineOffset, got)
		}
		if t.EndLine < t.StartLine {
			return fmt.Errorf("token %d ends on line %d before it starts (%d)", i, t.EndLine, t.StartLine)
		}
		prevEnd = t.End
	}
	if tail := text[prevEnd:]; !onlySpace(tail) {
		return fmt.Errorf("non-whitespace %q after the last token is not covered", tail)
	}
	return checkLineTable(text, lines)
}

// onlySpace mirrors the tokenizer's notion of skippable input.
func onlySpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

// checkLineTable verifies that offsets are increasing and each entry follows
// a line break.
func checkLineTable(text string, lines source.Lines) error {
	for i := 1; i < lines.Len(); i++ {
		off := lines.Offset(i)
		if off <= lines.Offset(i-1) || off > len(text) {
			return fmt.Errorf("line %d starts at %d", i, off)
		}
		if prev := text[off-1]; prev != '\n' && prev != '\r' {
			return fmt.Errorf("line %d does not follow a line break", i)
		}
		if text[off-1] == '\r' && off < len(text) && text[off] == '\n' {
			return fmt.Errorf("line %d splits a CRLF pair", i)
		}
	}
	return nil
}

// CheckModelInvariants verifies the structural model of one analysis:
// rules are contiguous colon-containing token ranges ending in a semicolon,
// rules do not overlap, groups point at recognized rules, and every rule
// yields at least one alternative.
func CheckModelInvariants(m *analysis.Model) error {
	if m == nil {
		return fmt.Errorf("nil model")
	}
	if err := CheckTokenInvariants(m.Text, m.Tokens, m.Lines); err != nil {
		return err
	}
	prevEnd := -1
	for i, r := range m.Rules {
		for _, t := range []*token.Token{r.Start, r.NameToken, r.Colon, r.End} {
			if !m.Tokens.Owns(t) {
				return fmt.Errorf("rule %d (%s) references a foreign token", i, r.Name)
			}
		}
		if !(r.Start.Index <= r.NameToken.Index && r.NameToken.Index < r.Colon.Index && r.Colon.Index < r.End.Index) {
			return fmt.Errorf("rule %d (%s) tokens out of order", i, r.Name)
		}
		if r.End.Kind != token.Semi {
			return fmt.Errorf("rule %d (%s) does not end with a semicolon", i, r.Name)
		}
		if r.Start.Index <= prevEnd {
			return fmt.Errorf("rule %d (%s) overlaps the previous rule", i, r.Name)
		}
		toks := r.Tokens()
		if len(toks) != r.End.Index-r.Start.Index+1 {
			return fmt.Errorf("rule %d (%s) token range has gaps", i, r.Name)
		}
		for j := 1; j < len(toks); j++ {
			if toks[j].Index != toks[j-1].Index+1 {
				return fmt.Errorf("rule %d (%s) token range has gaps", i, r.Name)
			}
		}
		if len(r.Alternatives()) == 0 {
			return fmt.Errorf("rule %d (%s) has no alternatives", i, r.Name)
		}
		for _, alt := range r.Alternatives() {
			for _, t := range alt {
				if t.Index <= r.Colon.Index || t.Index >= r.End.Index {
					return fmt.Errorf("rule %d (%s) alternative token %d outside the body", i, r.Name, t.Index)
				}
			}
		}
		span := r.Span()
		end, err := safecast.Conv[uint32](len(m.Text))
		if err != nil {
			return fmt.Errorf("text length overflow: %w", err)
		}
		if span.End > end {
			return fmt.Errorf("rule %d (%s) span %v beyond text", i, r.Name, span)
		}
		prevEnd = r.End.Index
	}
	for i, g := range m.Groups {
		if g.RuleIndex < -1 || g.RuleIndex >= len(m.Rules) {
			return fmt.Errorf("group %d rule index %d out of range", i, g.RuleIndex)
		}
		if g.Token.Kind != token.LineComment {
			return fmt.Errorf("group %d is not backed by a line comment", i)
		}
	}
	return nil
}
