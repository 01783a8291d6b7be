package token

import (
	"grammarworks/internal/source"
)

// Token represents a single classified span of source text.
// Offsets are byte offsets into the source string; lines are 0-based.
type Token struct {
	Kind            Kind
	Start           int
	End             int
	StartLine       int
	EndLine         int
	StartLineOffset int
	EndLineOffset   int
	Index           int

	src string
}

// Text returns the token text. It slices the shared source and never copies.
func (t *Token) Text() string {
	if t == nil || t.Start < 0 || t.End > len(t.src) || t.Start > t.End {
		return ""
	}
	return t.src[t.Start:t.End]
}

// Source returns the full text the token was cut from.
func (t *Token) Source() string {
	if t == nil {
		return ""
	}
	return t.src
}

// Is reports whether the token has the given kind and exact text.
func (t *Token) Is(k Kind, text string) bool {
	return t != nil && t.Kind == k && t.Text() == text
}

// IsChar reports whether the token is the single character c.
func (t *Token) IsChar(c byte) bool {
	return t != nil && t.Kind == Char && t.End-t.Start == 1 && t.src[t.Start] == c
}

// Span converts the token offsets to a source.Span.
func (t *Token) Span() source.Span {
	return source.SpanOf(t.Start, t.End)
}

// Contains reports whether off lies within the token.
func (t *Token) Contains(off int) bool {
	return off >= t.Start && off < t.End
}
