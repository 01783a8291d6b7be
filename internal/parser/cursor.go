package parser

import "grammarworks/internal/token"

// Cursor walks a token sequence with bounded relative lookahead and
// lookbehind. It starts before the first token.
type Cursor struct {
	seq *token.Sequence
	pos int
}

func NewCursor(seq *token.Sequence) *Cursor {
	return &Cursor{seq: seq, pos: -1}
}

// Advance moves to the next token and reports whether one exists.
func (c *Cursor) Advance() bool {
	if c.pos < c.seq.Len() {
		c.pos++
	}
	return c.pos < c.seq.Len()
}

// T returns the token k positions from the current one, or nil when out of range.
func (c *Cursor) T(k int) *token.Token {
	return c.seq.At(c.pos + k)
}

// Mark returns the current position for a later Reset.
func (c *Cursor) Mark() int { return c.pos }

func (c *Cursor) Reset(mark int) { c.pos = mark }
