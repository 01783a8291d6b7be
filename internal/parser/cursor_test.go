package parser

import (
	"testing"

	"grammarworks/internal/lexer"
)

func TestCursorBounds(t *testing.T) {
	seq, _ := lexer.Tokenize("a b", lexer.Options{})
	c := NewCursor(seq)
	if c.T(0) != nil || c.T(1).Text() != "a" {
		t.Fatal("cursor must start before the first token")
	}
	if !c.Advance() || c.T(-1) != nil || c.T(1).Text() != "b" || c.T(2) != nil {
		t.Fatal("unexpected lookaround at first token")
	}
	m := c.Mark()
	c.Advance()
	if c.Advance() || c.T(0) != nil {
		t.Fatal("expected end of stream")
	}
	if c.Advance() {
		t.Fatal("advance past end must stay false")
	}
	c.Reset(m)
	if c.T(0).Text() != "a" {
		t.Fatal("reset did not restore position")
	}
}
