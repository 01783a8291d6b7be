package lexer

import "grammarworks/internal/token"

// scanString reads a quoted literal. The closing quote belongs to the token;
// a line break ends an unterminated literal and is left for the main loop.
func (lx *Lexer) scanString(quote byte, kind token.Kind) {
	m := lx.mark()
	lx.skipQuoted(quote)
	lx.emit(kind, m)
}

func (lx *Lexer) skipQuoted(quote byte) {
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.skipEscape()
		case b == quote:
			lx.cursor.Bump()
			return
		case b == '\n' || b == '\r':
			return
		default:
			lx.bumpRune()
		}
	}
}
