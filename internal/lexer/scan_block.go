package lexer

import "grammarworks/internal/token"

// scanBlock reads a brace-balanced body. Braces inside literals and comments
// do not count. An unbalanced body runs to the end of the text.
func (lx *Lexer) scanBlock() {
	m := lx.mark()
	lx.cursor.Bump() // '{'
	depth := 1
	for depth > 0 && !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.skipEscape()
		case b == '\'' || b == '"':
			lx.skipQuoted(b)
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			lx.skipLineComment()
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipBlockComment()
		case b == '{':
			depth++
			lx.cursor.Bump()
		case b == '}':
			depth--
			lx.cursor.Bump()
		default:
			lx.bumpRune()
		}
	}
	lx.emit(token.Block, m)
}
