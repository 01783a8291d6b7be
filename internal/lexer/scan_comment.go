package lexer

import "grammarworks/internal/token"

// scanLineComment reads "//..." up to, but excluding, the line break.
func (lx *Lexer) scanLineComment() {
	m := lx.mark()
	lx.skipLineComment()
	lx.emit(token.LineComment, m)
}

func (lx *Lexer) skipLineComment() {
	lx.cursor.BumpN(2)
	for !lx.cursor.EOF() && !lx.cursor.AtLineBreak() {
		if lx.cursor.Peek() == '\\' {
			lx.skipEscape()
			continue
		}
		lx.bumpRune()
	}
}

// scanBlockComment reads "/* ... */"; without a terminator the comment runs to
// the end of the text.
func (lx *Lexer) scanBlockComment() {
	m := lx.mark()
	lx.skipBlockComment()
	lx.emit(token.BlockComment, m)
}

func (lx *Lexer) skipBlockComment() {
	lx.cursor.BumpN(2)
	for !lx.cursor.EOF() {
		switch {
		case lx.cursor.Peek() == '\\':
			lx.skipEscape()
		case lx.cursor.Peek() == '*' && lx.cursor.PeekAt(1) == '/':
			lx.cursor.BumpN(2)
			return
		default:
			lx.bumpRune()
		}
	}
}
