package lexer

import "grammarworks/internal/token"

// scanIdent reads a letter followed by letters, digits, '_' or '$'.
func (lx *Lexer) scanIdent() {
	m := lx.mark()
	lx.bumpRune()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isIdentContinue(r) {
			break
		}
		lx.bumpRune()
	}
	lx.emit(token.Ident, m)
}
