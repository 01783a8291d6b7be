package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ===== Работа с рунами поверх Cursor =====

// peekRune читает текущую руну; невалидный UTF-8 даёт RuneError размером 1
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(lx.src[lx.cursor.Off:])
}

// bumpRune перемещает курсор на размер текущей руны
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.BumpN(sz)
}

// ===== Классификаторы =====

func isLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return r != utf8.RuneError && unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isLetter(r) || unicode.IsDigit(r) || r == '_' || r == '$'
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}
