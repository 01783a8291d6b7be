package lexer

import (
	"grammarworks/internal/source"
	"grammarworks/internal/token"
)

type Lexer struct {
	src    string
	cursor Cursor
	opts   Options
	seq    *token.Sequence
}

// Tokenize scans text once, left to right, and returns the token sequence and
// the line-start table. It has no error states: malformed literals are closed
// at the best available boundary.
func Tokenize(text string, opts Options) (*token.Sequence, source.Lines) {
	lx := New(text, opts)
	lx.Run()
	return lx.seq, lx.cursor.Lines()
}

func New(text string, opts Options) *Lexer {
	return &Lexer{
		src:    text,
		cursor: NewCursor(text),
		opts:   opts,
		seq:    token.NewSequence(text),
	}
}

// Run consumes the whole text.
func (lx *Lexer) Run() {
	for !lx.cursor.EOF() {
		lx.next()
	}
}

// Tokens returns the sequence built so far.
func (lx *Lexer) Tokens() *token.Sequence { return lx.seq }

func (lx *Lexer) next() {
	ch := lx.cursor.Peek()
	grammar := lx.opts.Dialect == DialectGrammar

	switch {
	case ch == '\\':
		// экранированная пара: '\' и следующий символ не начинают токен
		m := lx.mark()
		lx.skipEscape()
		lx.emit(token.Char, m)

	case ch == '\'':
		lx.scanString('\'', token.SingleQuoteString)

	case ch == '"':
		lx.scanString('"', token.DoubleQuoteString)

	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		lx.scanBlockComment()

	case grammar && ch == ':':
		lx.scanSingle(token.Colon)

	case grammar && ch == ';':
		lx.scanSingle(token.Semi)

	case grammar && ch == '{':
		lx.scanBlock()

	default:
		r, _ := lx.peekRune()
		switch {
		case isLetter(r):
			lx.scanIdent()
		case isSpace(r):
			lx.bumpRune()
		default:
			m := lx.mark()
			lx.bumpRune()
			lx.emit(token.Char, m)
		}
	}
}

type mark struct {
	off       int
	line      int
	lineStart int
}

func (lx *Lexer) mark() mark {
	return mark{off: lx.cursor.Off, line: lx.cursor.Line(), lineStart: lx.cursor.LineStart()}
}

// emit appends a token spanning from m to the cursor.
func (lx *Lexer) emit(kind token.Kind, m mark) *token.Token {
	end := lx.cursor.Off
	endLine, endLineStart := m.line, m.lineStart
	if end > m.off {
		// строка последнего байта токена, а не строка курсора
		lines := lx.cursor.Lines()
		endLine = lines.LineOf(end - 1)
		endLineStart = lines.Offset(endLine)
	}
	return lx.seq.Append(token.Token{
		Kind:            kind,
		Start:           m.off,
		End:             end,
		StartLine:       m.line,
		EndLine:         endLine,
		StartLineOffset: m.lineStart,
		EndLineOffset:   endLineStart,
	})
}

func (lx *Lexer) scanSingle(kind token.Kind) {
	m := lx.mark()
	lx.cursor.Bump()
	lx.emit(kind, m)
}

// skipEscape consumes a backslash and the character after it. A line break
// is never swallowed, so line-bounded tokens still close at the line end.
func (lx *Lexer) skipEscape() {
	lx.cursor.Bump()
	if lx.cursor.EOF() || lx.cursor.AtLineBreak() {
		return
	}
	lx.bumpRune()
}
