package lexer

import (
	"grammarworks/internal/source"
)

// Cursor представляет собой позицию в тексте и ведёт таблицу начал строк.
// Every advance goes through Bump, so line breaks are seen exactly once.
type Cursor struct {
	src       string
	Off       int
	line      int
	lineStart int
	lines     source.Lines
}

// NewCursor creates a cursor at the start of src with the implicit first line.
func NewCursor(src string) Cursor {
	lines := make(source.Lines, 1, len(src)/32+1)
	lines[0] = source.Line{Start: 0}
	return Cursor{src: src, lines: lines}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.src)
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	return c.PeekAt(0)
}

// PeekAt reads the byte k positions ahead of the cursor, or 0 past the end.
func (c *Cursor) PeekAt(k int) byte {
	i := c.Off + k
	if i < 0 || i >= len(c.src) {
		return 0
	}
	return c.src[i]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
// \n, \r\n and a bare \r each register exactly one line break.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.Off]
	c.Off++
	switch {
	case b == '\n':
		c.newLine()
	case b == '\r' && c.Peek() != '\n':
		c.newLine()
	}
	return b
}

// BumpN advances n bytes.
func (c *Cursor) BumpN(n int) {
	for i := 0; i < n && !c.EOF(); i++ {
		c.Bump()
	}
}

// AtLineBreak reports whether the current byte starts a line break.
func (c *Cursor) AtLineBreak() bool {
	b := c.Peek()
	return b == '\n' || b == '\r'
}

// Line returns the current 0-based line number.
func (c *Cursor) Line() int { return c.line }

// LineStart returns the offset of the first byte of the current line.
func (c *Cursor) LineStart() int { return c.lineStart }

// Lines returns the line table collected so far.
func (c *Cursor) Lines() source.Lines { return c.lines }

func (c *Cursor) newLine() {
	c.line++
	c.lineStart = c.Off
	c.lines = append(c.lines, source.Line{Start: c.Off})
}
