package source

import (
	"sort"
	"unicode/utf8"
)

// Line records the byte offset of the first character of a line.
type Line struct {
	Start int
}

// Lines is the line-start table of one text snapshot. Entry 0 is the implicit
// first line at offset 0; every detected line break appends one entry.
type Lines []Line

// Len returns the number of lines.
func (ls Lines) Len() int { return len(ls) }

// Offset returns the start offset of the 0-based line, clamped to the table.
func (ls Lines) Offset(line int) int {
	if len(ls) == 0 || line < 0 {
		return 0
	}
	if line >= len(ls) {
		return ls[len(ls)-1].Start
	}
	return ls[line].Start
}

// LineOf returns the 0-based line containing off.
func (ls Lines) LineOf(off int) int {
	if len(ls) == 0 {
		return 0
	}
	// первая строка, начало которой правее off, минус один
	idx := sort.Search(len(ls), func(i int) bool { return ls[i].Start > off })
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// Position converts a byte offset into a 1-based line and column. Columns
// count runes of text, not bytes.
func (ls Lines) Position(text string, off int) LineCol {
	if off < 0 {
		off = 0
	}
	if off > len(text) {
		off = len(text)
	}
	line := ls.LineOf(off)
	start := ls.Offset(line)
	if start > off {
		start = off
	}
	col := utf8.RuneCountInString(text[start:off])
	return LineCol{Line: toUint32(line + 1), Col: toUint32(col + 1)}
}
