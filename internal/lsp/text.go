package lsp

import (
	"unicode/utf16"
	"unicode/utf8"
)

// applyChanges применяет инкрементальные правки клиента к тексту документа.
// Change без Range заменяет текст целиком.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := max(offsetForPosition(text, change.Range.End), start)
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// lineStart returns the byte offset of a zero-based line, counting \n, \r\n
// and a bare \r as one break each, or len(text) past the last line.
func lineStart(text string, line int) int {
	if line <= 0 {
		return 0
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			continue
		}
		line--
		if line == 0 {
			return i + 1
		}
	}
	return len(text)
}

// advanceUTF16 moves from off by up to units UTF-16 code units, stopping at
// the end of the line. A surrogate pair is never split.
func advanceUTF16(text string, off, units int) int {
	for off < len(text) && units > 0 {
		if c := text[off]; c == '\n' || c == '\r' {
			break
		}
		r, size := utf8.DecodeRuneInString(text[off:])
		need := utf16Len(r)
		if need > units {
			break
		}
		units -= need
		off += size
	}
	return off
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	// RuneError и прочие невалидные руны занимают одну единицу
	return 1
}

func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	return advanceUTF16(text, lineStart(text, pos.Line), pos.Character)
}
