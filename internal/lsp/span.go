package lsp

import (
	"unicode/utf8"

	"grammarworks/internal/analysis"
	"grammarworks/internal/source"
	"grammarworks/internal/token"
)

// Позиции LSP считаются по строкам модели (тот же учёт \r, \r\n, \n, что у
// токенизатора) и в единицах UTF-16.

func positionForOffset(m *analysis.Model, off int) position {
	off = min(max(off, 0), len(m.Text))
	line := m.Lines.LineOf(off)
	start := min(m.Lines.Offset(line), off)
	units := 0
	for i := start; i < off; {
		r, size := utf8.DecodeRuneInString(m.Text[i:off])
		units += utf16Len(r)
		i += size
	}
	return position{Line: line, Character: units}
}

func offsetForModelPosition(m *analysis.Model, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	if pos.Line >= m.Lines.Len() {
		return len(m.Text)
	}
	return advanceUTF16(m.Text, m.Lines.Offset(pos.Line), pos.Character)
}

func rangeForSpan(m *analysis.Model, span source.Span) lspRange {
	return lspRange{
		Start: positionForOffset(m, int(span.Start)),
		End:   positionForOffset(m, int(span.End)),
	}
}

func rangeForToken(m *analysis.Model, tok *token.Token) lspRange {
	if tok == nil {
		return lspRange{}
	}
	return rangeForSpan(m, tok.Span())
}
