package lsp

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"

	"grammarworks/internal/analysis"
	"grammarworks/internal/parser"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	// префикс берём из актуального текста, модель может отставать на правку
	text, _ := doc.snapshot()
	prefix := identPrefix(text, offsetForPosition(text, params.Position))
	return s.sendResponse(msg.ID, buildCompletions(doc.model(), prefix))
}

// identPrefix returns the identifier characters right before off.
func identPrefix(text string, off int) string {
	start := off
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isIdentRune(r) {
			break
		}
		start -= size
	}
	return text[start:off]
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// buildCompletions offers rule names and keywords matching prefix without
// regard to case. m may be nil before the first analysis.
func buildCompletions(m *analysis.Model, prefix string) completionList {
	fold := cases.Fold()
	want := fold.String(prefix)
	match := func(label string) bool {
		return label != prefix && strings.HasPrefix(fold.String(label), want)
	}

	items := make([]completionItem, 0)
	if m != nil {
		for _, name := range m.RuleNames() {
			if !match(name) {
				continue
			}
			item := completionItem{Label: name, Kind: completionKindFunction, Detail: "parser rule"}
			if r := m.RuleByName(name); r != nil && r.IsLexerRule() {
				item.Kind, item.Detail = completionKindConstant, "lexer rule"
			}
			items = append(items, item)
		}
	}
	for _, kw := range parser.Keywords() {
		if match(kw) {
			items = append(items, completionItem{Label: kw, Kind: completionKindKeyword, Detail: "keyword"})
		}
	}
	return completionList{Items: items}
}
