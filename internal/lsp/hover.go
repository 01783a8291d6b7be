package lsp

import (
	"fmt"
	"strings"

	"grammarworks/internal/analysis"
	"grammarworks/internal/parser"
	"grammarworks/internal/syntax"
	"grammarworks/internal/token"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil {
		return s.sendResponse(msg.ID, nil)
	}
	m, errs := doc.current()
	if m == nil {
		return s.sendResponse(msg.ID, nil)
	}
	h := buildHover(m, errs, params.Position)
	if h == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, h)
}

// identAt returns the identifier under pos, also when the caret sits right
// after its last character.
func identAt(m *analysis.Model, pos position) *token.Token {
	off := offsetForModelPosition(m, pos)
	if t := m.Tokens.TokenAt(off); t != nil && t.Kind == token.Ident {
		return t
	}
	if off > 0 {
		if t := m.Tokens.TokenAt(off - 1); t != nil && t.Kind == token.Ident {
			return t
		}
	}
	return nil
}

func buildHover(m *analysis.Model, errs *analysis.ErrorMap, pos position) *hover {
	tok := identAt(m, pos)
	if tok == nil {
		return nil
	}
	name := tok.Text()
	rng := rangeForToken(m, tok)

	rule := m.RuleStartingWith(tok)
	if rule == nil {
		rule = m.RuleByName(name)
	}
	if rule == nil {
		if parser.IsBlockIdentifier(name) || name == "fragment" || name == "grammar" || parser.IsGrammarKind(name) {
			return &hover{Contents: markupContent{Kind: "markdown", Value: fmt.Sprintf("keyword `%s`", name)}, Range: &rng}
		}
		return nil
	}
	return &hover{Contents: markupContent{Kind: "markdown", Value: ruleMarkdown(m, errs, rule)}, Range: &rng}
}

func ruleMarkdown(m *analysis.Model, errs *analysis.ErrorMap, r *syntax.Rule) string {
	var b strings.Builder
	kind := "parser rule"
	if r.IsLexerRule() {
		kind = "lexer rule"
	}
	if r.Fragment {
		kind = "fragment " + kind
	}
	pos := m.Position(r.Start.Start)
	fmt.Fprintf(&b, "**%s** `%s` (line %d)", kind, r.Name, pos.Line)
	if m.IsDuplicate(r.Name) {
		b.WriteString(" *duplicate*")
	}
	b.WriteString("\n\n")

	alts := r.Alternatives()
	fmt.Fprintf(&b, "%d alternative(s):\n\n", len(alts))
	for _, alt := range alts {
		text := alt.Text()
		if text == "" {
			text = "ε"
		}
		fmt.Fprintf(&b, "- `%s`\n", text)
	}
	if r.HasLeftRecursion() {
		fmt.Fprintf(&b, "\nleft-recursive; rewrite:\n\n```\n%s : %s ;\n```\n", r.Name, r.TextWithoutLeftRecursion())
	}
	if msgs := errs.Errors(r); len(msgs) > 0 {
		b.WriteString("\n---\n")
		for _, msg := range msgs {
			fmt.Fprintf(&b, "- %s\n", msg)
		}
	}
	return b.String()
}
