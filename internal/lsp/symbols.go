package lsp

import (
	"fmt"

	"grammarworks/internal/analysis"
	"grammarworks/internal/syntax"
)

func (s *Server) handleDocumentSymbol(msg *rpcMessage) error {
	var params documentSymbolParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.model() == nil {
		return s.sendResponse(msg.ID, []documentSymbol{})
	}
	return s.sendResponse(msg.ID, buildDocumentSymbols(doc.model()))
}

// buildDocumentSymbols returns the grammar declaration, blocks and rules.
// Rules enclosed by group markers are nested under their innermost group.
func buildDocumentSymbols(m *analysis.Model) []documentSymbol {
	out := make([]documentSymbol, 0, len(m.Rules)+len(m.Blocks)+1)
	if m.Name != nil {
		detail := "grammar"
		if m.Name.Kind != "" {
			detail = m.Name.Kind + " grammar"
		}
		r := rangeForSpan(m, m.Name.Span())
		out = append(out, documentSymbol{Name: m.Name.Name, Detail: detail, Kind: symbolKindFile, Range: r, SelectionRange: r})
	}
	for _, b := range m.Blocks {
		out = append(out, documentSymbol{
			Name:           b.Name,
			Kind:           symbolKindProperty,
			Range:          rangeForSpan(m, b.Span()),
			SelectionRange: rangeForToken(m, b.Keyword),
		})
	}

	groups, _ := m.GroupRanges()
	owner := ruleOwners(m, groups)
	parent := groupParents(groups)

	var build func(gi int) documentSymbol
	build = func(gi int) documentSymbol {
		g := groups[gi]
		sym := documentSymbol{
			Name:           g.Name,
			Detail:         "group",
			Kind:           symbolKindNamespace,
			Range:          rangeForSpan(m, g.Span()),
			SelectionRange: rangeForSpan(m, g.Open.Span()),
		}
		// правила и вложенные группы в порядке исходника
		ri, ci := 0, 0
		children := childGroups(parent, gi)
		for ri < len(m.Rules) || ci < len(children) {
			for ri < len(m.Rules) && owner[ri] != gi {
				ri++
			}
			nextRule := len(m.Text) + 1
			if ri < len(m.Rules) {
				nextRule = m.Rules[ri].Start.Start
			}
			if ci < len(children) && groups[children[ci]].Open.Token.Start < nextRule {
				sym.Children = append(sym.Children, build(children[ci]))
				ci++
				continue
			}
			if ri < len(m.Rules) {
				sym.Children = append(sym.Children, ruleSymbol(m, m.Rules[ri]))
				ri++
			}
		}
		return sym
	}

	topGroups := childGroups(parent, -1)
	gi := 0
	for ri, r := range m.Rules {
		for gi < len(topGroups) && groups[topGroups[gi]].Open.Token.Start < r.Start.Start {
			out = append(out, build(topGroups[gi]))
			gi++
		}
		if owner[ri] == -1 {
			out = append(out, ruleSymbol(m, r))
		}
	}
	for ; gi < len(topGroups); gi++ {
		out = append(out, build(topGroups[gi]))
	}
	return out
}

func ruleSymbol(m *analysis.Model, r *syntax.Rule) documentSymbol {
	kind, detail := symbolKindFunction, "parser rule"
	if r.IsLexerRule() {
		kind, detail = symbolKindConstant, "lexer rule"
	}
	if r.Fragment {
		detail = "fragment " + detail
	}
	if n := len(r.Alternatives()); n > 1 {
		detail = fmt.Sprintf("%s, %d alternatives", detail, n)
	}
	return documentSymbol{
		Name:           r.Name,
		Detail:         detail,
		Kind:           kind,
		Range:          rangeForSpan(m, r.Span()),
		SelectionRange: rangeForToken(m, r.NameToken),
	}
}

// ruleOwners maps each rule to the innermost group containing it, -1 for none.
func ruleOwners(m *analysis.Model, groups []analysis.GroupRange) []int {
	owner := make([]int, len(m.Rules))
	for ri := range owner {
		owner[ri] = -1
		for gi, g := range groups {
			first, end := g.RuleRange()
			if ri < first || ri >= end {
				continue
			}
			if owner[ri] == -1 || g.Depth > groups[owner[ri]].Depth {
				owner[ri] = gi
			}
		}
	}
	return owner
}

// groupParents maps each group to its directly enclosing group, -1 for none.
// groups are sorted by position, so the parent is the nearest earlier group
// one level up that still encloses it.
func groupParents(groups []analysis.GroupRange) []int {
	parent := make([]int, len(groups))
	for gi, g := range groups {
		parent[gi] = -1
		for pi := gi - 1; pi >= 0; pi-- {
			p := groups[pi]
			if p.Depth == g.Depth-1 && p.Close.Token.Start > g.Open.Token.Start {
				parent[gi] = pi
				break
			}
		}
	}
	return parent
}

func childGroups(parent []int, gi int) []int {
	var out []int
	for i, p := range parent {
		if p == gi {
			out = append(out, i)
		}
	}
	return out
}
