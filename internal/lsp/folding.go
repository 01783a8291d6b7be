package lsp

import (
	"slices"

	"grammarworks/internal/analysis"
	"grammarworks/internal/token"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.model() == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(doc.model()))
}

// buildFoldingRanges folds multi-line rules, blocks, block comments and
// paired group markers.
func buildFoldingRanges(m *analysis.Model) []foldingRange {
	ranges := make([]foldingRange, 0, len(m.Rules))
	add := func(start, end int, kind string) {
		if start < end {
			ranges = append(ranges, foldingRange{StartLine: start, EndLine: end, Kind: kind})
		}
	}
	for _, r := range m.Rules {
		add(r.StartLine(), r.EndLine(), "region")
	}
	for _, b := range m.Blocks {
		add(b.Keyword.StartLine, b.Body.EndLine, "region")
	}
	for _, t := range m.Tokens.All() {
		if t.Kind == token.BlockComment {
			add(t.StartLine, t.EndLine, "comment")
		}
	}
	groups, _ := m.GroupRanges()
	for _, g := range groups {
		add(g.Open.Token.StartLine, g.Close.Token.EndLine, "region")
	}
	slices.SortFunc(ranges, func(a, b foldingRange) int {
		if a.StartLine != b.StartLine {
			return a.StartLine - b.StartLine
		}
		return a.EndLine - b.EndLine
	})
	return ranges
}
