package lsp

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if ok, err := s.decodeParams(msg, &params); !ok {
		return err
	}
	doc := s.document(params.TextDocument.URI)
	if doc == nil || doc.model() == nil {
		return s.sendResponse(msg.ID, nil)
	}
	m := doc.model()
	tok := identAt(m, params.Position)
	if tok == nil {
		return s.sendResponse(msg.ID, nil)
	}
	rule := m.RuleByName(tok.Text())
	if rule == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, location{URI: doc.uri, Range: rangeForToken(m, rule.NameToken)})
}
