package lsp

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.log.WithError(err).Warn("invalid configuration")
		return nil
	}
	if s.applySettings(params.Settings) {
		s.reanalyzeAll()
	}
	return nil
}

// applySettings reports whether check options changed.
func (s *Server) applySettings(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := settings.Grammarworks.LSP.Trace; t != nil {
		s.trace = *t
		if s.trace {
			s.log.SetLevel(logrus.DebugLevel)
		} else {
			s.log.SetLevel(logrus.InfoLevel)
		}
	}
	before := s.checkOpts
	c := settings.Grammarworks.Check
	if c.LeftRecursion != nil {
		s.checkOpts.LeftRecursion = *c.LeftRecursion
	}
	if c.Duplicates != nil {
		s.checkOpts.Duplicates = *c.Duplicates
	}
	if c.Groups != nil {
		s.checkOpts.Groups = *c.Groups
	}
	return before != s.checkOpts
}

func (s *Server) reanalyzeAll() {
	s.mu.Lock()
	docs := make([]*document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	s.mu.Unlock()
	for _, doc := range docs {
		s.schedule(doc, "configuration")
	}
}
