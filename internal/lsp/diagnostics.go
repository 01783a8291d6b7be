package lsp

import (
	"time"

	"github.com/sirupsen/logrus"

	"grammarworks/internal/analysis"
	"grammarworks/internal/check"
	"grammarworks/internal/diag"
)

func (s *Server) schedule(doc *document, reason string) {
	j := doc.request(s.debounce, reason, func(j *job) { s.analyze(doc, j) })
	if s.currentTrace() {
		s.log.WithFields(logrus.Fields{
			"uri":     doc.uri,
			"seq":     j.seq,
			"version": j.version,
			"reason":  reason,
		}).Debug("analysis scheduled")
	}
}

// flush runs the pending analysis of doc on the calling goroutine.
func (s *Server) flush(doc *document) {
	if j := doc.takePending(); j != nil {
		s.analyze(doc, j)
	}
}

// analyze tokenizes, parses and checks one snapshot. The result is dropped
// when a newer snapshot was requested meanwhile; otherwise it replaces the
// document's model and its diagnostics are sent.
func (s *Server) analyze(doc *document, j *job) {
	defer doc.clearPending(j)
	fields := logrus.Fields{"uri": doc.uri, "seq": j.seq, "version": j.version, "reason": j.reason}
	if !doc.live.IsLatest(j.seq) {
		s.log.WithFields(fields).Debug("analysis skipped: superseded")
		return
	}
	started := time.Now()
	m := analysis.Analyze(j.text)
	bag := check.Run(m, s.currentCheckOptions())
	errs := ruleErrors(m, bag)

	doc.publishMu.Lock()
	defer doc.publishMu.Unlock()
	if !doc.live.Publish(j.seq, m) {
		s.log.WithFields(fields).Debug("analysis discarded: superseded")
		return
	}
	doc.errors = errs

	list := toLSPDiagnostics(doc.uri, m, bag)
	version := j.version
	if err := s.sendPublish(doc.uri, &version, list); err != nil {
		s.log.WithFields(fields).WithError(err).Warn("failed to publish diagnostics")
		return
	}
	doc.published = true
	if s.currentTrace() {
		fields["rules"] = len(m.Rules)
		fields["diagnostics"] = len(list)
		fields["elapsed"] = time.Since(started).Round(time.Microsecond)
		s.log.WithFields(fields).Debug("analysis published")
	}
}

// ruleErrors builds the rule overlay of m from its diagnostics.
func ruleErrors(m *analysis.Model, bag *diag.Bag) *analysis.ErrorMap {
	errs := analysis.NewErrorMap()
	for _, d := range bag.Items() {
		if r := m.RuleAt(int(d.Primary.Start)); r != nil {
			errs.Add(r, d.Message)
		}
	}
	return errs
}

func toLSPDiagnostics(uri string, m *analysis.Model, bag *diag.Bag) []lspDiagnostic {
	items := bag.Items()
	out := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		ld := lspDiagnostic{
			Range:    rangeForSpan(m, d.Primary),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "grammarworks",
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			ld.RelatedInformation = append(ld.RelatedInformation, diagnosticRelatedInformation{
				Location: location{URI: uri, Range: rangeForSpan(m, n.Span)},
				Message:  n.Msg,
			})
		}
		out = append(out, ld)
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return severityError
	case diag.SevWarning:
		return severityWarning
	default:
		return severityInformation
	}
}
