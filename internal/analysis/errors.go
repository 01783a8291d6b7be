package analysis

import (
	"html"
	"strings"
	"sync"

	"grammarworks/internal/syntax"
)

// ErrorMap attaches externally computed messages to rules. Keys are rule
// identities, so two rules sharing a name keep separate lists. The map is
// owned by the consumer and lives no longer than the model it annotates.
type ErrorMap struct {
	mu   sync.RWMutex
	errs map[*syntax.Rule][]string
}

func NewErrorMap() *ErrorMap {
	return &ErrorMap{errs: make(map[*syntax.Rule][]string)}
}

// Add appends a message to the rule's list.
func (e *ErrorMap) Add(r *syntax.Rule, msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.errs[r] = append(e.errs[r], msg)
}

// Set replaces the rule's messages; an empty list clears them.
func (e *ErrorMap) Set(r *syntax.Rule, msgs []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(msgs) == 0 {
		delete(e.errs, r)
		return
	}
	e.errs[r] = append([]string(nil), msgs...)
}

func (e *ErrorMap) Errors(r *syntax.Rule) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]string(nil), e.errs[r]...)
}

func (e *ErrorMap) HasErrors(r *syntax.Rule) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.errs[r]) > 0
}

// ErrorText formats the rule's messages for a tooltip: HTML-escaped, one per
// line, wrapped in <html>. It returns "" when the rule has no errors.
func (e *ErrorMap) ErrorText(r *syntax.Rule) string {
	msgs := e.Errors(r)
	if len(msgs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<html>")
	for i, msg := range msgs {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(html.EscapeString(msg))
	}
	b.WriteString("</html>")
	return b.String()
}

// RulesWithErrors returns the rules of m that have messages, in source order.
func (e *ErrorMap) RulesWithErrors(m *Model) []*syntax.Rule {
	return m.filterRules(e.HasErrors)
}

func (e *ErrorMap) NumberOfRulesWithErrors(m *Model) int {
	return len(e.RulesWithErrors(m))
}
