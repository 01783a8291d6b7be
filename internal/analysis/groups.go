package analysis

import (
	"slices"

	"grammarworks/internal/source"
	"grammarworks/internal/syntax"
)

// GroupRange is an open marker paired with its close marker.
type GroupRange struct {
	Name  string
	Open  *syntax.Group
	Close *syntax.Group
	Depth int // 0 for top-level groups
}

// Span covers both markers.
func (g GroupRange) Span() source.Span {
	return source.SpanOf(g.Open.Token.Start, g.Close.Token.End)
}

// RuleRange returns the half-open index range of the rules between the markers.
func (g GroupRange) RuleRange() (first, end int) {
	return g.Open.RuleIndex + 1, g.Close.RuleIndex + 1
}

// GroupRanges pairs group markers like brackets. Nested groups are allowed.
// Close markers without an open one, and open markers never closed, are
// returned as unmatched.
func (m *Model) GroupRanges() (ranges []GroupRange, unmatched []*syntax.Group) {
	var stack []*syntax.Group
	for _, g := range m.Groups {
		if g.Open {
			stack = append(stack, g)
			continue
		}
		if len(stack) == 0 {
			unmatched = append(unmatched, g)
			continue
		}
		open := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ranges = append(ranges, GroupRange{Name: open.Name, Open: open, Close: g, Depth: len(stack)})
	}
	unmatched = append(unmatched, stack...)
	slices.SortFunc(ranges, func(a, b GroupRange) int { return a.Open.Token.Start - b.Open.Token.Start })
	slices.SortFunc(unmatched, func(a, b *syntax.Group) int { return a.Token.Start - b.Token.Start })
	return ranges, unmatched
}

// GroupRules returns the rules enclosed by g.
func (m *Model) GroupRules(g GroupRange) []*syntax.Rule {
	first, end := g.RuleRange()
	if first < 0 || end > len(m.Rules) || first >= end {
		return nil
	}
	return m.Rules[first:end]
}
