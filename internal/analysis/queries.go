package analysis

import (
	"slices"
	"sort"

	"github.com/agnivade/levenshtein"

	"grammarworks/internal/syntax"
	"grammarworks/internal/token"
)

// suggestDistance bounds how far a name may be from a rule to be suggested.
const suggestDistance = 3

func (m *Model) rulesNamed(name string) []*syntax.Rule {
	if m.index == nil {
		return nil
	}
	v, ok := m.index.Get(name)
	if !ok {
		return nil
	}
	return v.([]*syntax.Rule)
}

// RuleByName returns the first rule with the given name, or nil.
func (m *Model) RuleByName(name string) *syntax.Rule {
	if rules := m.rulesNamed(name); len(rules) > 0 {
		return rules[0]
	}
	return nil
}

// RuleNames returns the distinct rule names in sorted order.
func (m *Model) RuleNames() []string {
	if m.index == nil {
		return nil
	}
	keys := m.index.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// SortedRules returns all rules ordered by name; duplicates keep source order.
func (m *Model) SortedRules() []*syntax.Rule {
	if m.index == nil {
		return nil
	}
	out := make([]*syntax.Rule, 0, len(m.Rules))
	it := m.index.Iterator()
	for it.Next() {
		out = append(out, it.Value().([]*syntax.Rule)...)
	}
	return out
}

// LexerRules returns the rules with an all-uppercase name, in source order.
func (m *Model) LexerRules() []*syntax.Rule {
	return m.filterRules(func(r *syntax.Rule) bool { return r.IsLexerRule() })
}

// ParserRules returns the remaining rules, in source order.
func (m *Model) ParserRules() []*syntax.Rule {
	return m.filterRules(func(r *syntax.Rule) bool { return !r.IsLexerRule() })
}

func (m *Model) filterRules(keep func(*syntax.Rule) bool) []*syntax.Rule {
	var out []*syntax.Rule
	for _, r := range m.Rules {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// RuleAt returns the rule whose text contains off, or nil.
func (m *Model) RuleAt(off int) *syntax.Rule {
	i := sort.Search(len(m.Rules), func(i int) bool { return m.Rules[i].End.End > off })
	if i < len(m.Rules) && m.Rules[i].Contains(off) {
		return m.Rules[i]
	}
	return nil
}

// RuleStartingWith returns the rule whose first token is tok, or nil.
func (m *Model) RuleStartingWith(tok *token.Token) *syntax.Rule {
	if tok == nil {
		return nil
	}
	for _, r := range m.Rules {
		if r.Start == tok || r.NameToken == tok {
			return r
		}
		if r.Start.Start > tok.Start {
			break
		}
	}
	return nil
}

// IsDuplicate reports whether more than one rule has the given name.
func (m *Model) IsDuplicate(name string) bool {
	return len(m.rulesNamed(name)) > 1
}

// DuplicateRules returns every rule whose name is shared with another rule,
// in source order.
func (m *Model) DuplicateRules() []*syntax.Rule {
	return m.filterRules(func(r *syntax.Rule) bool { return m.IsDuplicate(r.Name) })
}

// Suggest returns the rule names closest to name, sorted.
func (m *Model) Suggest(name string) []string {
	best := suggestDistance + 1
	out := []string{}
	for _, c := range m.RuleNames() {
		if c == name {
			continue
		}
		d := levenshtein.ComputeDistance(name, c)
		switch {
		case d < best:
			out = []string{c}
			best = d
		case d == best:
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}
