package parser

import (
	"slices"

	"golang.org/x/text/cases"
)

const (
	kwGrammar  = "grammar"
	kwFragment = "fragment"

	// GroupOpen and GroupClose prefix line comments that mark rule groups.
	GroupOpen  = "// $<"
	GroupClose = "// $>"
)

// Таблицы ключевых слов заполняются один раз и дальше только читаются.
var (
	blockIdentifiers = newSet("options", "tokens", "header")
	grammarKinds     = newSet("lexer", "parser", "combined", "treeparser")
	keywords         = []string{"options", "tokens", "header", "fragment"}
)

type set map[string]struct{}

func newSet(words ...string) set {
	s := make(set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s set) has(w string) bool {
	_, ok := s[w]
	return ok
}

// IsBlockIdentifier reports whether word names a block, ignoring case.
func IsBlockIdentifier(word string) bool {
	return blockIdentifiers.has(cases.Fold().String(word))
}

// IsGrammarKind reports whether word is a grammar-kind qualifier.
func IsGrammarKind(word string) bool {
	return grammarKinds.has(word)
}

// Keywords returns the grammar keywords offered for completion.
func Keywords() []string {
	return slices.Clone(keywords)
}
