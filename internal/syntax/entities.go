package syntax

import (
	"grammarworks/internal/source"
	"grammarworks/internal/token"
)

// GrammarName is the `[kind] grammar <name> ;` declaration.
type GrammarName struct {
	Name      string
	Kind      string       // lexer, parser, combined, treeparser; "" when absent
	KindToken *token.Token // nil when absent
	Start     *token.Token // the `grammar` keyword
	End       *token.Token // the semicolon
}

// HasKind reports whether a grammar-kind qualifier preceded the declaration.
func (g *GrammarName) HasKind() bool {
	return g != nil && g.KindToken != nil
}

// Span covers the qualifier (if any) through the semicolon.
func (g *GrammarName) Span() source.Span {
	start := g.Start
	if g.KindToken != nil {
		start = g.KindToken
	}
	return source.SpanOf(start.Start, g.End.End)
}

// Block is a named body such as `options { ... }`.
type Block struct {
	Name    string // keyword as written
	Keyword *token.Token
	Body    *token.Token
}

func (b *Block) Span() source.Span {
	return source.SpanOf(b.Keyword.Start, b.Body.End)
}

// Group is one `// $<name` or `// $>` marker. Open and close markers are
// recorded independently and never paired here.
type Group struct {
	Name      string // open markers only
	Open      bool
	RuleIndex int // last rule recognized before the marker, -1 when none
	Token     *token.Token
}

func (g *Group) Span() source.Span {
	return g.Token.Span()
}
