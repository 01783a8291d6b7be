package parser

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"grammarworks/internal/syntax"
	"grammarworks/internal/token"
)

// Result holds everything recognized in one pass.
type Result struct {
	Name   *syntax.GrammarName
	Blocks []*syntax.Block
	Rules  []*syntax.Rule
	Groups []*syntax.Group
}

// Parser: состояние разбора одной последовательности токенов
type Parser struct {
	seq  *token.Sequence
	c    *Cursor
	fold cases.Caser // Caser хранит состояние, поэтому свой на каждый разбор
	res  Result
}

// Parse recognizes grammar declarations, blocks, rules and group markers.
// Malformed constructs are skipped; the result is whatever was recognized.
func Parse(seq *token.Sequence) Result {
	p := Parser{
		seq:  seq,
		c:    NewCursor(seq),
		fold: cases.Fold(),
	}
	p.run()
	return p.res
}

func (p *Parser) run() {
	for p.c.Advance() {
		if n := p.matchName(); n != nil {
			p.res.Name = n
			continue
		}
		if b := p.matchBlock(); b != nil {
			p.res.Blocks = append(p.res.Blocks, b)
			continue
		}
		switch p.c.T(0).Kind {
		case token.Ident:
			if r := p.matchRule(); r != nil {
				p.res.Rules = append(p.res.Rules, r)
			}
		case token.LineComment:
			if g := p.matchGroup(); g != nil {
				p.res.Groups = append(p.res.Groups, g)
			}
		}
	}
}

// matchName recognizes `[kind] grammar <name> ;`.
func (p *Parser) matchName() *syntax.GrammarName {
	start := p.c.T(0)
	if !start.Is(token.Ident, kwGrammar) {
		return nil
	}
	n := &syntax.GrammarName{Start: start}
	if prev := p.c.T(-1); prev != nil && prev.Kind == token.Ident && IsGrammarKind(prev.Text()) {
		n.Kind = prev.Text()
		n.KindToken = prev
	}

	mark := p.c.Mark()
	var name *token.Token
	for p.c.Advance() {
		t := p.c.T(0)
		if t.Kind == token.Semi {
			if name == nil {
				break
			}
			n.Name = name.Text()
			n.End = t
			return n
		}
		if name == nil && t.Kind == token.Ident {
			name = t
		}
	}
	p.c.Reset(mark)
	return nil
}

// matchBlock recognizes `options|tokens|header {...}`.
func (p *Parser) matchBlock() *syntax.Block {
	kw := p.c.T(0)
	if kw.Kind != token.Ident || !blockIdentifiers.has(p.fold.String(kw.Text())) {
		return nil
	}
	body := p.c.T(1)
	if body == nil || body.Kind != token.Block {
		return nil
	}
	p.c.Advance()
	return &syntax.Block{Name: kw.Text(), Keyword: kw, Body: body}
}

// matchRule recognizes `[fragment] name <comments> : ... ;`. Without a colon
// the cursor is restored; without a terminating semicolon nothing is recorded.
func (p *Parser) matchRule() *syntax.Rule {
	mark := p.c.Mark()
	start := p.c.T(0)
	name := start
	if next := p.c.T(1); start.Text() == kwFragment && next != nil && next.Kind == token.Ident {
		p.c.Advance()
		name = next
	}

	for next := p.c.T(1); next != nil && next.Kind.IsComment(); next = p.c.T(1) {
		p.c.Advance()
	}
	if next := p.c.T(1); next == nil || next.Kind != token.Colon {
		p.c.Reset(mark)
		return nil
	}
	p.c.Advance()
	colon := p.c.T(0)

	for p.c.Advance() {
		if t := p.c.T(0); t.Kind == token.Semi {
			return syntax.NewRule(p.seq, start, name, colon, t)
		}
	}
	return nil
}

// matchGroup recognizes `// $<name` and `// $>` markers.
func (p *Parser) matchGroup() *syntax.Group {
	t := p.c.T(0)
	text := t.Text()
	idx := len(p.res.Rules) - 1
	switch {
	case strings.HasPrefix(text, GroupOpen):
		name := strings.TrimRightFunc(text[len(GroupOpen):], unicode.IsSpace)
		return &syntax.Group{Name: name, Open: true, RuleIndex: idx, Token: t}
	case strings.HasPrefix(text, GroupClose):
		return &syntax.Group{RuleIndex: idx, Token: t}
	}
	return nil
}
