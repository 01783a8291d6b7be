package analysis

import (
	"fmt"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/treemap"

	"grammarworks/internal/lexer"
	"grammarworks/internal/observ"
	"grammarworks/internal/parser"
	"grammarworks/internal/source"
	"grammarworks/internal/syntax"
	"grammarworks/internal/token"
)

// Model is the complete structural result of one analysis.
type Model struct {
	Text        string
	Tokens      *token.Sequence
	Lines       source.Lines
	Name        *syntax.GrammarName
	Blocks      []*syntax.Block
	Rules       []*syntax.Rule
	Groups      []*syntax.Group
	Fingerprint uint64
	Timings     observ.Report

	// имя правила -> []*syntax.Rule в порядке исходника
	index *treemap.Map
}

// Analyze tokenizes and parses text from scratch.
func Analyze(text string) *Model {
	timer := observ.NewTimer()

	var (
		seq   *token.Sequence
		lines source.Lines
		res   parser.Result
	)
	timer.Measure("tokenize", func() string {
		seq, lines = lexer.Tokenize(text, lexer.Options{Dialect: lexer.DialectGrammar})
		return fmt.Sprintf("%d tokens", seq.Len())
	})
	timer.Measure("parse", func() string {
		res = parser.Parse(seq)
		return fmt.Sprintf("%d rules", len(res.Rules))
	})

	m := &Model{
		Text:        text,
		Tokens:      seq,
		Lines:       lines,
		Name:        res.Name,
		Blocks:      res.Blocks,
		Rules:       res.Rules,
		Groups:      res.Groups,
		Fingerprint: source.Fingerprint(text),
	}
	timer.Measure("index", func() string {
		m.index = buildIndex(m.Rules)
		return ""
	})
	m.Timings = timer.Report()
	return m
}

func buildIndex(rules []*syntax.Rule) *treemap.Map {
	idx := treemap.NewWithStringComparator()
	for _, r := range rules {
		var list []*syntax.Rule
		if v, ok := idx.Get(r.Name); ok {
			list = v.([]*syntax.Rule)
		}
		idx.Put(r.Name, append(list, r))
	}
	return idx
}

// GrammarName returns the declared name or "".
func (m *Model) GrammarName() string {
	if m.Name == nil {
		return ""
	}
	return m.Name.Name
}

// Position converts a byte offset to a 1-based line and column.
func (m *Model) Position(off int) source.LineCol {
	return m.Lines.Position(m.Text, off)
}

// Offset returns the byte offset of a 0-based line and rune column.
func (m *Model) Offset(line, col int) int {
	if line < 0 {
		return 0
	}
	if line >= m.Lines.Len() {
		return len(m.Text)
	}
	off := m.Lines.Offset(line)
	for i := 0; i < col && off < len(m.Text); i++ {
		b := m.Text[off]
		if b == '\n' || b == '\r' {
			break
		}
		_, sz := utf8.DecodeRuneInString(m.Text[off:])
		off += sz
	}
	return off
}
