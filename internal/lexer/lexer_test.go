package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"grammarworks/internal/lexer"
	"grammarworks/internal/token"
)

type tok struct {
	kind token.Kind
	text string
}

func lex(src string) *token.Sequence {
	seq, _ := lexer.Tokenize(src, lexer.Options{})
	return seq
}

func tokensToString(seq *token.Sequence) string {
	var b strings.Builder
	for i, t := range seq.All() {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s(%q)", t.Kind, t.Text())
	}
	return b.String()
}

func expectTokens(t *testing.T, src string, want []tok) {
	t.Helper()
	seq := lex(src)
	if seq.Len() != len(want) {
		t.Fatalf("token count mismatch for %q: got %d want %d\n%s", src, seq.Len(), len(want), tokensToString(seq))
	}
	for i, w := range want {
		got := seq.At(i)
		if got.Kind != w.kind || got.Text() != w.text {
			t.Fatalf("token %d mismatch for %q: got %s(%q) want %s(%q)", i, src, got.Kind, got.Text(), w.kind, w.text)
		}
	}
}

func TestSimpleRule(t *testing.T) {
	expectTokens(t, "a : b ;", []tok{
		{token.Ident, "a"},
		{token.Colon, ":"},
		{token.Ident, "b"},
		{token.Semi, ";"},
	})
}

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{"digits and underscore", "ID_2x", []tok{{token.Ident, "ID_2x"}}},
		{"dollar", "a$b", []tok{{token.Ident, "a$b"}}},
		{"leading digit", "9a", []tok{{token.Char, "9"}, {token.Ident, "a"}}},
		{"leading underscore", "_a", []tok{{token.Char, "_"}, {token.Ident, "a"}}},
		{"unicode letters", "правило", []tok{{token.Ident, "правило"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.src, tt.want)
		})
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{"single", "'abc'", []tok{{token.SingleQuoteString, "'abc'"}}},
		{"double", `"abc"`, []tok{{token.DoubleQuoteString, `"abc"`}}},
		{"escaped quote", `'a\'b'`, []tok{{token.SingleQuoteString, `'a\'b'`}}},
		{"other quote inside", `'a"b'`, []tok{{token.SingleQuoteString, `'a"b'`}}},
		{"unterminated at newline", "'ab\nc", []tok{{token.SingleQuoteString, "'ab"}, {token.Ident, "c"}}},
		{"unterminated at eof", `"ab`, []tok{{token.DoubleQuoteString, `"ab`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.src, tt.want)
		})
	}
}

func TestComments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{"line", "// hi\na", []tok{{token.LineComment, "// hi"}, {token.Ident, "a"}}},
		{"line crlf", "// hi\r\na", []tok{{token.LineComment, "// hi"}, {token.Ident, "a"}}},
		{"line at eof", "// hi", []tok{{token.LineComment, "// hi"}}},
		{"block", "/* x\n y */a", []tok{{token.BlockComment, "/* x\n y */"}, {token.Ident, "a"}}},
		{"unterminated block", "/* x", []tok{{token.BlockComment, "/* x"}}},
		{"slash alone", "a / b", []tok{{token.Ident, "a"}, {token.Char, "/"}, {token.Ident, "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.src, tt.want)
		})
	}
}

func TestEscapeNeverStartsToken(t *testing.T) {
	expectTokens(t, `\'a`, []tok{{token.Char, `\'`}, {token.Ident, "a"}})
	expectTokens(t, `\/\/x`, []tok{{token.Char, `\/`}, {token.Char, `\/`}, {token.Ident, "x"}})
}

func TestBlocks(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []tok
	}{
		{"nested", "{ a { b } }c", []tok{{token.Block, "{ a { b } }"}, {token.Ident, "c"}}},
		{"brace in string", "{ '}' }", []tok{{token.Block, "{ '}' }"}}},
		{"brace in comment", "{ // }\n}", []tok{{token.Block, "{ // }\n}"}}},
		{"unbalanced", "{ a", []tok{{token.Block, "{ a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.src, tt.want)
		})
	}
}

func TestGenericDialect(t *testing.T) {
	seq, _ := lexer.Tokenize("a:{b};", lexer.Options{Dialect: lexer.DialectGeneric})
	want := []tok{
		{token.Ident, "a"}, {token.Char, ":"}, {token.Char, "{"},
		{token.Ident, "b"}, {token.Char, "}"}, {token.Char, ";"},
	}
	if seq.Len() != len(want) {
		t.Fatalf("got %s", tokensToString(seq))
	}
	for i, w := range want {
		if got := seq.At(i); got.Kind != w.kind || got.Text() != w.text {
			t.Fatalf("token %d: got %s(%q) want %s(%q)", i, got.Kind, got.Text(), w.kind, w.text)
		}
	}
}

func TestLineTracking(t *testing.T) {
	src := "a\nb\r\nc\rd /* x\ny */"
	seq, lines := lexer.Tokenize(src, lexer.Options{})
	if lines.Len() != 5 {
		t.Fatalf("lines: got %d want 5", lines.Len())
	}
	wantLines := []struct{ start, end int }{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {3, 4}}
	if seq.Len() != len(wantLines) {
		t.Fatalf("got %s", tokensToString(seq))
	}
	for i, w := range wantLines {
		got := seq.At(i)
		if got.StartLine != w.start || got.EndLine != w.end {
			t.Fatalf("token %d %q: lines %d-%d want %d-%d", i, got.Text(), got.StartLine, got.EndLine, w.start, w.end)
		}
		if got.StartLineOffset != lines.Offset(got.StartLine) {
			t.Fatalf("token %d: start line offset %d", i, got.StartLineOffset)
		}
	}
	last := seq.At(4)
	if last.EndLineOffset != strings.Index(src, "y */") {
		t.Fatalf("end line offset: %d", last.EndLineOffset)
	}
}

func TestCoverage(t *testing.T) {
	srcs := []string{
		"grammar T;\nr : 'a' | b {x} ;",
		"\\\n\\",
		"a\\\r\nb",
		"\xff\xfe é ☃",
		"",
	}
	for _, src := range srcs {
		seq := lex(src)
		covered := make([]bool, len(src))
		prevEnd := 0
		for i, tk := range seq.All() {
			if tk.Index != i {
				t.Fatalf("%q: index %d at %d", src, tk.Index, i)
			}
			if tk.Start < prevEnd || tk.End <= tk.Start || tk.End > len(src) {
				t.Fatalf("%q: bad token span %d-%d after %d", src, tk.Start, tk.End, prevEnd)
			}
			for o := tk.Start; o < tk.End; o++ {
				covered[o] = true
			}
			prevEnd = tk.End
		}
		for o, c := range covered {
			if !c && !strings.ContainsRune(" \t\r\n", rune(src[o])) {
				t.Fatalf("%q: byte %d (%q) not covered", src, o, src[o])
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	src := "grammar X; a : b c | 'd' ; // e\n"
	if tokensToString(lex(src)) != tokensToString(lex(src)) {
		t.Fatal("tokenize is not deterministic")
	}
}
