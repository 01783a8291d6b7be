package lexer

// Dialect selects which punctuation gets a dedicated token kind.
type Dialect uint8

const (
	// DialectGrammar emits Colon, Semi and brace-balanced Block tokens.
	DialectGrammar Dialect = iota
	// DialectGeneric emits every punctuation character as a Char token.
	DialectGeneric
)

type Options struct {
	Dialect Dialect
}
