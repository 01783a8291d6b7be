package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero kind and is never produced by the tokenizer.
	Invalid Kind = iota
	// SingleQuoteString represents a '...' literal.
	SingleQuoteString
	// DoubleQuoteString represents a "..." literal.
	DoubleQuoteString
	// LineComment represents a // comment up to (excluding) the line break.
	LineComment
	// BlockComment represents a /* ... */ comment.
	BlockComment
	// Ident represents an identifier.
	Ident
	// Char represents any other single non-whitespace character.
	Char
	// Block represents a brace-balanced body { ... } (grammar dialect only).
	Block
	// Colon represents ':' (grammar dialect only).
	Colon
	// Semi represents ';' (grammar dialect only).
	Semi
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	SingleQuoteString: "SingleQuoteString",
	DoubleQuoteString: "DoubleQuoteString",
	LineComment:       "LineComment",
	BlockComment:      "BlockComment",
	Ident:             "Ident",
	Char:              "Char",
	Block:             "Block",
	Colon:             "Colon",
	Semi:              "Semi",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsComment reports whether the kind is a line or block comment.
func (k Kind) IsComment() bool { return k == LineComment || k == BlockComment }

// IsString reports whether the kind is a quoted literal.
func (k Kind) IsString() bool { return k == SingleQuoteString || k == DoubleQuoteString }
