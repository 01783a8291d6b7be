// Package token defines lexical token kinds and the token sequence produced by
// the grammarworks tokenizer.
// Invariants:
//   - Token text is never copied: Text() slices the shared source string.
//   - Tokens of a Sequence are ordered by Start and never overlap.
//   - Index equals the position of the token in its owning Sequence.
//   - Whitespace produces no tokens; every other byte belongs to exactly one token.
package token
