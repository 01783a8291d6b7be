package token

// Sequence is the append-only, ordered token list of one tokenize call.
// All tokens share the same source string.
type Sequence struct {
	src   string
	items []*Token
}

// NewSequence creates an empty sequence over src.
func NewSequence(src string) *Sequence {
	return &Sequence{src: src, items: make([]*Token, 0, len(src)/4+1)}
}

// Append stores a copy of tok, binds it to the sequence source and assigns Index.
func (s *Sequence) Append(tok Token) *Token {
	tok.src = s.src
	tok.Index = len(s.items)
	t := &tok
	s.items = append(s.items, t)
	return t
}

// Source returns the text the sequence was built from.
func (s *Sequence) Source() string { return s.src }

// Len returns the number of tokens.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the token at i, or nil when i is out of range.
func (s *Sequence) At(i int) *Token {
	if s == nil || i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// All returns the tokens. Callers must not modify the returned slice.
func (s *Sequence) All() []*Token {
	if s == nil {
		return nil
	}
	return s.items
}

// Range returns the contiguous tokens from first through last inclusive.
// It returns nil if either token does not belong to this sequence.
func (s *Sequence) Range(first, last *Token) []*Token {
	if !s.Owns(first) || !s.Owns(last) || first.Index > last.Index {
		return nil
	}
	return s.items[first.Index : last.Index+1]
}

// Owns reports whether tok was appended to this sequence.
func (s *Sequence) Owns(tok *Token) bool {
	return s != nil && tok != nil && tok.Index >= 0 && tok.Index < len(s.items) && s.items[tok.Index] == tok
}

// TokenAt returns the token containing off, or nil when off falls on whitespace.
func (s *Sequence) TokenAt(off int) *Token {
	if s == nil {
		return nil
	}
	lo, hi := 0, len(s.items)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if s.items[mid].End <= off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(s.items) && s.items[lo].Contains(off) {
		return s.items[lo]
	}
	return nil
}

// Substring returns the exact source text from the start of first to the end of last.
func (s *Sequence) Substring(first, last *Token) string {
	if first == nil || last == nil || first.Start > last.End {
		return ""
	}
	return s.src[first.Start:last.End]
}
