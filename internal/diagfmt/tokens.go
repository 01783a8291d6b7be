package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"grammarworks/internal/token"
)

// TokenJSON is the serialized form of one token.
type TokenJSON struct {
	Index     int    `json:"index" msgpack:"index"`
	Kind      string `json:"kind" msgpack:"kind"`
	Text      string `json:"text" msgpack:"text"`
	Start     int    `json:"start" msgpack:"start"`
	End       int    `json:"end" msgpack:"end"`
	StartLine int    `json:"start_line" msgpack:"start_line"`
	EndLine   int    `json:"end_line" msgpack:"end_line"`
	StartCol  int    `json:"start_col" msgpack:"start_col"` // байты от начала строки
	EndCol    int    `json:"end_col" msgpack:"end_col"`
}

// BuildTokens converts a sequence to its serialized form.
func BuildTokens(seq *token.Sequence) []TokenJSON {
	out := make([]TokenJSON, 0, seq.Len())
	for _, t := range seq.All() {
		out = append(out, TokenJSON{
			Index:     t.Index,
			Kind:      t.Kind.String(),
			Text:      t.Text(),
			Start:     t.Start,
			End:       t.End,
			StartLine: t.StartLine,
			EndLine:   t.EndLine,
			StartCol:  t.Start - t.StartLineOffset,
			EndCol:    t.End - t.EndLineOffset,
		})
	}
	return out
}

// FormatTokensPretty печатает по одному токену на строку:
// <index> <line>:<col>-<line>:<col> <Kind> <quoted text>
func FormatTokensPretty(w io.Writer, seq *token.Sequence) error {
	for _, t := range seq.All() {
		if _, err := fmt.Fprintf(w, "%5d  %d:%d-%d:%d  %-18s %s\n",
			t.Index,
			t.StartLine+1, t.Start-t.StartLineOffset+1,
			t.EndLine+1, t.End-t.EndLineOffset+1,
			t.Kind.String(),
			strconv.Quote(t.Text())); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the token list as a JSON array.
func FormatTokensJSON(w io.Writer, seq *token.Sequence) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTokens(seq))
}
