package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"grammarworks/internal/analysis"
	"grammarworks/internal/observ"
)

// RuleJSON describes one rule of the model.
type RuleJSON struct {
	Name          string       `json:"name" msgpack:"name"`
	Lexer         bool         `json:"lexer" msgpack:"lexer"`
	Fragment      bool         `json:"fragment,omitempty" msgpack:"fragment,omitempty"`
	Location      LocationJSON `json:"location" msgpack:"location"`
	StartLine     int          `json:"start_line" msgpack:"start_line"`
	EndLine       int          `json:"end_line" msgpack:"end_line"`
	Alternatives  []string     `json:"alternatives" msgpack:"alternatives"`
	LeftRecursive bool         `json:"left_recursive,omitempty" msgpack:"left_recursive,omitempty"`
	Rewrite       string       `json:"rewrite,omitempty" msgpack:"rewrite,omitempty"`
	Duplicate     bool         `json:"duplicate,omitempty" msgpack:"duplicate,omitempty"`
}

// BlockJSON describes a named block such as options { ... }.
type BlockJSON struct {
	Name     string       `json:"name" msgpack:"name"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

// GroupJSON describes one group marker.
type GroupJSON struct {
	Name      string       `json:"name,omitempty" msgpack:"name,omitempty"`
	Open      bool         `json:"open" msgpack:"open"`
	RuleIndex int          `json:"rule_index" msgpack:"rule_index"`
	Location  LocationJSON `json:"location" msgpack:"location"`
}

// ModelOutput is the serialized analysis of one file.
type ModelOutput struct {
	Path        string         `json:"path" msgpack:"path"`
	Grammar     string         `json:"grammar,omitempty" msgpack:"grammar,omitempty"`
	Kind        string         `json:"kind,omitempty" msgpack:"kind,omitempty"`
	Fingerprint string         `json:"fingerprint" msgpack:"fingerprint"`
	Lines       uint32         `json:"lines" msgpack:"lines"`
	Tokens      uint32         `json:"tokens" msgpack:"tokens"`
	Blocks      []BlockJSON    `json:"blocks" msgpack:"blocks"`
	Rules       []RuleJSON     `json:"rules" msgpack:"rules"`
	Groups      []GroupJSON    `json:"groups" msgpack:"groups"`
	Timings     *observ.Report `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

// BuildModelOutput converts m; timings are attached only when requested.
func BuildModelOutput(path string, m *analysis.Model, withTimings bool) ModelOutput {
	out := ModelOutput{
		Path:        path,
		Grammar:     m.GrammarName(),
		Fingerprint: fmt.Sprintf("%016x", m.Fingerprint),
		Lines:       toU32(m.Lines.Len()),
		Tokens:      toU32(m.Tokens.Len()),
		Blocks:      make([]BlockJSON, 0, len(m.Blocks)),
		Rules:       make([]RuleJSON, 0, len(m.Rules)),
		Groups:      make([]GroupJSON, 0, len(m.Groups)),
	}
	if m.Name != nil {
		out.Kind = m.Name.Kind
	}
	for _, b := range m.Blocks {
		out.Blocks = append(out.Blocks, BlockJSON{
			Name:     b.Name,
			Location: makeLocation(path, b.Span(), m, true),
		})
	}
	for _, r := range m.Rules {
		rj := RuleJSON{
			Name:          r.Name,
			Lexer:         r.IsLexerRule(),
			Fragment:      r.Fragment,
			Location:      makeLocation(path, r.Span(), m, true),
			StartLine:     r.StartLine() + 1,
			EndLine:       r.EndLine() + 1,
			LeftRecursive: r.HasLeftRecursion(),
			Duplicate:     m.IsDuplicate(r.Name),
		}
		for _, alt := range r.Alternatives() {
			rj.Alternatives = append(rj.Alternatives, alt.Text())
		}
		if rj.LeftRecursive {
			rj.Rewrite = r.TextWithoutLeftRecursion()
		}
		out.Rules = append(out.Rules, rj)
	}
	for _, g := range m.Groups {
		out.Groups = append(out.Groups, GroupJSON{
			Name:      g.Name,
			Open:      g.Open,
			RuleIndex: g.RuleIndex,
			Location:  makeLocation(path, g.Span(), m, true),
		})
	}
	if withTimings {
		rep := m.Timings
		out.Timings = &rep
	}
	return out
}

// ModelJSON writes the model as indented JSON.
func ModelJSON(w io.Writer, path string, m *analysis.Model, withTimings bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildModelOutput(path, m, withTimings))
}

// WriteModelMsgpack пишет модель в msgpack, для машинного потребления.
func WriteModelMsgpack(w io.Writer, path string, m *analysis.Model, withTimings bool) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildModelOutput(path, m, withTimings))
}

// ReadModelMsgpack decodes a payload written by WriteModelMsgpack.
func ReadModelMsgpack(r io.Reader) (ModelOutput, error) {
	var out ModelOutput
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return ModelOutput{}, err
	}
	return out, nil
}

// ModelPretty prints a short human-readable outline of the model.
func ModelPretty(w io.Writer, path string, m *analysis.Model, colored bool) {
	p := newPalette(colored)
	name := m.GrammarName()
	if name == "" {
		name = "<unnamed>"
	}
	header := "grammar " + name
	if m.Name != nil && m.Name.Kind != "" {
		header = m.Name.Kind + " " + header
	}
	fmt.Fprintf(w, "%s  %s\n", p.path.Sprint(path), header)
	fmt.Fprintf(w, "  %d tokens, %d lines, %d rules\n", m.Tokens.Len(), m.Lines.Len(), len(m.Rules))

	for _, b := range m.Blocks {
		pos := m.Position(b.Keyword.Start)
		fmt.Fprintf(w, "  block %s at %d:%d\n", b.Name, pos.Line, pos.Col)
	}
	ranges, _ := m.GroupRanges()
	for _, g := range ranges {
		names := make([]string, 0)
		for _, r := range m.GroupRules(g) {
			names = append(names, r.Name)
		}
		fmt.Fprintf(w, "  %sgroup %q: %s\n", strings.Repeat("  ", g.Depth), g.Name, strings.Join(names, ", "))
	}
	WriteRulesTable(w, m, colored)
}
