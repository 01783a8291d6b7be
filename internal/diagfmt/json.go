package diagfmt

import (
	"encoding/json"
	"io"

	"grammarworks/internal/analysis"
	"grammarworks/internal/diag"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// FixEditJSON представляет одно редактирование для JSON
type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
}

// FixJSON представляет предложение по исправлению для JSON
type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// FileDiagnosticsJSON groups the diagnostics of one file.
type FileDiagnosticsJSON struct {
	Path        string           `json:"path"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Dropped     int              `json:"dropped,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Files []FileDiagnosticsJSON `json:"files"`
	Count int                   `json:"count"`
}

// Document pairs a file path with its analysis and diagnostics.
type Document struct {
	Path  string
	Model *analysis.Model // nil when the file could not be loaded
	Bag   *diag.Bag
}

// BuildFileDiagnostics формирует JSON-структуру одного файла без сериализации.
func BuildFileDiagnostics(doc Document, opts JSONOpts) FileDiagnosticsJSON {
	items := doc.Bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(doc.Path, d.Primary, doc.Model, opts.IncludePositions),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  note.Msg,
					Location: makeLocation(doc.Path, note.Span, doc.Model, opts.IncludePositions),
				})
			}
		}
		if opts.IncludeFixes {
			for _, fix := range d.Fixes {
				fj := FixJSON{Title: fix.Title}
				for _, e := range fix.Edits {
					fj.Edits = append(fj.Edits, FixEditJSON{
						Location: makeLocation(doc.Path, e.Span, doc.Model, opts.IncludePositions),
						NewText:  e.NewText,
					})
				}
				dj.Fixes = append(dj.Fixes, fj)
			}
		}
		diagnostics = append(diagnostics, dj)
	}
	return FileDiagnosticsJSON{
		Path:        doc.Path,
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Dropped:     doc.Bag.Dropped() + len(items) - maxItems,
	}
}

// BuildDiagnosticsOutput aggregates several files.
func BuildDiagnosticsOutput(docs []Document, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Files: make([]FileDiagnosticsJSON, 0, len(docs))}
	for _, doc := range docs {
		f := BuildFileDiagnostics(doc, opts)
		out.Count += f.Count
		out.Files = append(out.Files, f)
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, docs []Document, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(docs, opts))
}
