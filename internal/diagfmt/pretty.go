package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"grammarworks/internal/diag"
	"grammarworks/internal/source"
)

type palette struct {
	err, warn, info, note, fix, path, code *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		note: color.New(color.FgBlue),
		fix:  color.New(color.FgGreen),
		path: color.New(color.Bold),
		code: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.fix, p.path, p.code} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, doc Document, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range doc.Bag.Items() {
		loc := doc.Path
		if doc.Model != nil {
			pos := doc.Model.Position(int(d.Primary.Start))
			loc = fmt.Sprintf("%s:%d:%d", doc.Path, pos.Line, pos.Col)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprint(loc),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.code.Sprint(d.Code.ID()),
			d.Message)
		if opts.Context && doc.Model != nil {
			writeContext(w, doc, d.Primary, p.severity(d.Severity))
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				noteLoc := doc.Path
				if doc.Model != nil {
					np := doc.Model.Position(int(n.Span.Start))
					noteLoc = fmt.Sprintf("%s:%d:%d", doc.Path, np.Line, np.Col)
				}
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), noteLoc, n.Msg)
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("fix:"), f.Title)
				for _, e := range f.Edits {
					if e.NewText != "" {
						fmt.Fprintf(w, "    %s %q\n", p.fix.Sprint("+"), strings.TrimSpace(e.NewText))
					}
				}
			}
		}
	}
}

// writeContext prints the first line of span with a caret underline.
func writeContext(w io.Writer, doc Document, span source.Span, c *color.Color) {
	m := doc.Model
	start := int(span.Start)
	line := m.Lines.LineOf(start)
	lineStart := m.Lines.Offset(line)
	lineEnd := len(m.Text)
	if line+1 < m.Lines.Len() {
		lineEnd = m.Lines.Offset(line + 1)
	}
	text := strings.TrimRight(m.Text[lineStart:lineEnd], "\r\n")
	if text == "" {
		return
	}
	end := min(int(span.End), lineStart+len(text))
	if start > lineStart+len(text) {
		start = lineStart + len(text)
	}
	pad := runewidth.StringWidth(text[:start-lineStart])
	width := max(runewidth.StringWidth(m.Text[start:max(end, start)]), 1)
	gutter := fmt.Sprintf("%4d | ", line+1)
	fmt.Fprintf(w, "%s%s\n", gutter, text)
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), c.Sprint("^"+strings.Repeat("~", width-1)))
}

// Summary prints one line with totals.
func Summary(w io.Writer, files, errors, warnings, infos int, colored bool) {
	p := newPalette(colored)
	fmt.Fprintf(w, "%d file(s): %s, %s, %s\n", files,
		p.err.Sprintf("%d error(s)", errors),
		p.warn.Sprintf("%d warning(s)", warnings),
		p.info.Sprintf("%d info", infos))
}
