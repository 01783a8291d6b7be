package diag

import (
	"fmt"
	"strings"

	"grammarworks/internal/source"
)

// FormatShort renders diagnostics one per line as
// "SEVERITY CODE path:line:col message", in the order given. Notes follow
// their diagnostic indented by two spaces when includeNotes is set.
func FormatShort(diags []Diagnostic, path, text string, lines source.Lines, includeNotes bool) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		pos := lines.Position(text, int(d.Primary.Start))
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code.ID(), path, pos.Line, pos.Col, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			np := lines.Position(text, int(n.Span.Start))
			fmt.Fprintf(&b, "\n  note %s:%d:%d %s", path, np.Line, np.Col, n.Msg)
		}
	}
	return b.String()
}
