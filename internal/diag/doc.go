// Package diag defines the diagnostic model used by the lint checks and the
// language server.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – byte range of the issue in the analyzed text.
//   - Notes – optional secondary spans/messages for additional context.
//   - Fixes – optional Fix records describing how to address the problem.
//
// Notes must add new context (e.g. "first defined here") rather than repeat
// the message.
//
// # Emitting diagnostics
//
// Producers report through a Reporter, usually via NewReportBuilder or the
// ReportWarning/ReportInfo helpers, chaining WithNote and WithFix before Emit.
// BagReporter collects into a Bag, which supports limits, sorting and
// filtering by severity; wrap it in DedupReporter to drop repeats before they
// count against the limit.
//
// Package diag performs no IO and no formatting beyond the short one-line form
// in short.go; rendering lives in internal/diagfmt.
package diag
