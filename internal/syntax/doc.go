// Package syntax holds the structural entities recognized in grammar text:
// the grammar declaration, named blocks, rules and group markers, together
// with the per-rule analyses (alternatives, left recursion, rewrite text).
//
// Entities are created fresh by every parse and reference tokens of the
// sequence they were recognized in. Nothing here outlives one analysis.
package syntax
