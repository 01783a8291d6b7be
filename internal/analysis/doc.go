// Package analysis runs the tokenize and parse passes over one text snapshot
// and exposes the result as an immutable Model.
//
// A Model is never modified after Analyze returns. Live is the only shared
// mutable state: it publishes complete models to concurrent readers so that
// the newest analysis always wins.
package analysis
