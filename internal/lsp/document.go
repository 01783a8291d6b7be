package lsp

import (
	"sync"
	"time"

	"grammarworks/internal/analysis"
)

// document is one open editor buffer. Text and version change on every edit;
// the analyzed model is published through live and read without locks. The
// rule overlay belongs to one model and is swapped together with it under
// publishMu.
type document struct {
	uri string

	mu      sync.Mutex
	text    string
	version int
	timer   *time.Timer
	pending *job

	live   analysis.Live
	errors *analysis.ErrorMap

	// publishMu упорядочивает публикацию модели и отправку диагностик
	publishMu sync.Mutex
	published bool
}

// job is a snapshot of the text taken when an analysis was requested.
type job struct {
	seq     uint64
	text    string
	version int
	reason  string
}

func newDocument(uri, text string, version int) *document {
	return &document{
		uri:     uri,
		text:    text,
		version: version,
		errors:  analysis.NewErrorMap(),
	}
}

func (d *document) edit(changes []textDocumentContentChangeEvent, version int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = applyChanges(d.text, changes)
	d.version = version
}

func (d *document) replace(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
}

func (d *document) snapshot() (string, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text, d.version
}

// request supersedes every earlier analysis and arms the debounce timer.
func (d *document) request(delay time.Duration, reason string, run func(*job)) *job {
	d.mu.Lock()
	defer d.mu.Unlock()
	j := &job{seq: d.live.Touch(), text: d.text, version: d.version, reason: reason}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = j
	d.timer = time.AfterFunc(delay, func() { run(j) })
	return j
}

// takePending stops the timer and returns the job it would have run.
func (d *document) takePending() *job {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	j := d.pending
	d.pending = nil
	return j
}

func (d *document) stopTimer() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// cancel invalidates pending and running analyses.
func (d *document) cancel() {
	d.stopTimer()
	d.live.Touch()
}

func (d *document) model() *analysis.Model {
	return d.live.Current()
}

// current returns the published model with the overlay built from its
// diagnostics.
func (d *document) current() (*analysis.Model, *analysis.ErrorMap) {
	d.publishMu.Lock()
	defer d.publishMu.Unlock()
	return d.live.Current(), d.errors
}

func (d *document) hasPublished() bool {
	d.publishMu.Lock()
	defer d.publishMu.Unlock()
	return d.published
}

func (d *document) clearPending(j *job) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == j {
		d.pending = nil
	}
}
