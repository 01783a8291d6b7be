package analysis

import "sync/atomic"

type published struct {
	seq   uint64
	model *Model
}

// Live is the publication point between analyses and their readers.
// Readers see either the previous complete model or the next one.
type Live struct {
	latest  atomic.Uint64
	current atomic.Pointer[published]
}

// Touch registers a new analysis request and returns its sequence number.
// Any analysis started earlier is superseded.
func (l *Live) Touch() uint64 {
	return l.latest.Add(1)
}

// IsLatest reports whether seq is still the newest requested analysis.
func (l *Live) IsLatest(seq uint64) bool {
	return l.latest.Load() == seq
}

// Publish makes m current if seq is still the newest request and newer than
// the model already published. It reports whether m was published.
func (l *Live) Publish(seq uint64, m *Model) bool {
	next := &published{seq: seq, model: m}
	for {
		if !l.IsLatest(seq) {
			return false
		}
		old := l.current.Load()
		if old != nil && old.seq >= seq {
			return false
		}
		if l.current.CompareAndSwap(old, next) {
			return true
		}
	}
}

// Current returns the last published model, or nil before the first publish.
func (l *Live) Current() *Model {
	if p := l.current.Load(); p != nil {
		return p.model
	}
	return nil
}

// Version returns the sequence number of the current model, 0 when none.
func (l *Live) Version() uint64 {
	if p := l.current.Load(); p != nil {
		return p.seq
	}
	return 0
}

// Update analyzes text and publishes the result unless a newer request
// arrived meanwhile.
func (l *Live) Update(text string) (*Model, bool) {
	seq := l.Touch()
	m := Analyze(text)
	return m, l.Publish(seq, m)
}
