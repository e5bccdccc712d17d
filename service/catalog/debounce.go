package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiescence window before a search input change
// drives a full catalog query.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid input changes and emits at most one value per
// quiescence window. It replaces the UI-framework effect hooks the original
// storefront used: suggestions recompute synchronously on every keystroke,
// but the full filtered result set only after the input settles.
type Debouncer struct {
	mu      sync.Mutex
	d       time.Duration
	timer   *time.Timer
	pending string
	emit    func(string)
	stopped bool
}

// NewDebouncer returns a debouncer that calls emit with the latest input once
// no new input has arrived for d. emit runs on a timer goroutine.
func NewDebouncer(d time.Duration, emit func(string)) *Debouncer {
	if d <= 0 {
		d = DefaultDebounce
	}
	return &Debouncer{d: d, emit: emit}
}

// Input records a new value and restarts the quiescence window.
func (b *Debouncer) Input(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return
	}
	b.pending = value
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, b.fire)
}

func (b *Debouncer) fire() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	value := b.pending
	b.timer = nil
	b.mu.Unlock()
	b.emit(value)
}

// Flush emits the pending value immediately (e.g. on Enter).
func (b *Debouncer) Flush() {
	b.mu.Lock()
	if b.stopped || b.timer == nil {
		b.mu.Unlock()
		return
	}
	b.timer.Stop()
	b.timer = nil
	value := b.pending
	b.mu.Unlock()
	b.emit(value)
}

// Stop cancels any pending emit. The debouncer cannot be reused.
func (b *Debouncer) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
