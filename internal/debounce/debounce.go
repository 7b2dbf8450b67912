// Package debounce smooths a rapidly toggling boolean into a stable signal.
package debounce

import (
	"sync"
	"time"
)

// Bool is a trailing-edge boolean debouncer. Every input change restarts the
// settle timer; the output adopts the input only after it has held steady for
// the full delay. Transitions of the output invoke notify, if set.
type Bool struct {
	delay  time.Duration
	notify func(bool)

	mu     sync.Mutex
	input  bool
	output bool
	timer  *time.Timer
}

// NewBool creates a debouncer with the given settle delay. notify may be nil.
func NewBool(delay time.Duration, notify func(bool)) *Bool {
	return &Bool{delay: delay, notify: notify}
}

// Set feeds a new input value. Repeated identical values are ignored.
func (b *Bool) Set(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if v == b.input {
		return
	}
	b.input = v
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, b.settle)
}

func (b *Bool) settle() {
	b.mu.Lock()
	if b.output == b.input {
		b.mu.Unlock()
		return
	}
	b.output = b.input
	out := b.output
	notify := b.notify
	b.mu.Unlock()

	if notify != nil {
		notify(out)
	}
}

// Value returns the current debounced output.
func (b *Bool) Value() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output
}

// Stop cancels any pending settle timer. A stopped debouncer may still be
// reused with Set.
func (b *Bool) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
