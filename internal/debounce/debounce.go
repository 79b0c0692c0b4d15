// Package debounce coalesces bursts of calls into one trailing-edge invocation.
package debounce

import (
	"sync"
	"time"
)

// DefaultWait is the quiet period used for search input.
const DefaultWait = 80 * time.Millisecond

// Debouncer delays an action until Trigger has not been called for the wait
// duration, then runs it once with the arguments of the last Trigger.
type Debouncer[T any] struct {
	mu      sync.Mutex
	wait    time.Duration
	action  func(T)
	timer   *time.Timer
	gen     uint64
	pending bool
	arg     T
}

// New creates a Debouncer. A non-positive wait selects DefaultWait.
func New[T any](wait time.Duration, action func(T)) *Debouncer[T] {
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Debouncer[T]{wait: wait, action: action}
}

// Trigger cancels any pending invocation and schedules a new one with arg.
func (d *Debouncer[T]) Trigger(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.arg = arg
	d.pending = true

	gen := d.gen
	d.timer = time.AfterFunc(d.wait, func() { d.fire(gen) })
}

// fire runs the action unless a later Trigger or Cancel superseded gen.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	arg := d.take()
	d.mu.Unlock()

	d.action(arg)
}

// take clears the pending call. Callers hold d.mu.
func (d *Debouncer[T]) take() T {
	arg := d.arg
	var zero T
	d.arg = zero
	d.pending = false
	d.timer = nil
	return arg
}

// Cancel drops the pending invocation, if any.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.take()
}

// Flush runs the pending invocation immediately on the calling goroutine and
// reports whether there was one.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	arg := d.take()
	d.mu.Unlock()

	d.action(arg)
	return true
}

// Pending reports whether an invocation is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
