// Package bus announces grid replacements to registered observers.
package bus

import (
	"errors"
	"fmt"
	"sync"

	"padlife/internal/core"
)

// Reason says why a snapshot was published.
type Reason int

const (
	Created Reason = iota
	PatternApplied
	BufferReplaced
	Ticked
)

var reasonNames = [...]string{
	Created:        "created",
	PatternApplied: "pattern",
	BufferReplaced: "replaced",
	Ticked:         "tick",
}

func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Snapshot is a published grid. Observers must not modify Grid; it stays
// valid until the next publish.
type Snapshot struct {
	Version uint64
	Reason  Reason
	Tick    uint64
	Grid    *core.Grid
}

// Observer receives snapshots. A returned error is reported to the publisher
// and does not stop delivery to later observers.
type Observer func(Snapshot) error

// Handle identifies a subscription.
type Handle uint64

type subscription struct {
	h  Handle
	fn Observer
}

// Bus delivers snapshots to observers in registration order.
type Bus struct {
	mu   sync.Mutex
	last Handle
	subs []subscription
}

// New returns an empty Bus.
func New() *Bus { return &Bus{} }

// Subscribe registers fn and returns a handle for Unsubscribe.
func (b *Bus) Subscribe(fn Observer) Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last++
	b.subs = append(b.subs, subscription{h: b.last, fn: fn})
	return b.last
}

// Unsubscribe removes the observer registered under h. It reports whether
// the handle was found.
func (b *Bus) Unsubscribe(h Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.h == h {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered observers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish calls every observer with s. Observer errors and panics are
// collected and returned joined once all observers have run.
func (b *Bus) Publish(s Snapshot) error {
	b.mu.Lock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.Unlock()

	var errs []error
	for _, sub := range subs {
		if err := deliver(sub, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func deliver(sub subscription, s Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer %d panicked: %v", sub.h, r)
		}
	}()
	if err := sub.fn(s); err != nil {
		return fmt.Errorf("observer %d: %w", sub.h, err)
	}
	return nil
}
