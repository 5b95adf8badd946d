package worldmodel

import (
	"context"
	"sync"
)

// Broadcast is a many-waiter, non-queuing wakeup: Notify wakes every task
// currently blocked in Wait, but a Notify with no waiters is simply lost.
// Callers must not count notifications, only react to "at least one update
// happened since I last asked." Realized as the classic closed-channel-swap
// idiom rather than a buffered channel, since a channel send would either
// block past capacity or require an unbounded buffer to avoid dropping
// wakeups for slow waiters — exactly the queuing this type must not do.
type Broadcast struct {
	mu sync.Mutex
	ch chan struct{}
}

// NewBroadcast returns a ready-to-use Broadcast.
func NewBroadcast() *Broadcast {
	return &Broadcast{ch: make(chan struct{})}
}

// Wait blocks until the next Notify, or until ctx is done.
func (b *Broadcast) Wait(ctx context.Context) error {
	b.mu.Lock()
	ch := b.ch
	b.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Notify wakes every current waiter. Multiple Notify calls with no Wait
// between them collapse into a single observable wakeup, matching the
// world model's "a tick is a synchronization point, not a queue" contract.
func (b *Broadcast) Notify() {
	b.mu.Lock()
	old := b.ch
	b.ch = make(chan struct{})
	b.mu.Unlock()
	close(old)
}
