// Package latency provides the artificial network delay used on both legs
// of the connection: a queue holds each item until a fixed interval after
// its insertion, then releases it in insertion order.
package latency

import (
	"sync"
	"time"
)

type entry[T any] struct {
	item      T
	deliverAt time.Time
}

// Queue is a fixed-delay FIFO. Enqueue and Drain are safe under concurrent
// producers with a single draining consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	delay time.Duration
	items []entry[T]
}

func NewQueue[T any](delay time.Duration) *Queue[T] {
	return &Queue[T]{delay: delay}
}

// Enqueue stores item, deliverable no earlier than now+delay.
func (q *Queue[T]) Enqueue(item T, now time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, entry[T]{item: item, deliverAt: now.Add(q.delay)})
}

// Drain removes and returns every item whose deliver time has passed,
// preserving insertion order. Items still in flight stay queued.
func (q *Queue[T]) Drain(now time.Time) []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	// The delay is fixed, so due items are always a prefix.
	n := 0
	for n < len(q.items) && !q.items[n].deliverAt.After(now) {
		n++
	}
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = q.items[i].item
	}
	q.items = append(q.items[:0], q.items[n:]...)
	return out
}

// Purge removes every pending item for which drop returns true, keeping the
// relative order of survivors. It returns the number removed.
func (q *Queue[T]) Purge(drop func(T) bool) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	removed := 0
	for _, e := range q.items {
		if drop(e.item) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	q.items = kept
	return removed
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
