package internal

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO between a producer that must never block and a
// single consumer reading Out. Run moves queued values to Out in push order.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	wake   chan struct{}
	out    chan T
}

// NewQueue creates an empty, open Queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T),
	}
}

// Push appends v without blocking. It reports false once the queue is closed.
func (q *Queue[T]) Push(v T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.signal()
	return true
}

// Close stops accepting values. Values already pushed are still delivered,
// then Out is closed.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Len returns the number of values not yet delivered
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Out is the consumer side
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Run delivers values until the queue is closed and drained, which closes
// Out, or until ctx is done, which leaves Out open. Call it once.
func (q *Queue[T]) Run(ctx context.Context) error {
	for {
		next, ok, done := q.peek()
		if done {
			close(q.out)
			return nil
		}
		if !ok {
			select {
			case <-q.wake:
				continue
			case <-ctx.Done():
				return nil
			}
		}

		select {
		case q.out <- next:
			q.pop()
		case <-ctx.Done():
			return nil
		}
	}
}

func (q *Queue[T]) peek() (v T, ok, done bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return v, false, q.closed
	}
	return q.items[0], true, false
}

func (q *Queue[T]) pop() {
	q.mu.Lock()
	defer q.mu.Unlock()
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
}

func (q *Queue[T]) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
