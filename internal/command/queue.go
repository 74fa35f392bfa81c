package command

import "sync"

const DefaultCapacity = 64

// Queue is a bounded many-producer, single-consumer command queue.
// Producers never block.
type Queue struct {
	mu     sync.RWMutex
	closed bool
	ch     chan Command
}

// NewQueue returns a queue holding at most capacity pending commands.
// A capacity below 1 uses DefaultCapacity.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Queue{ch: make(chan Command, capacity)}
}

// TrySend enqueues c without waiting. It returns ErrQueueFull when the
// buffer is full and ErrQueueClosed after Close.
func (q *Queue) TrySend(c Command) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.ch <- c:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting commands. Commands already queued can still be
// received. Close is idempotent and safe to call alongside TrySend.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

// C is the consumer side. It is closed once the queue is closed and drained.
func (q *Queue) C() <-chan Command { return q.ch }

func (q *Queue) Len() int { return len(q.ch) }
func (q *Queue) Cap() int { return cap(q.ch) }
