// Package watch is a single-producer, multi-consumer channel that retains
// only the latest value.
//
// The producer's [Sender.Send] never waits for consumers. Each [Receiver]
// tracks the version it last borrowed, so it can ask whether the value has
// changed and always reads the newest one; intermediate values a slow
// receiver never looked at are skipped.
//
//	tx := watch.New(initial)
//	rx := tx.Subscribe()
//	go func() {
//	    for rx.Changed(ctx) == nil {
//	        render(rx.Borrow())
//	    }
//	}()
//	tx.Send(next)
package watch

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("watch: channel closed")

type shared[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	closed  bool
	// notify is closed and replaced on every send
	notify chan struct{}
}

type Sender[T any] struct {
	sh *shared[T]
}

// New returns a sender holding initial as version 1. A channel with no
// receivers is valid.
func New[T any](initial T) *Sender[T] {
	return &Sender[T]{sh: &shared[T]{
		value:   initial,
		version: 1,
		notify:  make(chan struct{}),
	}}
}

// Send replaces the current value and wakes waiting receivers.
func (s *Sender[T]) Send(v T) error {
	sh := s.sh
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.closed {
		return ErrClosed
	}
	sh.value = v
	sh.version++
	close(sh.notify)
	sh.notify = make(chan struct{})
	return nil
}

// Close marks the channel closed. Receivers can still borrow the last
// value. Close is idempotent.
func (s *Sender[T]) Close() {
	sh := s.sh
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.closed {
		return
	}
	sh.closed = true
	close(sh.notify)
}

// Subscribe returns a receiver that has not yet seen the current value.
func (s *Sender[T]) Subscribe() *Receiver[T] {
	return &Receiver[T]{sh: s.sh}
}

// Receiver reads the latest value. A Receiver is owned by one consumer;
// create one per goroutine with Subscribe.
type Receiver[T any] struct {
	sh   *shared[T]
	seen uint64
}

// HasChanged reports whether a value newer than the last borrowed one is
// available. It returns ErrClosed once the sender has closed and nothing
// new remains.
func (r *Receiver[T]) HasChanged() (bool, error) {
	sh := r.sh
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if sh.version != r.seen {
		return true, nil
	}
	if sh.closed {
		return false, ErrClosed
	}
	return false, nil
}

// Borrow returns the current value and marks it as seen.
func (r *Receiver[T]) Borrow() T {
	sh := r.sh
	sh.mu.Lock()
	defer sh.mu.Unlock()
	r.seen = sh.version
	return sh.value
}

// Changed blocks until a value newer than the last borrowed one exists,
// the sender closes, or ctx is done.
func (r *Receiver[T]) Changed(ctx context.Context) error {
	for {
		sh := r.sh
		sh.mu.Lock()
		if sh.version != r.seen {
			sh.mu.Unlock()
			return nil
		}
		if sh.closed {
			sh.mu.Unlock()
			return ErrClosed
		}
		notify := sh.notify
		sh.mu.Unlock()

		select {
		case <-notify:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
