package kernel

import (
	"context"
	"sync/atomic"
	"time"
)

// System runs background work and hands its completions back to the tick thread.
//
// Work functions run on their own goroutine; their done callbacks only ever run
// inside Drain or Await, on the caller's goroutine.
type System struct {
	mbox    Mailbox
	pending atomic.Int32
}

// NewSystem creates an empty system.
func NewSystem() *System {
	return &System{}
}

// Go starts work in the background. done runs on the next Drain after work returns.
func (s *System) Go(ctx context.Context, work func(context.Context) error, done func(error)) {
	s.pending.Add(1)
	go func() {
		err := work(ctx)
		if err == nil {
			err = ctx.Err()
		}
		s.mbox.Send(Message{
			Kind: MsgDone,
			Err:  err,
			Fn:   func() { done(err) },
		})
	}()
}

// Pending returns the number of started but not yet drained jobs.
func (s *System) Pending() int {
	return int(s.pending.Load())
}

// Drain runs every queued completion and returns how many ran.
func (s *System) Drain() int {
	n := 0
	for {
		msg, ok := s.mbox.TryRecv()
		if !ok {
			return n
		}
		s.pending.Add(-1)
		if msg.Fn != nil {
			msg.Fn()
		}
		n++
	}
}

// Await drains completions until nothing is pending or ctx is done.
func (s *System) Await(ctx context.Context) error {
	for {
		s.Drain()
		if s.Pending() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}
