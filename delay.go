package kvstore

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrDelayCompleted is returned by Cancel when the delay already fired
	// or was already cancelled.
	ErrDelayCompleted = errors.New("kvstore: delay already completed")

	// ErrForeignHandle is returned by Cancel for a handle the Delay did not
	// create.
	ErrForeignHandle = errors.New("kvstore: handle not created by this delay")
)

// Handle is the completion signal of a pending delay.
type Handle interface {
	// Done is closed when the delay elapses. It is never closed for a
	// delay that was cancelled first.
	Done() <-chan struct{}
}

// Delay creates and cancels one-shot timers. The store uses it to schedule
// the whole-store clear; tests substitute a fake to drive the cycle
// deterministically.
type Delay interface {
	Create(d time.Duration) Handle
	Cancel(h Handle) error
}

// timerDelay is the default Delay, backed by time.Timer.
type timerDelay struct{}

type timerHandle struct {
	timer     *time.Timer
	done      chan struct{}
	cancelled chan struct{}
	once      sync.Once
}

func (h *timerHandle) Done() <-chan struct{} { return h.done }

func (timerDelay) Create(d time.Duration) Handle {
	h := &timerHandle{
		timer:     time.NewTimer(d),
		done:      make(chan struct{}),
		cancelled: make(chan struct{}),
	}
	go func() {
		select {
		case <-h.timer.C:
			close(h.done)
		case <-h.cancelled:
		}
	}()
	return h
}

func (timerDelay) Cancel(h Handle) error {
	th, ok := h.(*timerHandle)
	if !ok {
		return ErrForeignHandle
	}
	// Stop reports false when the timer already fired or was stopped.
	if !th.timer.Stop() {
		return ErrDelayCompleted
	}
	th.once.Do(func() { close(th.cancelled) })
	return nil
}
