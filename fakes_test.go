package kvstore

import (
	"sync"
	"time"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeHandle is a delay completion signal fired by the test.
type fakeHandle struct {
	duration time.Duration
	done     chan struct{}
}

func (h *fakeHandle) Done() <-chan struct{} { return h.done }

// fakeDelay records Create and Cancel calls so tests can drive and inspect
// the clear cycle deterministically.
type fakeDelay struct {
	mu        sync.Mutex
	created   []*fakeHandle
	cancelled []*fakeHandle
	cancelErr error
}

func (d *fakeDelay) Create(dur time.Duration) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := &fakeHandle{duration: dur, done: make(chan struct{})}
	d.created = append(d.created, h)
	return h
}

func (d *fakeDelay) Cancel(h Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelErr != nil {
		return d.cancelErr
	}
	d.cancelled = append(d.cancelled, h.(*fakeHandle))
	return nil
}

// fire completes the i-th created timer.
func (d *fakeDelay) fire(i int) {
	d.mu.Lock()
	h := d.created[i]
	d.mu.Unlock()
	close(h.done)
}

func (d *fakeDelay) createdCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.created)
}

func (d *fakeDelay) createdDuration(i int) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created[i].duration
}

func (d *fakeDelay) cancelledCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cancelled)
}
