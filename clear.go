package kvstore

import "go.uber.org/zap"

// armClear schedules a new clear timer for the configured interval. If a
// previous handle is still tracked its cancellation is requested first;
// failure there is logged and ignored since the old timer is superseded
// either way. Callers must hold mu.
func (s *Store[V]) armClear() {
	if s.handle != nil {
		if err := s.delay.Cancel(s.handle); err != nil {
			s.log.Debug("could not cancel previous clear timer", zap.Error(err))
		}
	}
	s.handle = s.delay.Create(s.clearInterval)
}

// clearLoop waits on the outstanding clear timer, wipes the store when it
// fires and re-arms it, until the store is closed. At most one timer is
// outstanding at any time.
func (s *Store[V]) clearLoop() {
	for {
		s.mu.RLock()
		h := s.handle
		s.mu.RUnlock()
		if h == nil {
			// Close ran while a clear was in flight.
			return
		}

		select {
		case <-h.Done():
			s.clearAndRearm()
		case <-s.done:
			return
		}
	}
}

func (s *Store[V]) clearAndRearm() {
	s.mu.Lock()
	s.items = make(map[string]Entry[V])
	s.armClear()
	s.mu.Unlock()
	s.log.Debug("cleared store and re-armed timer",
		zap.Duration("clear_interval", s.clearInterval))
}

// Close stops the clear cycle and best-effort cancels the outstanding
// timer. It is idempotent and always returns nil; the error return exists
// for io.Closer conformance.
func (s *Store[V]) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		if s.handle != nil {
			if err := s.delay.Cancel(s.handle); err != nil {
				s.log.Debug("could not cancel clear timer on close", zap.Error(err))
			}
			s.handle = nil
		}
		s.mu.Unlock()
	})
	return nil
}
