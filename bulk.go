package kvstore

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// BulkGet looks up every key via Get and returns one result per input key,
// in input order, with mo.None placeholders for absent or expired keys.
func (s *Store[V]) BulkGet(keys []string) []mo.Option[V] {
	out := make([]mo.Option[V], len(keys))
	for i, key := range keys {
		if v, ok := s.Get(key); ok {
			out[i] = mo.Some(v)
		} else {
			out[i] = mo.None[V]()
		}
	}
	return out
}

// BulkSet pairs keys[i] with values[i] and applies each write
// independently; there is no atomicity across keys. ttls may be shorter
// than keys, in which case the remaining keys get no per-entry expiry. The
// only failure mode is a keys/values length mismatch, reported before any
// write takes effect.
func (s *Store[V]) BulkSet(keys []string, values []V, ttls ...time.Duration) error {
	if len(keys) != len(values) {
		return fmt.Errorf("kvstore: bulk set got %d keys for %d values", len(keys), len(values))
	}
	for i, key := range keys {
		if i < len(ttls) {
			s.SetWithTTL(key, values[i], ttls[i])
		} else {
			s.Set(key, values[i])
		}
	}
	return nil
}

// BulkDelete applies Delete to each key independently.
func (s *Store[V]) BulkDelete(keys []string) {
	for _, key := range keys {
		s.Delete(key)
	}
}
