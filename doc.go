// Package kvstore implements an in-process key/value store with per-entry
// TTL expiration and a recurring whole-store clear cycle.
//
// Entries carry an absolute expiration instant computed at write time; reads
// that observe an expired entry remove it (lazy eviction, no background
// per-entry sweep). Independently, a single cancellable timer periodically
// replaces the whole map with a fresh one and re-arms itself.
//
// The store is meant as a disposable, ephemeral cache or as a test double
// for a real cache/database. It does not persist, bound its memory, or
// coordinate across processes.
package kvstore
