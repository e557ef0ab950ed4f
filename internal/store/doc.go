// Package store defines the persistence interfaces of the application.
//
// Deck and progress data live in per-user JSON documents behind the KV
// interface: every mutation writes the whole document back, reads of a
// missing key yield ErrKeyNotFound, and concurrent writers are resolved by
// last-write-wins. There is no partial update, no versioning, and no
// cross-document transaction; callers must not assume atomicity across two
// Set calls. Concrete backends live under internal/platform.
package store
