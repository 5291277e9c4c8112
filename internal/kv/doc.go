// Package kv provides the persistent key-value store behind the task
// collection.
//
// A Store holds opaque byte values under string keys. The collection
// controller keeps its whole snapshot under a single key, so the store
// never needs to understand task records.
//
// # Implementations
//
//   - SQLite: durable, file-backed (github.com/mattn/go-sqlite3)
//   - Memory: process-local map, for tests and throwaway sessions
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// The schema version is tracked in PRAGMA user_version. Opening a database
// written by a newer version fails instead of guessing at its layout.
package kv
