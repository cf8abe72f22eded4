// Package store provides SQLite-backed storage for benchmark runs and
// harness check outcomes.
//
// # Tables
//
//   - runs: one row per benchmark run, keyed by UUIDv7
//   - measurements: mean duration per (run, kind, factor, sorter)
//   - checks: append-only log of scenario outcomes
//
// Durations are stored as integer microseconds and disorder factors as
// integer permille, so stored rows compare exactly across platforms.
//
// # Ordering
//
// All list queries end in `id COLLATE BINARY` (or a sequence number) so the
// same database always yields rows in the same order.
//
// # Database Configuration
//
//   - WAL mode: readers do not block the writer
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON: measurements cascade with their run
package store
