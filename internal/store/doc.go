// Package store provides SQLite-backed durable storage for literal registry
// entries.
//
// The store is append-only: an entry is identified by its registry UUID and
// a second write of the same entry is silently ignored.
//
// # Ordering
//
// All listings are ordered by ORDER BY seq ASC, id ASC COLLATE BINARY, the
// same order registry.Entries uses, so a registry reloaded from the store
// lists its entries identically.
//
// # Schema
//
// Open migrates older files forward by PRAGMA user_version and refuses a
// file from a newer version (ErrSchemaTooNew) or one whose entries table
// has other columns or kinds (ErrSchemaMismatch).
//
// Entry content is the canonical JSON produced by literal.Canonical and is
// stored verbatim.
package store
