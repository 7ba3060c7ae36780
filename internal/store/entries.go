package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Epixu/literal-t/internal/registry"
	"github.com/Epixu/literal-t/literal"
)

var (
	selectEntries = "SELECT " + strings.Join(entryColumns, ", ") + " FROM entries"
	insertEntry   = "INSERT INTO entries (" + strings.Join(entryColumns, ", ") + ") VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT(id) DO NOTHING"
)

// WriteEntry inserts a registry entry into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: the returned boolean is
// false when the entry was already present.
func (s *Store) WriteEntry(ctx context.Context, e registry.Entry) (bool, error) {
	result, err := s.db.ExecContext(ctx, insertEntry,
		e.ID,
		e.Digest,
		e.Key.Type,
		e.Key.Capacity,
		e.Kind.String(),
		string(e.Content),
		e.Seq,
	)
	if err != nil {
		return false, fmt.Errorf("write entry: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("write entry: rows affected: %w", err)
	}
	return n > 0, nil
}

// WriteEntries inserts entries in a single transaction and returns how many
// were new.
func (s *Store) WriteEntries(ctx context.Context, entries []registry.Entry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write entries: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	stmt, err := tx.PrepareContext(ctx, insertEntry)
	if err != nil {
		return 0, fmt.Errorf("write entries: prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range entries {
		result, err := stmt.ExecContext(ctx,
			e.ID, e.Digest, e.Key.Type, e.Key.Capacity, e.Kind.String(), string(e.Content), e.Seq)
		if err != nil {
			return 0, fmt.Errorf("write entries: %s: %w", e.ID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("write entries: rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write entries: commit: %w", err)
	}
	return inserted, nil
}

// ReadEntry returns the entry with the given ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadEntry(ctx context.Context, id string) (registry.Entry, error) {
	row := s.db.QueryRowContext(ctx, selectEntries+` WHERE id = ?`, id)
	return scanEntry(row)
}

// ReadEntries returns all entries ordered by seq, then id.
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ReadEntries(ctx context.Context) ([]registry.Entry, error) {
	return s.queryEntries(ctx, selectEntries+` ORDER BY seq ASC, id COLLATE BINARY ASC`)
}

// ReadEntriesByDigest returns every entry holding the content identified by
// digest, across capacity buckets.
func (s *Store) ReadEntriesByDigest(ctx context.Context, digest string) ([]registry.Entry, error) {
	return s.queryEntries(ctx, selectEntries+` WHERE digest = ? ORDER BY seq ASC, id COLLATE BINARY ASC`, digest)
}

// ReadBuckets counts entries per (type, capacity).
func (s *Store) ReadBuckets(ctx context.Context) ([]registry.Bucket, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, capacity, COUNT(*)
		FROM entries
		GROUP BY type, capacity
		ORDER BY type COLLATE BINARY ASC, capacity ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query buckets: %w", err)
	}
	defer rows.Close()

	buckets := []registry.Bucket{}
	for rows.Next() {
		var b registry.Bucket
		if err := rows.Scan(&b.Key.Type, &b.Key.Capacity, &b.Count); err != nil {
			return nil, fmt.Errorf("scan bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buckets: %w", err)
	}
	return buckets, nil
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]registry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []registry.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (registry.Entry, error) {
	var (
		e       registry.Entry
		kind    string
		content string
	)
	err := row.Scan(&e.ID, &e.Digest, &e.Key.Type, &e.Key.Capacity, &kind, &content, &e.Seq)
	if err == sql.ErrNoRows {
		return registry.Entry{}, err
	}
	if err != nil {
		return registry.Entry{}, fmt.Errorf("scan entry: %w", err)
	}

	e.Kind, err = literal.ParseKind(kind)
	if err != nil {
		return registry.Entry{}, fmt.Errorf("scan entry %s: %w", e.ID, err)
	}
	e.Content = []byte(content)
	return e, nil
}
