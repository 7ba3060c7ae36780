package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Epixu/literal-t/internal/registry"
	"github.com/Epixu/literal-t/internal/testutil"
	"github.com/Epixu/literal-t/literal"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRegistry registers the shared fixtures with a deterministic clock.
func createTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New(
		registry.WithClock(testutil.NewDeterministicClock()),
		registry.WithLogger(testutil.DiscardLogger()),
	)
	for _, f := range testutil.Fixtures() {
		if _, _, err := r.Register(f.Literal); err != nil {
			t.Fatalf("Register(%s) failed: %v", f.Name, err)
		}
	}
	return r
}

// createTestEntry registers a single literal and returns its entry.
func createTestEntry(t *testing.T, l literal.Literal) registry.Entry {
	t.Helper()
	r := registry.New(registry.WithLogger(testutil.DiscardLogger()))
	e, _, err := r.Register(l)
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	return e
}

func getTableIndexes(t *testing.T, db *sql.DB, table string) []string {
	t.Helper()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='index' AND tbl_name=?", table)
	if err != nil {
		t.Fatalf("failed to get indexes for %q: %v", table, err)
	}
	defer rows.Close()

	var indexes []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan index name: %v", err)
		}
		indexes = append(indexes, name)
	}
	return indexes
}

// writeRawDatabase runs statements against a database file without Open.
func writeRawDatabase(t *testing.T, path string, statements ...string) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to execute %q: %v", stmt, err)
		}
	}
}
