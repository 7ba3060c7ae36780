package store

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Epixu/literal-t/literal"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions, stored in PRAGMA user_version:
// 0 - entries table with seq and bucket indexes
// 1 - digest index for ReadEntriesByDigest
const currentSchemaVersion = 1

// entryColumns is the column order of the entries table, and the order every
// entry query selects and scanEntry reads.
var entryColumns = []string{"id", "digest", "type", "capacity", "kind", "content", "seq"}

// storedKinds are the literal kinds the entries.kind CHECK must admit.
var storedKinds = []literal.Kind{literal.KindUndefined, literal.KindValue, literal.KindString}

var (
	// ErrSchemaTooNew is returned by Open for a database written by a newer
	// schema version.
	ErrSchemaTooNew = errors.New("store schema is newer than supported")

	// ErrSchemaMismatch is returned by Open when an existing entries table
	// does not have the layout entries are read and written with.
	ErrSchemaMismatch = errors.New("store schema does not match entries layout")
)

// Store persists registry entries in SQLite.
type Store struct {
	db *sql.DB
}

// Open creates or opens the entry database at path (":memory:" for a
// throwaway store), migrates it to the current schema version and checks
// that the entries table matches the layout this package reads and writes.
//
// Connections run in WAL mode with synchronous=NORMAL and a 5 second busy
// timeout. The pool is capped at one connection since SQLite has a single
// writer.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := prepare(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func prepare(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		return err
	}
	if err := applySchema(db); err != nil {
		return err
	}
	return verifySchema(db)
}

// Close releases the database. Closing a zero Store is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates the entries table when missing and migrates an older
// database forward. A database from a newer version is left untouched.
func applySchema(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("%w: version %d, supported %d", ErrSchemaTooNew, version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	return nil
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// migrateToV1 adds the digest index.
func migrateToV1(db *sql.DB) error {
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_entries_digest ON entries(digest)`); err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// verifySchema checks an opened database against the entries layout: the
// schema version, the column order and the kinds the kind CHECK admits.
// CREATE TABLE IF NOT EXISTS keeps a foreign entries table as it is, so this
// is where such a file is refused.
func verifySchema(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if version != currentSchemaVersion {
		return fmt.Errorf("%w: version %d after migration", ErrSchemaMismatch, version)
	}

	columns, err := tableColumns(db, "entries")
	if err != nil {
		return err
	}
	if !slices.Equal(columns, entryColumns) {
		return fmt.Errorf("%w: columns %v, want %v", ErrSchemaMismatch, columns, entryColumns)
	}

	var ddl string
	if err := db.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'entries'`).Scan(&ddl); err != nil {
		return fmt.Errorf("read entries definition: %w", err)
	}
	for _, k := range storedKinds {
		if !strings.Contains(ddl, "'"+k.String()+"'") {
			return fmt.Errorf("%w: kind %q not admitted", ErrSchemaMismatch, k)
		}
	}
	return nil
}

func tableColumns(db *sql.DB, table string) ([]string, error) {
	rows, err := db.Query("SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("read %s columns: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan %s column: %w", table, err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s columns: %w", table, err)
	}
	return columns, nil
}

// verifyPragma checks that a pragma reads back as expected.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
