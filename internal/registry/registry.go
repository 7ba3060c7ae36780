package registry

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Epixu/literal-t/literal"
)

// namespace scopes entry UUIDs to this registry format.
var namespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte(literal.DomainLiteral+"/registry"))

// Key is the bucket a literal is filed under.
type Key struct {
	Type     string `json:"type" yaml:"type"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// KeyOf returns the bucket of l.
func KeyOf(l literal.Literal) Key {
	return Key{Type: l.TypeName(), Capacity: l.Cap()}
}

func (k Key) String() string {
	return fmt.Sprintf("%s[%d]", k.Type, k.Capacity)
}

// Entry is one registered literal.
type Entry struct {
	ID      string          `json:"id"`
	Digest  string          `json:"digest"`
	Key     Key             `json:"key"`
	Kind    literal.Kind    `json:"kind"`
	Content json.RawMessage `json:"content"`
	Seq     int64           `json:"seq"`
}

// Bucket summarizes the entries filed under one key.
type Bucket struct {
	Key   Key `json:"key"`
	Count int `json:"count"`
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock replaces the default SeqClock.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		r.clock = c
	}
}

// WithLogger sets the logger for registration events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithMaxEntries limits the number of entries. Zero means unlimited.
func WithMaxEntries(n int) Option {
	return func(r *Registry) {
		r.maxEntries = n
	}
}

// Registry is a concurrency-safe, content-addressed index of literals.
type Registry struct {
	mu         sync.RWMutex
	clock      Clock
	logger     *slog.Logger
	maxEntries int
	entries    map[string]Entry
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		clock:   NewSeqClock(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		entries: make(map[string]Entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// entryID derives the entry UUID from its key and canonical content.
func entryID(key Key, content []byte) string {
	name := make([]byte, 0, len(content)+32)
	name = append(name, key.String()...)
	name = append(name, 0)
	name = append(name, content...)
	return uuid.NewSHA1(namespace, name).String()
}

// Register files l and returns its entry. The boolean is false when an
// identical literal (same key, same content) was already registered, in
// which case the existing entry is returned unchanged.
func (r *Registry) Register(l literal.Literal) (Entry, bool, error) {
	content, err := literal.Canonical(l)
	if err != nil {
		if literal.IsUnsupportedError(err) {
			return Entry{}, false, fmt.Errorf("register: %w: %w", ErrUnsupportedType, err)
		}
		return Entry{}, false, fmt.Errorf("register: %w", err)
	}
	digest, err := literal.ID(l)
	if err != nil {
		return Entry{}, false, fmt.Errorf("register: %w", err)
	}

	key := KeyOf(l)
	id := entryID(key, content)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[id]; ok {
		r.logger.Debug("literal already registered", "id", id, "key", key.String())
		return existing, false, nil
	}
	if r.maxEntries > 0 && len(r.entries) >= r.maxEntries {
		return Entry{}, false, &QuotaExceededError{Entries: len(r.entries) + 1, Limit: r.maxEntries}
	}

	e := Entry{
		ID:      id,
		Digest:  digest,
		Key:     key,
		Kind:    l.Kind(),
		Content: content,
		Seq:     r.clock.Next(),
	}
	r.entries[id] = e
	r.logger.Info("literal registered",
		"id", id,
		"key", key.String(),
		"kind", e.Kind.String(),
		"seq", e.Seq,
	)
	return e, true, nil
}

// Lookup returns the entry with the given ID.
func (r *Registry) Lookup(id string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Entries returns all entries ordered by (seq, id).
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	SortEntries(out)
	return out
}

// Matching returns the entries whose digest equals the digest of l, across
// all capacity buckets, ordered by (seq, id).
func (r *Registry) Matching(l literal.Literal) ([]Entry, error) {
	digest, err := literal.ID(l)
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range r.Entries() {
		if e.Digest == digest {
			out = append(out, e)
		}
	}
	return out, nil
}

// Buckets counts entries per key, ordered by type name then capacity.
func (r *Registry) Buckets() []Bucket {
	r.mu.RLock()
	counts := make(map[Key]int)
	for _, e := range r.entries {
		counts[e.Key]++
	}
	r.mu.RUnlock()

	out := make([]Bucket, 0, len(counts))
	for k, n := range counts {
		out = append(out, Bucket{Key: k, Count: n})
	}
	slices.SortFunc(out, func(a, b Bucket) int {
		return compareKeys(a.Key, b.Key)
	})
	return out
}

// Restore loads previously persisted entries. Each entry ID is checked
// against its key and content before any entry is loaded, so a batch with a
// mismatching entry leaves the registry unchanged. Entries already present
// are skipped. When the clock supports it, the clock is advanced past the
// highest restored seq.
func (r *Registry) Restore(entries []Entry) error {
	for _, e := range entries {
		if want := entryID(e.Key, e.Content); want != e.ID {
			return fmt.Errorf("restore: entry %s does not match its content (want %s)", e.ID, want)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var maxSeq int64
	for _, e := range entries {
		if _, ok := r.entries[e.ID]; ok {
			continue
		}
		r.entries[e.ID] = e
		maxSeq = max(maxSeq, e.Seq)
	}

	if a, ok := r.clock.(interface{ Advance(int64) }); ok {
		a.Advance(maxSeq)
	}
	r.logger.Debug("registry restored", "entries", len(entries), "max_seq", maxSeq)
	return nil
}

// SortEntries orders entries by (seq, id).
func SortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareKeys(a, b Key) int {
	if c := cmp.Compare(a.Type, b.Type); c != 0 {
		return c
	}
	return cmp.Compare(a.Capacity, b.Capacity)
}
