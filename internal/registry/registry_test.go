package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epixu/literal-t/internal/testutil"
	"github.com/Epixu/literal-t/literal"
)

func newTestRegistry(t *testing.T, opts ...Option) *Registry {
	t.Helper()
	base := []Option{
		WithClock(testutil.NewDeterministicClock()),
		WithLogger(testutil.DiscardLogger()),
	}
	return New(append(base, opts...)...)
}

func TestRegister(t *testing.T) {
	r := newTestRegistry(t)

	e, inserted, err := r.Register(literal.FromString("Test String"))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, Key{Type: "byte", Capacity: 16}, e.Key)
	assert.Equal(t, literal.KindString, e.Kind)
	assert.Equal(t, int64(1), e.Seq)
	assert.JSONEq(t, `{"kind":"string","type":"byte","value":"Test String"}`, string(e.Content))
	assert.Equal(t, literal.MustID(literal.FromString("Test String")), e.Digest)

	parsed, err := uuid.Parse(e.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

func TestRegister_Dedupes(t *testing.T) {
	r := newTestRegistry(t)

	first, inserted, err := r.Register(literal.FromString("abc"))
	require.NoError(t, err)
	require.True(t, inserted)

	again, inserted, err := r.Register(literal.FromString("abc"))
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first, again)
	assert.Equal(t, 1, r.Len())
}

func TestRegister_CapacityBuckets(t *testing.T) {
	r := newTestRegistry(t)

	small, _, err := r.Register(literal.FromString("abc"))
	require.NoError(t, err)
	big, inserted, err := r.Register(literal.MustWithCapacity(64, []byte("abc")))
	require.NoError(t, err)
	require.True(t, inserted)

	assert.NotEqual(t, small.ID, big.ID)
	assert.Equal(t, small.Digest, big.Digest)

	matches, err := r.Matching(literal.MustWithCapacity(8, []byte("abc")))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, small.ID, matches[0].ID)
	assert.Equal(t, big.ID, matches[1].ID)
}

func TestRegister_RejectsNil(t *testing.T) {
	r := newTestRegistry(t)
	_, _, err := r.Register(nil)
	assert.True(t, literal.IsContractError(err))
	assert.Zero(t, r.Len())
}

func TestRegister_Quota(t *testing.T) {
	r := newTestRegistry(t, WithMaxEntries(2))

	_, _, err := r.Register(literal.FromString("a"))
	require.NoError(t, err)
	_, _, err = r.Register(literal.FromString("b"))
	require.NoError(t, err)

	// Duplicates do not count against the quota.
	_, inserted, err := r.Register(literal.FromString("a"))
	require.NoError(t, err)
	assert.False(t, inserted)

	_, _, err = r.Register(literal.FromString("c"))
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))

	var qe *QuotaExceededError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 2, qe.Limit)
}

func TestEntries_Ordered(t *testing.T) {
	r := newTestRegistry(t)
	for _, f := range testutil.Fixtures() {
		_, _, err := r.Register(f.Literal)
		require.NoError(t, err, f.Name)
	}

	entries := r.Entries()
	require.Len(t, entries, len(testutil.Fixtures()))
	for i, e := range entries {
		assert.Equal(t, int64(i+1), e.Seq)
	}
}

func TestBuckets(t *testing.T) {
	r := newTestRegistry(t)
	for _, text := range []string{"a", "b", "abc", "abd", "Test String"} {
		_, _, err := r.Register(literal.FromString(text))
		require.NoError(t, err)
	}
	_, _, err := r.Register(literal.FromRunes("a"))
	require.NoError(t, err)
	_, _, err = r.Register(literal.Of(5))
	require.NoError(t, err)

	assert.Equal(t, []Bucket{
		{Key: Key{Type: "byte", Capacity: 2}, Count: 2},
		{Key: Key{Type: "byte", Capacity: 4}, Count: 2},
		{Key: Key{Type: "byte", Capacity: 16}, Count: 1},
		{Key: Key{Type: "int", Capacity: 0}, Count: 1},
		{Key: Key{Type: "rune", Capacity: 2}, Count: 1},
	}, r.Buckets())
}

func TestRestore(t *testing.T) {
	src := newTestRegistry(t)
	for _, f := range testutil.Fixtures() {
		_, _, err := src.Register(f.Literal)
		require.NoError(t, err)
	}

	clock := NewSeqClock()
	dst := New(WithClock(clock), WithLogger(testutil.DiscardLogger()))
	require.NoError(t, dst.Restore(src.Entries()))
	assert.Equal(t, src.Entries(), dst.Entries())

	// New registrations continue after the restored sequence.
	e, inserted, err := dst.Register(literal.FromString("after restore"))
	require.NoError(t, err)
	require.True(t, inserted)
	assert.Equal(t, int64(len(src.Entries())+1), e.Seq)

	// Restoring twice is a no-op.
	require.NoError(t, dst.Restore(src.Entries()))
	assert.Equal(t, len(src.Entries())+1, dst.Len())
}

func TestRestore_RejectsTamperedEntry(t *testing.T) {
	src := newTestRegistry(t)
	e, _, err := src.Register(literal.FromString("abc"))
	require.NoError(t, err)

	e.Content = []byte(`{"kind":"string","type":"byte","value":"abd"}`)
	dst := newTestRegistry(t)
	assert.Error(t, dst.Restore([]Entry{e}))
	assert.Zero(t, dst.Len())
}

func TestRestore_RejectedBatchLoadsNothing(t *testing.T) {
	src := newTestRegistry(t)
	good, _, err := src.Register(literal.FromString("good"))
	require.NoError(t, err)
	bad, _, err := src.Register(literal.FromString("bad"))
	require.NoError(t, err)
	bad.Content = []byte(`{"kind":"string","type":"byte","value":"tampered"}`)

	clock := NewSeqClock()
	dst := New(WithClock(clock), WithLogger(testutil.DiscardLogger()))
	require.Error(t, dst.Restore([]Entry{good, bad}))
	assert.Zero(t, dst.Len())
	assert.Zero(t, clock.Current())
}

func TestRegister_RejectsPayloadWithoutCanonicalForm(t *testing.T) {
	r := newTestRegistry(t)
	type point struct{ x, y int }

	_, _, err := r.Register(literal.Of(point{1, 2}))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.True(t, literal.IsUnsupportedError(err))

	_, _, err = r.Register(literal.Of([2]int{1, 2}))
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Zero(t, r.Len())
}

func TestRegister_Concurrent(t *testing.T) {
	r := New(WithLogger(testutil.DiscardLogger()))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, text := range []string{"one", "two", "three"} {
				_, _, err := r.Register(literal.FromString(text))
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	entries := r.Entries()
	require.Len(t, entries, 3)
	seqs := map[int64]bool{}
	for _, e := range entries {
		seqs[e.Seq] = true
	}
	assert.Len(t, seqs, 3)
}

func TestSeqClock(t *testing.T) {
	c := NewSeqClock()
	assert.Equal(t, int64(1), c.Next())
	c.Advance(5)
	assert.Equal(t, int64(6), c.Next())
	c.Advance(3)
	assert.Equal(t, int64(6), c.Current())
	c.Advance(20)
	assert.Equal(t, int64(21), c.Next())
}
