package literal

import (
	"hash/maphash"
	"iter"
	"slices"
)

// String is a fixed-capacity, zero-terminated sequence of code units.
//
// The storage always holds Cap()+1 elements and the last one is always zero.
// The zero String is an empty string of capacity 1, the same as From of an
// empty source.
type String[C Char] struct {
	buf []C
}

// From constructs a String from chars. The source is treated as an array of
// len(chars)+1 elements (content plus terminator) and the capacity is that
// length rounded up to a power of two.
func From[C Char](chars []C) String[C] {
	s := String[C]{buf: make([]C, BitCeil(len(chars)+1)+1)}
	copy(s.buf, chars)
	return s
}

// Parse constructs a String of kind C from Go text.
func Parse[C Char](text string) String[C] {
	return From(encode[C](text))
}

// FromString constructs a narrow String from Go text.
func FromString(text string) String[byte] {
	return From([]byte(text))
}

// FromRunes constructs a wide String from Go text.
func FromRunes(text string) String[rune] {
	return From([]rune(text))
}

// FromUTF16 constructs a UTF-16 String from Go text.
func FromUTF16(text string) String[Char16] {
	return Parse[Char16](text)
}

// WithCapacity constructs chars into a String of the given capacity, zero
// padding the remainder. The capacity must be a power of two and at least
// len(chars).
func WithCapacity[C Char](capacity int, chars []C) (String[C], error) {
	if !isPowerOfTwo(capacity) {
		return String[C]{}, newCapacityError(capacity)
	}
	if len(chars) > capacity {
		return String[C]{}, newOverflowError(len(chars), capacity)
	}
	s := String[C]{buf: make([]C, capacity+1)}
	copy(s.buf, chars)
	return s, nil
}

// MustWithCapacity is like WithCapacity but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustWithCapacity[C Char](capacity int, chars []C) String[C] {
	s, err := WithCapacity(capacity, chars)
	if err != nil {
		panic(err)
	}
	return s
}

// Widen copies s into a String of a larger or equal capacity. The raw
// storage of s is copied and a terminator is written right after it.
func Widen[C Char](s String[C], capacity int) (String[C], error) {
	if !isPowerOfTwo(capacity) {
		return String[C]{}, newCapacityError(capacity)
	}
	if capacity < s.Cap() {
		return String[C]{}, newOverflowError(s.Cap(), capacity)
	}
	src := s.storage()
	out := String[C]{buf: make([]C, capacity+1)}
	copy(out.buf, src[:s.Cap()])
	out.buf[s.Cap()] = 0
	return out, nil
}

// Resize returns a copy of s with a different capacity. Content that does not
// fit is truncated.
func (s String[C]) Resize(capacity int) (String[C], error) {
	if !isPowerOfTwo(capacity) {
		return String[C]{}, newCapacityError(capacity)
	}
	v := s.view()
	return WithCapacity(capacity, v[:min(len(v), capacity)])
}

// Assign replaces the storage with arr, which must hold exactly Cap()
// elements. Shorter sources go through Set.
func (s *String[C]) Assign(arr []C) error {
	if len(arr) != s.Cap() {
		return &Error{
			Code:    ErrCodeSizeMismatch,
			Message: "assignment requires an array of exactly the literal capacity",
			Index:   len(arr),
			Limit:   s.Cap(),
		}
	}
	buf := make([]C, len(arr)+1)
	copy(buf, arr)
	s.buf = buf
	return nil
}

// Set reconstructs s from chars, keeping its capacity.
func (s *String[C]) Set(chars []C) error {
	n, err := WithCapacity(s.Cap(), chars)
	if err != nil {
		return err
	}
	*s = n
	return nil
}

// Swap exchanges the contents of s and other.
func (s *String[C]) Swap(other *String[C]) {
	s.buf, other.buf = other.buf, s.buf
}

// storage returns the raw storage, materializing the zero String.
func (s String[C]) storage() []C {
	if s.buf == nil {
		return make([]C, 2)
	}
	return s.buf
}

// view returns the logical content without copying. Callers must not write
// through it.
func (s String[C]) view() []C {
	return s.buf[:s.Len()]
}

// Kind is always KindString.
func (String[C]) Kind() Kind { return KindString }

// Cap returns the fixed capacity, excluding the terminator slot.
func (s String[C]) Cap() int {
	if len(s.buf) == 0 {
		return 1
	}
	return len(s.buf) - 1
}

// Len scans for the first zero code unit.
func (s String[C]) Len() int {
	n := 0
	for n < len(s.buf)-1 && s.buf[n] != 0 {
		n++
	}
	return n
}

// Empty reports whether the first code unit is zero.
func (s String[C]) Empty() bool {
	return len(s.buf) == 0 || s.buf[0] == 0
}

// Bool reports whether the string is non-empty.
func (s String[C]) Bool() bool {
	return !s.Empty()
}

// TypeName names the character kind.
func (String[C]) TypeName() string { return typeName[C]() }

// Index returns code unit i. It is only checked against the logical length
// when built with the literal_safe tag; otherwise an index past the logical
// length reads padding, and one past the storage panics.
func (s String[C]) Index(i int) C {
	if SafeMode && (i < 0 || i >= s.Len()) {
		panic(newRangeError("subscript", i, s.Len()))
	}
	return s.storage()[i]
}

// At returns code unit i, checked against the logical length.
func (s String[C]) At(i int) (C, error) {
	if i < 0 || i >= s.Len() {
		return 0, newRangeError("at", i, s.Len())
	}
	return s.buf[i], nil
}

// SetAt overwrites code unit i, checked against the logical length. Writing
// a zero truncates the logical content at i.
func (s *String[C]) SetAt(i int, c C) error {
	if i < 0 || i >= s.Len() {
		return newRangeError("set", i, s.Len())
	}
	buf := slices.Clone(s.buf)
	buf[i] = c
	s.buf = buf
	return nil
}

// Front returns the first code unit, zero for an empty string.
func (s String[C]) Front() C {
	return s.storage()[0]
}

// Back returns the last logical code unit. It panics on an empty string.
func (s String[C]) Back() C {
	return s.buf[s.Len()-1]
}

// Data returns a copy of the whole storage, terminator and padding included.
func (s String[C]) Data() []C {
	return slices.Clone(s.storage())
}

// CStr returns a copy of the logical content followed by a terminator.
func (s String[C]) CStr() []C {
	n := s.Len()
	out := make([]C, n+1)
	copy(out, s.buf[:n])
	return out
}

// View returns a copy of the logical content.
func (s String[C]) View() []C {
	return slices.Clone(s.view())
}

// String decodes the logical content into Go text.
func (s String[C]) String() string {
	return decode(s.view())
}

// All iterates over the logical content in order.
func (s String[C]) All() iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		for i, c := range s.view() {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Backward iterates over the logical content in reverse.
func (s String[C]) Backward() iter.Seq2[int, C] {
	return func(yield func(int, C) bool) {
		v := s.view()
		for i := len(v) - 1; i >= 0; i-- {
			if !yield(i, v[i]) {
				return
			}
		}
	}
}

// Substr returns count code units starting at pos, in a String of the same
// capacity. A pos at or past the logical length yields an empty result; a
// negative count or one past the end is clamped to the remaining length.
func (s String[C]) Substr(pos, count int) String[C] {
	out := String[C]{buf: make([]C, s.Cap()+1)}
	n := s.Len()
	if pos < 0 || pos >= n {
		return out
	}
	if count < 0 || count > n-pos {
		count = n - pos
	}
	copy(out.buf, s.buf[pos:pos+count])
	return out
}

// Hash hashes the logical content; it equals HashView(seed, s.View()).
func (s String[C]) Hash(seed maphash.Seed) uint64 {
	return HashView(seed, s.view())
}

func (s String[C]) unit(i int) int64 { return int64(s.buf[i]) }

func (String[C]) scalar() any { return nil }
