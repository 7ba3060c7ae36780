package literal

import (
	"fmt"
	"hash/maphash"
)

// Unsupported is the payload type of an undefined literal.
type Unsupported struct{}

// Value holds exactly one scalar of type T. Its capacity is always 0 and it
// has no terminator. Value[Unsupported] is the Undefined state.
type Value[T comparable] struct {
	v T
}

// Undefined is the default-constructed literal with no payload type.
type Undefined = Value[Unsupported]

// New returns the Undefined literal.
func New() Undefined {
	return Undefined{}
}

// Of returns a Value literal holding v.
func Of[T comparable](v T) Value[T] {
	return Value[T]{v: v}
}

func (v Value[T]) undefined() bool {
	_, ok := any(v.v).(Unsupported)
	return ok
}

// Kind is KindUndefined for Value[Unsupported] and KindValue otherwise.
func (v Value[T]) Kind() Kind {
	if v.undefined() {
		return KindUndefined
	}
	return KindValue
}

// Cap is always 0.
func (Value[T]) Cap() int { return 0 }

// Len is always 0: a value has no logical characters.
func (Value[T]) Len() int { return 0 }

// Empty is always true.
func (Value[T]) Empty() bool { return true }

// Bool is false for Undefined and for the zero value of T.
func (v Value[T]) Bool() bool {
	if v.undefined() {
		return false
	}
	var zero T
	return v.v != zero
}

// Get returns the scalar.
func (v Value[T]) Get() T { return v.v }

// Index returns the scalar. The index is ignored: a value has a single slot.
func (v Value[T]) Index(int) T { return v.v }

// Front returns the scalar.
func (v Value[T]) Front() T { return v.v }

// TypeName names T.
func (Value[T]) TypeName() string { return typeName[T]() }

// Hash hashes the scalar. Undefined hashes like an empty view, and numeric
// scalars hash by value so that values equal across types, or equal to a
// one-character string, hash alike.
func (v Value[T]) Hash(seed maphash.Seed) uint64 {
	if v.undefined() {
		return HashView[byte](seed, nil)
	}
	if n, ok := toNumber(v.v); ok {
		return hashNumber(seed, n)
	}
	return maphash.Comparable(seed, v.v)
}

func (v Value[T]) String() string {
	if v.undefined() {
		return ""
	}
	return fmt.Sprint(v.v)
}

// EqualArray compares only the first element of arr with the scalar; the
// length of arr is ignored. An empty arr is never equal.
func (v Value[T]) EqualArray(arr []T) bool {
	return len(arr) > 0 && arr[0] == v.v
}

func (Value[T]) unit(int) int64 { return 0 }

func (v Value[T]) scalar() any { return v.v }
