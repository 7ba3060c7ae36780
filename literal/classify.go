package literal

import (
	"fmt"
	"hash/maphash"
	"reflect"
)

// Literal is a sealed interface implemented only by Value[T] (which includes
// Undefined) and String[C]. The unexported method keeps other packages from
// adding variants.
type Literal interface {
	// Kind reports the classification, which is fixed by the Go type.
	Kind() Kind

	// Cap is the fixed capacity: 0 for values, a power of two for strings.
	Cap() int

	// Len is the logical length: leading non-zero code units of a string,
	// 0 otherwise.
	Len() int

	// Empty reports whether Len() is 0.
	Empty() bool

	// Bool is the explicit boolean conversion: false for Undefined, otherwise
	// whether the first element is non-zero.
	Bool() bool

	// TypeName names the payload type ("byte", "rune", "char8", "char16",
	// "char32", "undefined" or a Go type name).
	TypeName() string

	// Hash hashes the logical content.
	Hash(seed maphash.Seed) uint64

	String() string

	// unit returns code unit i of a string as an integer.
	unit(i int) int64

	// scalar returns the payload of a value, Unsupported{} for Undefined and
	// nil for strings.
	scalar() any
}

// Validate checks the classification contract: at least one argument, and no
// nil interface or nil pointer among them. It returns an *Error with
// ErrCodeNoArguments or ErrCodeIncomplete.
func Validate(args ...any) error {
	if len(args) == 0 {
		return &Error{Code: ErrCodeNoArguments, Message: "no arguments provided"}
	}
	for i, arg := range args {
		if !complete(arg) {
			return &Error{
				Code:    ErrCodeIncomplete,
				Message: fmt.Sprintf("argument %d is nil", i),
				Index:   i,
			}
		}
	}
	return nil
}

func complete(arg any) bool {
	if arg == nil {
		return false
	}
	v := reflect.ValueOf(arg)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

// IsLiteral reports whether every argument is a literal in any state.
func IsLiteral(first any, rest ...any) bool {
	return every(first, rest, func(Literal) bool { return true })
}

// IsString reports whether every argument is a String literal: capacity > 0
// and a recognized character payload.
func IsString(first any, rest ...any) bool {
	return every(first, rest, func(l Literal) bool {
		return l.Kind() == KindString && l.Cap() > 0
	})
}

// IsValue reports whether every argument is a Value literal: capacity 0 and a
// payload type other than Unsupported.
func IsValue(first any, rest ...any) bool {
	return every(first, rest, func(l Literal) bool {
		return l.Kind() == KindValue && l.Cap() == 0
	})
}

// IsUndefined reports whether every argument is an Undefined literal.
func IsUndefined(first any, rest ...any) bool {
	return every(first, rest, func(l Literal) bool {
		return l.Kind() == KindUndefined
	})
}

// IsChar reports whether every argument is a code unit of one of the
// recognized character kinds.
func IsChar(first any, rest ...any) bool {
	mustValidate(first, rest)
	if _, ok := charName(first); !ok {
		return false
	}
	for _, arg := range rest {
		if _, ok := charName(arg); !ok {
			return false
		}
	}
	return true
}

// every validates all arguments before evaluating pred on any of them, so a
// nil argument late in the list is never masked by an early false.
func every(first any, rest []any, pred func(Literal) bool) bool {
	mustValidate(first, rest)
	if !check(first, pred) {
		return false
	}
	for _, arg := range rest {
		if !check(arg, pred) {
			return false
		}
	}
	return true
}

func check(arg any, pred func(Literal) bool) bool {
	l, ok := arg.(Literal)
	return ok && pred(l)
}

func mustValidate(first any, rest []any) {
	args := make([]any, 0, len(rest)+1)
	args = append(args, first)
	args = append(args, rest...)
	if err := Validate(args...); err != nil {
		panic(err)
	}
}
