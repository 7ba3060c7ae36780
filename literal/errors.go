package literal

import (
	"errors"
	"fmt"
)

// Error reports a contract or bounds violation on a literal.
//
// Contract violations (ErrCodeNoArguments, ErrCodeIncomplete, ErrCodeCapacity)
// mean the caller asked for something that can never be valid. Bounds
// violations (ErrCodeOutOfRange) depend on the content of a particular
// literal. Size errors (ErrCodeSizeMismatch, ErrCodeOverflow) reject a source
// that does not fit the destination capacity.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the offending index, position or capacity, if any.
	Index int

	// Limit is the bound Index was checked against, if any.
	Limit int
}

// ErrorCode categorizes literal errors.
type ErrorCode string

const (
	// ErrCodeOutOfRange indicates an index or position past the logical length.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// ErrCodeCapacity indicates a positive capacity that is not a power of two.
	ErrCodeCapacity ErrorCode = "CAPACITY"

	// ErrCodeNoArguments indicates a classification check with no arguments.
	ErrCodeNoArguments ErrorCode = "NO_ARGUMENTS"

	// ErrCodeIncomplete indicates a nil argument to a classification check.
	ErrCodeIncomplete ErrorCode = "INCOMPLETE"

	// ErrCodeSizeMismatch indicates an assignment from an array whose length
	// is not exactly the destination capacity.
	ErrCodeSizeMismatch ErrorCode = "SIZE_MISMATCH"

	// ErrCodeOverflow indicates a source longer than the destination capacity.
	ErrCodeOverflow ErrorCode = "OVERFLOW"

	// ErrCodeUnsupported indicates a value payload with no canonical form.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case ErrCodeOutOfRange, ErrCodeSizeMismatch, ErrCodeOverflow:
		return fmt.Sprintf("%s: %s (index=%d, limit=%d)", e.Code, e.Message, e.Index, e.Limit)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRangeError returns true if err is a bounds violation.
// Uses errors.As to handle wrapped errors.
func IsRangeError(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Code == ErrCodeOutOfRange
	}
	return false
}

// IsUnsupportedError returns true if err reports a payload type without a
// canonical form.
func IsUnsupportedError(err error) bool {
	var le *Error
	return errors.As(err, &le) && le.Code == ErrCodeUnsupported
}

// IsContractError returns true if err is a contract violation: a
// classification check without arguments or with a nil argument, or a
// capacity that is not a power of two.
func IsContractError(err error) bool {
	var le *Error
	if errors.As(err, &le) {
		switch le.Code {
		case ErrCodeNoArguments, ErrCodeIncomplete, ErrCodeCapacity:
			return true
		}
	}
	return false
}

func newRangeError(op string, index, limit int) *Error {
	return &Error{
		Code:    ErrCodeOutOfRange,
		Message: op + " index outside literal limits",
		Index:   index,
		Limit:   limit,
	}
}

func newCapacityError(capacity int) *Error {
	return &Error{
		Code:    ErrCodeCapacity,
		Message: fmt.Sprintf("capacity %d is not a power of two", capacity),
		Index:   capacity,
	}
}

func newOverflowError(length, capacity int) *Error {
	return &Error{
		Code:    ErrCodeOverflow,
		Message: "source does not fit literal capacity",
		Index:   length,
		Limit:   capacity,
	}
}
