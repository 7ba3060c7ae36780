// Package literal provides fixed-capacity value and string containers.
//
// A literal is always in exactly one of three states, fixed by its Go type:
//
//   - Undefined: Value[Unsupported], a placeholder with no payload type.
//   - Value: Value[T], one scalar of type T, capacity 0.
//   - String: String[C], up to Cap() code units of a character kind C plus a
//     terminator slot that always holds the zero value.
//
// String capacities are powers of two. Construction rounds the length of the
// source (content plus terminator) up to the next power of two, so sources of
// nearby lengths share a capacity bucket. The logical length of a string is
// the number of code units before the first zero; all comparisons, searches
// and hashes work on logical content, never on raw storage, so two strings of
// different capacity with the same content are equal and hash alike.
//
// Literals have value semantics. Mutating methods copy the storage before
// writing, so a copy never observes writes made through the original.
//
// Bounds checking of Index is controlled by the literal_safe build tag:
//
//	go build -tags literal_safe ./...
//
// With the tag, an index at or past the logical length panics with an *Error
// carrying ErrCodeOutOfRange. Without it, Index is unchecked. At is always
// checked.
package literal
