package literal

import (
	"reflect"
	"unicode/utf16"
)

// Char8 is a UTF-8 code unit. It is distinct from byte so that UTF-8 text and
// narrow text classify as different payload types.
type Char8 uint8

// Char16 is a UTF-16 code unit.
type Char16 uint16

// Char32 is a UTF-32 code unit.
type Char32 uint32

// Char is the set of recognized character kinds: narrow (byte), wide (rune)
// and the three fixed-width code units.
type Char interface {
	byte | rune | Char8 | Char16 | Char32
}

// charName returns the short name of a character kind, or false if v is not
// one of the recognized kinds.
func charName(v any) (string, bool) {
	switch v.(type) {
	case byte:
		return "byte", true
	case rune:
		return "rune", true
	case Char8:
		return "char8", true
	case Char16:
		return "char16", true
	case Char32:
		return "char32", true
	}
	return "", false
}

// typeName names the payload type T the way registry keys and canonical
// encodings spell it.
func typeName[T any]() string {
	var zero T
	if name, ok := charName(zero); ok {
		return name
	}
	if _, ok := any(zero).(Unsupported); ok {
		return "undefined"
	}
	return reflect.TypeFor[T]().String()
}

// encode converts Go (UTF-8) text into code units of kind C.
func encode[C Char](s string) []C {
	var zero C
	switch any(zero).(type) {
	case byte, Char8:
		out := make([]C, len(s))
		for i := 0; i < len(s); i++ {
			out[i] = C(s[i])
		}
		return out
	case Char16:
		units := utf16.Encode([]rune(s))
		out := make([]C, len(units))
		for i, u := range units {
			out[i] = C(u)
		}
		return out
	}
	runes := []rune(s)
	out := make([]C, len(runes))
	for i, r := range runes {
		out[i] = C(r)
	}
	return out
}

// decode converts code units of kind C back into Go text. Byte kinds are
// copied verbatim, so invalid UTF-8 survives a round trip.
func decode[C Char](units []C) string {
	var zero C
	switch any(zero).(type) {
	case byte, Char8:
		b := make([]byte, len(units))
		for i, u := range units {
			b[i] = byte(u)
		}
		return string(b)
	case Char16:
		u16 := make([]uint16, len(units))
		for i, u := range units {
			u16[i] = uint16(u)
		}
		return string(utf16.Decode(u16))
	}
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return string(runes)
}
