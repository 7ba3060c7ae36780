package literal

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash/maphash"
	"math"
	"reflect"
	"strconv"
	"unicode/utf8"
)

// DomainLiteral prefixes the content-addressed identity of a literal.
// Version suffix enables future algorithm migration.
const DomainLiteral = "literal/v1"

// HashView hashes a view of code units. Every unit is written as the bits of
// its float64 value whatever its character kind, so views that compare equal
// hash alike across kinds and capacities, and a one-unit view hashes like the
// numeric value it equals.
func HashView[C Char](seed maphash.Seed, v []C) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, c := range v {
		writeFloat(&h, float64(int64(c)))
	}
	return h.Sum64()
}

// hashNumber hashes a numeric scalar by its float64 value, the common type
// mixed comparisons convert to.
func hashNumber(seed maphash.Seed, n number) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	switch n.domain {
	case 'i':
		writeFloat(&h, float64(n.i))
	case 'u':
		writeFloat(&h, float64(n.u))
	default:
		writeFloat(&h, n.f)
	}
	return h.Sum64()
}

func writeFloat(h *maphash.Hash, f float64) {
	if f == 0 {
		f = 0 // -0
	}
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], math.Float64bits(f))
	h.Write(scratch[:])
}

// Canonical produces the canonical JSON encoding of a literal for
// content-addressed identity. Keys are sorted and HTML escaping is disabled.
// Capacity is deliberately absent, so logically equal literals of different
// capacity encode identically:
//
//	{"kind":"string","type":"byte","value":"Test String"}
//	{"kind":"value","type":"float32","value":5.5}
//	{"kind":"undefined"}
//
// A string whose content is not valid text is encoded as "units", an array
// of its code units, instead of "value". Non-finite floats encode as the
// strings "+Inf", "-Inf" and "NaN". Values whose payload is not a boolean,
// number or string have no canonical form and fail with
// ErrCodeUnsupported.
func Canonical(l Literal) ([]byte, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"kind":`)
	kindBytes, err := marshalNoEscape(l.Kind().String())
	if err != nil {
		return nil, err
	}
	buf.Write(kindBytes)

	if l.Kind() == KindUndefined {
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	buf.WriteString(`,"type":`)
	typeBytes, err := marshalNoEscape(l.TypeName())
	if err != nil {
		return nil, err
	}
	buf.Write(typeBytes)

	if l.Kind() == KindString {
		text, ok := validText(l)
		if ok {
			buf.WriteString(`,"value":`)
			valueBytes, err := marshalNoEscape(text)
			if err != nil {
				return nil, err
			}
			buf.Write(valueBytes)
		} else {
			buf.WriteString(`,"units":`)
			writeUnits(&buf, l)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}

	buf.WriteString(`,"value":`)
	valueBytes, err := canonicalScalar(l.scalar())
	if err != nil {
		return nil, err
	}
	buf.Write(valueBytes)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// canonicalScalar encodes a value payload. Only kinds that decode back to
// the same payload are accepted.
func canonicalScalar(x any) ([]byte, error) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return marshalNoEscape(x)
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		switch {
		case math.IsNaN(f):
			return []byte(`"NaN"`), nil
		case math.IsInf(f, 1):
			return []byte(`"+Inf"`), nil
		case math.IsInf(f, -1):
			return []byte(`"-Inf"`), nil
		}
		return marshalNoEscape(x)
	}
	return nil, &Error{
		Code:    ErrCodeUnsupported,
		Message: fmt.Sprintf("payload type %s has no canonical form", v.Type()),
	}
}

// validText returns the logical content as Go text, and whether that text
// decodes back to the same code units.
func validText(l Literal) (string, bool) {
	text := l.String()
	return text, utf8.ValidString(text) && textRoundTrips(l, text)
}

// writeUnits writes the logical content as a JSON array of code units.
func writeUnits(buf *bytes.Buffer, l Literal) {
	buf.WriteByte('[')
	for i := 0; i < l.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.FormatInt(l.unit(i), 10))
	}
	buf.WriteByte(']')
}

// textRoundTrips reports whether decoding the string lost nothing, which
// fails for lone UTF-16 surrogates and out-of-range code points.
func textRoundTrips(l Literal, text string) bool {
	switch s := l.(type) {
	case String[Char16]:
		return EqualView(s, encode[Char16](text))
	case String[rune]:
		return EqualView(s, encode[rune](text))
	case String[Char32]:
		return EqualView(s, encode[Char32](text))
	}
	return true
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// json.Encoder adds trailing newline, remove it
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ID computes the content-addressed identity of a literal: the domain
// separated SHA-256 of its canonical encoding.
func ID(l Literal) (string, error) {
	canonical, err := Canonical(l)
	if err != nil {
		return "", fmt.Errorf("literal ID: %w", err)
	}
	return hashWithDomain(DomainLiteral, canonical), nil
}

// MustID is like ID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustID(l Literal) string {
	id, err := ID(l)
	if err != nil {
		panic(err)
	}
	return id
}
