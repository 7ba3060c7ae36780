package literal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the logical content as a JSON string. Content that is
// not valid text, such as invalid UTF-8 or a lone surrogate, is encoded as
// an array of its code units instead.
func (s String[C]) MarshalJSON() ([]byte, error) {
	if text, ok := validText(s); ok {
		return json.Marshal(text)
	}
	var buf bytes.Buffer
	writeUnits(&buf, s)
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON string or an array of code units. The
// capacity is derived from the decoded length exactly as Parse does. null
// leaves s unchanged.
func (s *String[C]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var units []int64
		if err := json.Unmarshal(data, &units); err != nil {
			return fmt.Errorf("literal string: %w", err)
		}
		chars := make([]C, len(units))
		for i, u := range units {
			chars[i] = C(u)
			if int64(chars[i]) != u {
				return fmt.Errorf("literal string: unit %d at %d out of range", u, i)
			}
		}
		*s = From(chars)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("literal string: %w", err)
	}
	*s = Parse[C](text)
	return nil
}

// MarshalJSON encodes the scalar, or null for Undefined.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.undefined() {
		return []byte("null"), nil
	}
	return json.Marshal(v.v)
}

// UnmarshalJSON decodes the scalar. Undefined accepts only null.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if v.undefined() {
		if !bytes.Equal(data, []byte("null")) {
			return fmt.Errorf("undefined literal: expected null, got %s", data)
		}
		return nil
	}
	if err := json.Unmarshal(data, &v.v); err != nil {
		return fmt.Errorf("literal value: %w", err)
	}
	return nil
}
