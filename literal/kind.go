package literal

import "fmt"

// Kind is the classification of a literal. The three kinds partition every
// literal type without overlap.
type Kind uint8

const (
	// KindUndefined is a placeholder literal with no payload type.
	KindUndefined Kind = iota

	// KindValue holds exactly one scalar, capacity 0.
	KindValue

	// KindString holds zero or more code units, capacity > 0.
	KindString
)

var kindNames = [...]string{
	KindUndefined: "undefined",
	KindValue:     "value",
	KindString:    "string",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown literal kind %q", s)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid literal kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
