package registry

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Epixu/literal-t/literal"
)

// canonicalForm mirrors the object produced by literal.Canonical.
type canonicalForm struct {
	Kind  string          `json:"kind"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
	Units []int64         `json:"units"`
}

// Materialize rebuilds the literal an entry was registered from. Strings of
// every character kind, Undefined, and values of the predeclared boolean,
// numeric and string types are supported. Other payload types return an
// error wrapping ErrUnsupportedType.
func Materialize(e Entry) (literal.Literal, error) {
	var c canonicalForm
	if err := json.Unmarshal(e.Content, &c); err != nil {
		return nil, fmt.Errorf("materialize %s: %w", e.ID, err)
	}

	switch e.Kind {
	case literal.KindUndefined:
		return literal.New(), nil
	case literal.KindString:
		return materializeString(c, e.Key.Capacity)
	case literal.KindValue:
		return materializeValue(c)
	}
	return nil, fmt.Errorf("materialize %s: invalid kind %d", e.ID, e.Kind)
}

func materializeString(c canonicalForm, capacity int) (literal.Literal, error) {
	switch c.Type {
	case "byte":
		return buildString[byte](c, capacity)
	case "rune":
		return buildString[rune](c, capacity)
	case "char8":
		return buildString[literal.Char8](c, capacity)
	case "char16":
		return buildString[literal.Char16](c, capacity)
	case "char32":
		return buildString[literal.Char32](c, capacity)
	}
	return nil, fmt.Errorf("materialize string of %q: %w", c.Type, ErrUnsupportedType)
}

func buildString[C literal.Char](c canonicalForm, capacity int) (literal.Literal, error) {
	var units []C
	if c.Units != nil {
		units = make([]C, len(c.Units))
		for i, u := range c.Units {
			units[i] = C(u)
		}
	} else {
		var text string
		if err := json.Unmarshal(c.Value, &text); err != nil {
			return nil, fmt.Errorf("materialize string: %w", err)
		}
		units = literal.Parse[C](text).View()
	}
	return literal.WithCapacity(capacity, units)
}

func materializeValue(c canonicalForm) (literal.Literal, error) {
	switch c.Type {
	case "bool":
		return buildValue[bool](c.Value)
	case "int":
		return buildValue[int](c.Value)
	case "int8":
		return buildValue[int8](c.Value)
	case "int16":
		return buildValue[int16](c.Value)
	case "rune":
		return buildValue[rune](c.Value)
	case "int64":
		return buildValue[int64](c.Value)
	case "uint":
		return buildValue[uint](c.Value)
	case "byte":
		return buildValue[byte](c.Value)
	case "uint16":
		return buildValue[uint16](c.Value)
	case "uint32":
		return buildValue[uint32](c.Value)
	case "uint64":
		return buildValue[uint64](c.Value)
	case "float32":
		return buildFloat[float32](c.Value)
	case "float64":
		return buildFloat[float64](c.Value)
	case "string":
		return buildValue[string](c.Value)
	case "char8":
		return buildValue[literal.Char8](c.Value)
	case "char16":
		return buildValue[literal.Char16](c.Value)
	case "char32":
		return buildValue[literal.Char32](c.Value)
	}
	return nil, fmt.Errorf("materialize value of %q: %w", c.Type, ErrUnsupportedType)
}

func buildValue[T comparable](raw json.RawMessage) (literal.Literal, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("materialize value: %w", err)
	}
	return literal.Of(v), nil
}

func buildFloat[T float32 | float64](raw json.RawMessage) (literal.Literal, error) {
	var special string
	if json.Unmarshal(raw, &special) == nil {
		switch special {
		case "+Inf":
			return literal.Of(T(math.Inf(1))), nil
		case "-Inf":
			return literal.Of(T(math.Inf(-1))), nil
		case "NaN":
			return literal.Of(T(math.NaN())), nil
		}
		return nil, fmt.Errorf("materialize value: invalid float %q", special)
	}
	return buildValue[T](raw)
}
