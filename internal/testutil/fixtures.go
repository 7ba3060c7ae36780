package testutil

import (
	"io"
	"log/slog"

	"github.com/Epixu/literal-t/literal"
)

// Fixture is a named literal shared across package tests.
type Fixture struct {
	Name    string
	Literal literal.Literal
}

// Fixtures returns the reference literals: the four empty forms, a fixed
// string, a wide string, a padded string and two values. A fresh slice is
// returned on every call.
func Fixtures() []Fixture {
	return []Fixture{
		{"empty_undefined", literal.New()},
		{"empty_string_1", literal.FromString("")},
		{"empty_string_2", literal.FromString("\x00")},
		{"empty_string_4", literal.FromString("\x00\x00\x00")},
		{"fixed_string", literal.FromString("Test String")},
		{"wide_string", literal.FromRunes("Test String")},
		{"padded_string", literal.MustWithCapacity(64, []byte("Test String"))},
		{"fixed_value", literal.Of(float32(5.5))},
		{"fixed_value_char", literal.Of(byte('a'))},
	}
}

// FixtureNamed returns the fixture with the given name, or nil.
func FixtureNamed(name string) literal.Literal {
	for _, f := range Fixtures() {
		if f.Name == name {
			return f.Literal
		}
	}
	return nil
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
