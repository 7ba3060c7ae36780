package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/Epixu/literal-t/internal/harness"
	"github.com/Epixu/literal-t/literal"
)

// LiteralFlags describe how command-line text becomes a literal.
type LiteralFlags struct {
	Char      string // character kind of string literals
	Type      string // value type; when set the text is parsed as a scalar
	Capacity  int    // explicit string capacity, 0 to deduce
	Undefined bool   // ignore the text and build the undefined literal
	NFC       bool   // normalize text to NFC before building a string
}

func addLiteralFlags(cmd *cobra.Command, f *LiteralFlags) {
	cmd.Flags().StringVar(&f.Char, "char", "byte", "character kind (byte|rune|char8|char16|char32)")
	cmd.Flags().StringVar(&f.Type, "type", "", "build a value literal of this type instead of a string")
	cmd.Flags().IntVar(&f.Capacity, "capacity", 0, "string capacity, a power of two (0 deduces it)")
	cmd.Flags().BoolVar(&f.Undefined, "undefined", false, "build the undefined literal")
	cmd.Flags().BoolVar(&f.NFC, "nfc", false, "normalize string text to NFC")
}

// Build turns text into a literal.
func (f *LiteralFlags) Build(text string) (literal.Literal, error) {
	switch {
	case f.Undefined:
		return harness.BuildLiteral(harness.LiteralDecl{Undefined: true})
	case f.Type != "":
		value, err := scalar(f.Type, text)
		if err != nil {
			return nil, err
		}
		return harness.BuildLiteral(harness.LiteralDecl{Type: f.Type, Value: value})
	}
	if f.NFC {
		text = norm.NFC.String(text)
	}
	return harness.BuildLiteral(harness.LiteralDecl{Char: f.Char, Text: &text, Capacity: f.Capacity})
}

// scalar parses text the way a scenario file would spell the value.
func scalar(typ, text string) (any, error) {
	if typ == "string" {
		return text, nil
	}
	var value any
	if err := yaml.Unmarshal([]byte(text), &value); err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", typ, text, err)
	}
	if value == nil {
		return nil, fmt.Errorf("invalid %s value %q", typ, text)
	}
	return value, nil
}

// readText reads a text file as UTF-8. A byte order mark selects UTF-16
// decoding; a UTF-8 mark is dropped. One trailing line ending is removed.
func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	text := string(out)
	if t, ok := strings.CutSuffix(text, "\n"); ok {
		text = strings.TrimSuffix(t, "\r")
	}
	return text, nil
}

// operand returns the text of a positional argument, or the content of
// file when one is given.
func operand(args []string, i int, file string) (string, error) {
	if file != "" {
		return readText(file)
	}
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i+1)
	}
	return args[i], nil
}
