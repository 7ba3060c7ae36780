package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario: a set of named literals, a list
// of operations on them with expected outcomes, and final assertions.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Literals are bound in order before the first step runs.
	Literals []LiteralDecl `yaml:"literals"`

	// Steps run in order against the bound literals.
	Steps []Step `yaml:"steps,omitempty"`

	// Assertions validate the bindings after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// LiteralDecl binds a name to one literal. Exactly one of the three forms
// must be used:
//
//	{name: s, char: byte, text: "Test String"}     # String, capacity deduced
//	{name: p, char: rune, text: "x", capacity: 64} # String, explicit capacity
//	{name: v, type: float32, value: 5.5}           # Value
//	{name: u, undefined: true}                     # Undefined
type LiteralDecl struct {
	Name      string  `yaml:"name"`
	Char      string  `yaml:"char,omitempty"`
	Text      *string `yaml:"text,omitempty"`
	Capacity  int     `yaml:"capacity,omitempty"`
	Type      string  `yaml:"type,omitempty"`
	Value     any     `yaml:"value,omitempty"`
	Undefined bool    `yaml:"undefined,omitempty"`
}

// Step is one operation on a bound literal.
type Step struct {
	// Op names the operation (see the Op* constants).
	Op string `yaml:"op"`

	// Target is the literal the operation applies to.
	Target string `yaml:"target"`

	// Other is a second literal operand (equal, compare, concat, append).
	Other string `yaml:"other,omitempty"`

	// Text is a raw view operand (find family, affixes, append).
	Text *string `yaml:"text,omitempty"`

	// Index is the position for at.
	Index int `yaml:"index,omitempty"`

	// Pos and Count are the range for search and substr. A missing Pos
	// searches from the start (forward ops) or the end (reverse ops); a
	// missing Count runs to the end.
	Pos   *int `yaml:"pos,omitempty"`
	Count *int `yaml:"count,omitempty"`

	// Capacity is the new capacity for resize.
	Capacity int `yaml:"capacity,omitempty"`

	// Into binds the produced literal (substr, concat, resize) to a new name.
	Into string `yaml:"into,omitempty"`

	// Expect is the expected result. Positions equal to literal.NPos are
	// spelled "npos".
	Expect any `yaml:"expect,omitempty"`

	// ExpectCapacity is the expected capacity of a produced literal.
	ExpectCapacity int `yaml:"expect_capacity,omitempty"`

	// ExpectError is the expected literal.ErrorCode.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates the bindings after all steps ran.
type Assertion struct {
	// Type specifies the assertion type:
	// - "equivalent": every pair of Literals is equal
	// - "distinct": no pair of Literals is equal
	// - "final_state": Literal has the given Text, Capacity and Size
	// - "registry_count": the registry holds Count entries
	Type string `yaml:"type"`

	Literals []string `yaml:"literals,omitempty"`
	Literal  string   `yaml:"literal,omitempty"`
	Text     *string  `yaml:"text,omitempty"`
	Capacity int      `yaml:"capacity,omitempty"`
	Size     *int     `yaml:"size,omitempty"`
	Count    int      `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertEquivalent    = "equivalent"
	AssertDistinct      = "distinct"
	AssertFinalState    = "final_state"
	AssertRegistryCount = "registry_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains unknown
// fields, fails the schema, or references unbound literals.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	if err := checkSchema(data); err != nil {
		return nil, err
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks the rules the schema cannot express: one form per
// literal declaration and operands bound before use.
func validateScenario(s *Scenario) error {
	bound := make(map[string]bool)

	for i, decl := range s.Literals {
		if bound[decl.Name] {
			return fmt.Errorf("literals[%d]: duplicate name %q", i, decl.Name)
		}
		forms := 0
		if decl.Char != "" {
			forms++
			if decl.Text == nil {
				return fmt.Errorf("literals[%d]: text is required with char", i)
			}
		}
		if decl.Type != "" {
			forms++
			if decl.Value == nil {
				return fmt.Errorf("literals[%d]: value is required with type", i)
			}
		}
		if decl.Undefined {
			forms++
		}
		if forms != 1 {
			return fmt.Errorf("literals[%d]: exactly one of char, type or undefined is required", i)
		}
		bound[decl.Name] = true
	}

	for i, step := range s.Steps {
		if !bound[step.Target] {
			return fmt.Errorf("steps[%d]: target %q is not bound", i, step.Target)
		}
		if step.Other != "" && !bound[step.Other] {
			return fmt.Errorf("steps[%d]: other %q is not bound", i, step.Other)
		}
		if err := validateOperands(i, step); err != nil {
			return err
		}
		if step.Into != "" {
			bound[step.Into] = true
		}
	}

	for i, a := range s.Assertions {
		names := slices.Clone(a.Literals)
		if a.Literal != "" {
			names = append(names, a.Literal)
		}
		for _, name := range names {
			if !bound[name] {
				return fmt.Errorf("assertions[%d]: literal %q is not bound", i, name)
			}
		}
		switch a.Type {
		case AssertEquivalent, AssertDistinct:
			if len(a.Literals) < 2 {
				return fmt.Errorf("assertions[%d]: %s needs at least two literals", i, a.Type)
			}
		case AssertFinalState:
			if a.Literal == "" {
				return fmt.Errorf("assertions[%d]: literal is required for final_state", i)
			}
		}
	}
	return nil
}

func validateOperands(i int, step Step) error {
	switch step.Op {
	case OpEqual, OpHashEqual, OpCompare, OpConcat:
		if step.Other == "" {
			return fmt.Errorf("steps[%d]: %s requires other", i, step.Op)
		}
	case OpFind, OpRFind, OpFindFirstOf, OpFindLastOf, OpFindFirstNotOf, OpFindLastNotOf,
		OpStartsWith, OpEndsWith, OpContains:
		if step.Text == nil {
			return fmt.Errorf("steps[%d]: %s requires text", i, step.Op)
		}
	case OpAppend:
		if (step.Other == "") == (step.Text == nil) {
			return fmt.Errorf("steps[%d]: append requires exactly one of other or text", i)
		}
	case OpResize:
		if step.Capacity == 0 {
			return fmt.Errorf("steps[%d]: resize requires capacity", i)
		}
	}
	return nil
}
