package harness

import (
	"fmt"
	"strings"

	"github.com/Epixu/literal-t/literal"
)

// AssertionError is returned when a step expectation or a final assertion
// does not hold.
type AssertionError struct {
	Type     string // Step op or assertion type
	Where    string // Step number or assertion subject
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s (%s)\n", e.Type, e.Where)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// checkStep compares a traced step with its expectations.
func checkStep(step Step, ev TraceEvent) []*AssertionError {
	var failures []*AssertionError
	where := fmt.Sprintf("step %d", ev.Step)

	if step.ExpectError != "" || ev.Error != "" {
		if step.ExpectError != ev.Error {
			failures = append(failures, &AssertionError{
				Type:     step.Op,
				Where:    where,
				Expected: describeError(step.ExpectError),
				Actual:   describeError(ev.Error),
			})
		}
		return failures
	}

	if step.Expect != nil && fmt.Sprint(step.Expect) != fmt.Sprint(ev.Result) {
		failures = append(failures, &AssertionError{
			Type:     step.Op,
			Where:    where,
			Expected: fmt.Sprintf("%v", step.Expect),
			Actual:   fmt.Sprintf("%v", ev.Result),
		})
	}
	if step.ExpectCapacity != 0 && step.ExpectCapacity != ev.Capacity {
		failures = append(failures, &AssertionError{
			Type:     step.Op,
			Where:    where,
			Expected: fmt.Sprintf("capacity %d", step.ExpectCapacity),
			Actual:   fmt.Sprintf("capacity %d", ev.Capacity),
		})
	}
	return failures
}

func describeError(code string) string {
	if code == "" {
		return "no error"
	}
	return "error " + code
}

// evaluate checks one final assertion against the bindings.
func (h *Harness) evaluate(a Assertion) error {
	switch a.Type {
	case AssertEquivalent, AssertDistinct:
		want := a.Type == AssertEquivalent
		for i, x := range a.Literals {
			for _, y := range a.Literals[i+1:] {
				if literal.Equal(h.bindings[x], h.bindings[y]) != want {
					return &AssertionError{
						Type:     a.Type,
						Where:    x + ", " + y,
						Expected: fmt.Sprintf("equal=%t", want),
						Actual:   fmt.Sprintf("equal=%t", !want),
					}
				}
			}
		}
	case AssertFinalState:
		l := h.bindings[a.Literal]
		if a.Text != nil && l.String() != *a.Text {
			return &AssertionError{Type: a.Type, Where: a.Literal,
				Expected: fmt.Sprintf("text %q", *a.Text), Actual: fmt.Sprintf("text %q", l.String())}
		}
		if a.Capacity != 0 && l.Cap() != a.Capacity {
			return &AssertionError{Type: a.Type, Where: a.Literal,
				Expected: fmt.Sprintf("capacity %d", a.Capacity), Actual: fmt.Sprintf("capacity %d", l.Cap())}
		}
		if a.Size != nil && l.Len() != *a.Size {
			return &AssertionError{Type: a.Type, Where: a.Literal,
				Expected: fmt.Sprintf("size %d", *a.Size), Actual: fmt.Sprintf("size %d", l.Len())}
		}
	case AssertRegistryCount:
		if n := h.registry.Len(); n != a.Count {
			return &AssertionError{Type: a.Type, Where: "registry",
				Expected: fmt.Sprintf("%d entries", a.Count), Actual: fmt.Sprintf("%d entries", n)}
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
