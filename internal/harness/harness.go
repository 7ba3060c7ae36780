package harness

import (
	"errors"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/Epixu/literal-t/internal/registry"
	"github.com/Epixu/literal-t/internal/testutil"
	"github.com/Epixu/literal-t/literal"
)

// Harness executes one scenario. Each run gets fresh bindings, a fresh
// registry with a deterministic clock, and a fresh hash seed.
type Harness struct {
	registry *registry.Registry
	clock    *testutil.DeterministicClock
	logger   *slog.Logger
	seed     maphash.Seed

	names    []string
	bindings map[string]literal.Literal
}

// Option configures a run.
type Option func(*Harness)

// WithLogger sets the logger for step events. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Bind the declared literals in order
// 2. Execute steps, checking each expectation
// 3. Evaluate assertions against the final bindings
// 4. Summarize every binding
//
// A returned error means the scenario could not run (a malformed literal
// declaration or an operand of the wrong kind). Failed expectations are
// reported in Result.Errors instead.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	h := newHarness(opts)
	h.logger.Info("running scenario", "name", scenario.Name)

	for i, decl := range scenario.Literals {
		l, err := BuildLiteral(decl)
		if err != nil {
			return nil, fmt.Errorf("literals[%d] %s: %w", i, decl.Name, err)
		}
		h.bind(decl.Name, l)
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := h.executeStep(i+1, step, result); err != nil {
			return nil, fmt.Errorf("steps[%d] %s: %w", i, step.Op, err)
		}
	}

	for _, a := range scenario.Assertions {
		if err := h.evaluate(a); err != nil {
			result.AddError(err.Error())
		}
	}

	for _, name := range h.names {
		result.Literals = append(result.Literals, Summarize(name, h.bindings[name]))
	}

	h.logger.Info("scenario finished", "name", scenario.Name, "pass", result.Pass, "errors", len(result.Errors))
	return result, nil
}

func newHarness(opts []Option) *Harness {
	clock := testutil.NewDeterministicClock()
	h := &Harness{
		clock:    clock,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		seed:     maphash.MakeSeed(),
		bindings: make(map[string]literal.Literal),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.registry = registry.New(registry.WithClock(clock), registry.WithLogger(h.logger))
	return h
}

// Eval runs a single step outside of a scenario. The step's Target and
// Other name the operands in the returned event; other may be nil for
// operations that take no literal operand.
//
// Failures reported by the literal API are recorded in the event's Error
// field. A returned error means the step could not run.
func Eval(step Step, target, other literal.Literal, opts ...Option) (TraceEvent, literal.Literal, error) {
	if err := validateOperands(0, step); err != nil {
		return TraceEvent{}, nil, err
	}
	h := newHarness(opts)

	ev := TraceEvent{Step: 1, Op: step.Op, Target: step.Target, Other: step.Other}
	got, produced, err := h.apply(step, target, other)

	var le *literal.Error
	switch {
	case errors.As(err, &le):
		ev.Error = string(le.Code)
		return ev, nil, nil
	case err != nil:
		return ev, nil, err
	}
	ev.Result = got
	if produced != nil {
		ev.Capacity = produced.Cap()
	}
	return ev, produced, nil
}

func (h *Harness) bind(name string, l literal.Literal) {
	if _, ok := h.bindings[name]; !ok {
		h.names = append(h.names, name)
	}
	h.bindings[name] = l
}

// executeStep runs one step, records it in the trace and checks its
// expectations.
func (h *Harness) executeStep(n int, step Step, result *Result) error {
	target := h.bindings[step.Target]
	var other literal.Literal
	if step.Other != "" {
		other = h.bindings[step.Other]
	}

	ev := TraceEvent{Step: n, Op: step.Op, Target: step.Target, Other: step.Other}
	got, produced, err := h.apply(step, target, other)

	var le *literal.Error
	switch {
	case errors.As(err, &le):
		ev.Error = string(le.Code)
	case err != nil:
		return err
	default:
		ev.Result = got
		if produced != nil {
			ev.Capacity = produced.Cap()
			switch {
			case step.Op == OpAppend:
				h.bind(step.Target, produced)
			case step.Into != "":
				h.bind(step.Into, produced)
			}
		}
	}
	result.AddTrace(ev)

	h.logger.Debug("step executed",
		"step", n,
		"op", step.Op,
		"target", step.Target,
		"result", ev.Result,
		"error", ev.Error,
	)

	for _, failure := range checkStep(step, ev) {
		result.AddError(failure.Error())
	}
	return nil
}

// apply performs the operation. The produced literal is non-nil for
// operations that create or modify a literal.
func (h *Harness) apply(step Step, target, other literal.Literal) (any, literal.Literal, error) {
	switch step.Op {
	case OpSize:
		return target.Len(), nil, nil
	case OpCapacity:
		return target.Cap(), nil, nil
	case OpEmpty:
		return target.Empty(), nil, nil
	case OpBool:
		return target.Bool(), nil, nil
	case OpKind:
		return target.Kind().String(), nil, nil
	case OpType:
		return target.TypeName(), nil, nil
	case OpString:
		return target.String(), nil, nil
	case OpEqual:
		return literal.Equal(target, other), nil, nil
	case OpHashEqual:
		return target.Hash(h.seed) == other.Hash(h.seed), nil, nil
	case OpRegister:
		_, inserted, err := h.registry.Register(target)
		return inserted, nil, err
	}

	ops, err := opsFor(target)
	if err != nil {
		return nil, nil, err
	}

	switch step.Op {
	case OpCompare:
		c, err := ops.compare(other)
		return c, nil, err
	case OpFind, OpRFind, OpFindFirstOf, OpFindLastOf, OpFindFirstNotOf, OpFindLastNotOf:
		pos, err := ops.search(step.Op, *step.Text, step.Pos)
		return position(pos), nil, err
	case OpStartsWith, OpEndsWith, OpContains:
		ok, err := ops.affix(step.Op, *step.Text)
		return ok, nil, err
	case OpAt:
		c, err := ops.at(step.Index)
		if err != nil {
			return nil, nil, err
		}
		return c, nil, nil
	case OpSubstr:
		pos, count := 0, literal.NPos
		if step.Pos != nil {
			pos = *step.Pos
		}
		if step.Count != nil {
			count = *step.Count
		}
		out := ops.substr(pos, count)
		return out.String(), out, nil
	case OpConcat:
		out, err := ops.concat(other)
		if err != nil {
			return nil, nil, err
		}
		return out.String(), out, nil
	case OpAppend:
		var out literal.Literal
		if step.Text != nil {
			out = ops.appendText(*step.Text)
		} else if out, err = ops.appendLiteral(other); err != nil {
			return nil, nil, err
		}
		return out.String(), out, nil
	case OpResize:
		out, err := ops.resize(step.Capacity)
		if err != nil {
			return nil, nil, err
		}
		return out.String(), out, nil
	}
	return nil, nil, fmt.Errorf("unknown op %q", step.Op)
}

// position spells literal.NPos as "npos".
func position(pos int) any {
	if pos == literal.NPos {
		return "npos"
	}
	return pos
}

// BuildLiteral constructs the literal a declaration describes. The
// declaration is expected to carry exactly one form.
func BuildLiteral(d LiteralDecl) (literal.Literal, error) {
	switch {
	case d.Undefined:
		return literal.New(), nil
	case d.Char != "":
		return buildString(d.Char, *d.Text, d.Capacity)
	}
	return buildValue(d.Type, d.Value)
}

func buildString(char, text string, capacity int) (literal.Literal, error) {
	switch char {
	case "byte":
		return makeString[byte](text, capacity)
	case "rune":
		return makeString[rune](text, capacity)
	case "char8":
		return makeString[literal.Char8](text, capacity)
	case "char16":
		return makeString[literal.Char16](text, capacity)
	case "char32":
		return makeString[literal.Char32](text, capacity)
	}
	return nil, fmt.Errorf("unknown character kind %q", char)
}

// makeString deduces the capacity from text, or places the logical content
// of text into the given capacity.
func makeString[C literal.Char](text string, capacity int) (literal.Literal, error) {
	s := literal.Parse[C](text)
	if capacity == 0 {
		return s, nil
	}
	return literal.WithCapacity(capacity, s.View())
}

func buildValue(typ string, v any) (literal.Literal, error) {
	switch typ {
	case "bool":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("value %v is not a bool", v)
		}
		return literal.Of(b), nil
	case "string":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("value %v is not a string", v)
		}
		return literal.Of(s), nil
	case "float32", "float64":
		f, err := asFloat(v)
		if err != nil {
			return nil, err
		}
		if typ == "float32" {
			return literal.Of(float32(f)), nil
		}
		return literal.Of(f), nil
	case "byte", "uint8":
		n, err := asInt(v, 0, math.MaxUint8)
		if err != nil {
			return nil, err
		}
		return literal.Of(byte(n)), nil
	case "rune":
		n, err := asInt(v, 0, utf8.MaxRune)
		if err != nil {
			return nil, err
		}
		return literal.Of(rune(n)), nil
	case "int":
		n, err := asInt(v, math.MinInt, math.MaxInt)
		if err != nil {
			return nil, err
		}
		return literal.Of(int(n)), nil
	case "int64":
		n, err := asInt(v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return nil, err
		}
		return literal.Of(n), nil
	case "uint64":
		n, err := asInt(v, 0, math.MaxInt64)
		if err != nil {
			return nil, err
		}
		return literal.Of(uint64(n)), nil
	}
	return nil, fmt.Errorf("unknown value type %q", typ)
}

// asInt accepts a YAML integer, or a one-character string for character
// types.
func asInt(v any, lo, hi int64) (int64, error) {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case uint64:
		if x > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of range", x)
		}
		n = int64(x)
	case string:
		r, size := utf8.DecodeRuneInString(x)
		if size == 0 || size != len(x) {
			return 0, fmt.Errorf("value %q is not a single character", x)
		}
		n = int64(r)
	default:
		return 0, fmt.Errorf("value %v is not an integer", v)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("value %d out of range [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, fmt.Errorf("value %v is not a number", v)
}
