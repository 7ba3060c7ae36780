package harness

import (
	"fmt"

	"github.com/Epixu/literal-t/literal"
)

// Operation names accepted in scenario steps.
const (
	OpSize           = "size"
	OpCapacity       = "capacity"
	OpEmpty          = "empty"
	OpBool           = "bool"
	OpKind           = "kind"
	OpType           = "type"
	OpString         = "string"
	OpEqual          = "equal"
	OpHashEqual      = "hash_equal"
	OpCompare        = "compare"
	OpFind           = "find"
	OpRFind          = "rfind"
	OpFindFirstOf    = "find_first_of"
	OpFindLastOf     = "find_last_of"
	OpFindFirstNotOf = "find_first_not_of"
	OpFindLastNotOf  = "find_last_not_of"
	OpStartsWith     = "starts_with"
	OpEndsWith       = "ends_with"
	OpContains       = "contains"
	OpAt             = "at"
	OpSubstr         = "substr"
	OpConcat         = "concat"
	OpAppend         = "append"
	OpResize         = "resize"
	OpRegister       = "register"
)

// textOps exposes the character-kind specific String API with Go text
// operands, so steps can run against any of the character kinds.
type textOps interface {
	search(op, text string, pos *int) (int, error)
	affix(op, text string) (bool, error)
	at(i int) (int64, error)
	compare(other literal.Literal) (int, error)
	substr(pos, count int) literal.Literal
	appendLiteral(other literal.Literal) (literal.Literal, error)
	appendText(text string) literal.Literal
	concat(other literal.Literal) (literal.Literal, error)
	resize(capacity int) (literal.Literal, error)
}

// opsFor returns the text operations of a String literal.
func opsFor(l literal.Literal) (textOps, error) {
	switch s := l.(type) {
	case literal.String[byte]:
		return stringOps[byte]{s}, nil
	case literal.String[rune]:
		return stringOps[rune]{s}, nil
	case literal.String[literal.Char8]:
		return stringOps[literal.Char8]{s}, nil
	case literal.String[literal.Char16]:
		return stringOps[literal.Char16]{s}, nil
	case literal.String[literal.Char32]:
		return stringOps[literal.Char32]{s}, nil
	}
	return nil, fmt.Errorf("%s literal of %s has no string operations", l.Kind(), l.TypeName())
}

type stringOps[C literal.Char] struct {
	s literal.String[C]
}

func units[C literal.Char](text string) []C {
	return literal.Parse[C](text).View()
}

func (o stringOps[C]) search(op, text string, pos *int) (int, error) {
	v := units[C](text)
	forward := 0
	backward := literal.NPos
	if pos != nil {
		forward, backward = *pos, *pos
	}
	switch op {
	case OpFind:
		return o.s.Find(v, forward), nil
	case OpRFind:
		return o.s.RFind(v, backward), nil
	case OpFindFirstOf:
		return o.s.FindFirstOf(v, forward), nil
	case OpFindLastOf:
		return o.s.FindLastOf(v, backward), nil
	case OpFindFirstNotOf:
		return o.s.FindFirstNotOf(v, forward), nil
	case OpFindLastNotOf:
		return o.s.FindLastNotOf(v, backward), nil
	}
	return 0, fmt.Errorf("unknown search op %q", op)
}

func (o stringOps[C]) affix(op, text string) (bool, error) {
	v := units[C](text)
	switch op {
	case OpStartsWith:
		return o.s.StartsWith(v), nil
	case OpEndsWith:
		return o.s.EndsWith(v), nil
	case OpContains:
		return o.s.Contains(v), nil
	}
	return false, fmt.Errorf("unknown affix op %q", op)
}

func (o stringOps[C]) at(i int) (int64, error) {
	c, err := o.s.At(i)
	return int64(c), err
}

func (o stringOps[C]) same(other literal.Literal) (literal.String[C], error) {
	s, ok := other.(literal.String[C])
	if !ok {
		return s, fmt.Errorf("operand is a %s literal of %s, want a string of %s",
			other.Kind(), other.TypeName(), o.s.TypeName())
	}
	return s, nil
}

func (o stringOps[C]) compare(other literal.Literal) (int, error) {
	s, err := o.same(other)
	if err != nil {
		return 0, err
	}
	return literal.Compare(o.s, s), nil
}

func (o stringOps[C]) substr(pos, count int) literal.Literal {
	return o.s.Substr(pos, count)
}

func (o stringOps[C]) appendLiteral(other literal.Literal) (literal.Literal, error) {
	s, err := o.same(other)
	if err != nil {
		return nil, err
	}
	out := o.s
	out.Append(s)
	return out, nil
}

func (o stringOps[C]) appendText(text string) literal.Literal {
	out := o.s
	out.AppendView(units[C](text))
	return out
}

func (o stringOps[C]) concat(other literal.Literal) (literal.Literal, error) {
	s, err := o.same(other)
	if err != nil {
		return nil, err
	}
	return literal.Concat(o.s, s), nil
}

func (o stringOps[C]) resize(capacity int) (literal.Literal, error) {
	return o.s.Resize(capacity)
}
