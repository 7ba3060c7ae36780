package literal

import (
	"reflect"
	"slices"
)

// Equal compares two literals by logical content.
//
//   - String vs String: same logical length and the same code units in order.
//     Code units of different character kinds compare by numeric value.
//   - String vs Undefined: equal iff the string is empty.
//   - String vs Value: equal iff the string has exactly one code unit and it
//     equals the scalar.
//   - Value vs Value: equal iff the payload types are comparable and the
//     scalars match. Incomparable payloads are never equal, except that two
//     Undefined literals are always equal.
//
// Equal panics with an *Error if either argument is nil.
func Equal(a, b Literal) bool {
	mustValidate(a, []any{b})
	switch {
	case a.Kind() == KindString && b.Kind() == KindString:
		n := a.Len()
		if n != b.Len() {
			return false
		}
		for i := 0; i < n; i++ {
			if a.unit(i) != b.unit(i) {
				return false
			}
		}
		return true
	case a.Kind() == KindString:
		return stringEqualsScalar(a, b)
	case b.Kind() == KindString:
		return stringEqualsScalar(b, a)
	}
	eq, _ := scalarsEqual(a.scalar(), b.scalar())
	return eq
}

// stringEqualsScalar treats v as a sequence of zero (Undefined) or one
// (Value) elements.
func stringEqualsScalar(s, v Literal) bool {
	if v.Kind() == KindUndefined {
		return s.Empty()
	}
	if s.Len() != 1 {
		return false
	}
	eq, _ := numericEqual(s.unit(0), v.scalar())
	return eq
}

// EqualView compares a literal with a raw view. A String matches a view of
// identical logical content, Undefined matches only an empty view, and a
// Value never matches a view.
func EqualView[C Char](l Literal, v []C) bool {
	mustValidate(l, nil)
	switch l.Kind() {
	case KindString:
		if l.Len() != len(v) {
			return false
		}
		for i, c := range v {
			if l.unit(i) != int64(c) {
				return false
			}
		}
		return true
	case KindUndefined:
		return len(v) == 0
	}
	return false
}

// EqualArray compares a literal with a raw character array. The array is read
// up to its first zero when compared with a String. Against a Value, only the
// first element of the array is compared with the scalar and the length of
// the array is ignored. Against Undefined, the array must start with zero.
func EqualArray[C Char](l Literal, arr []C) bool {
	mustValidate(l, nil)
	switch l.Kind() {
	case KindString:
		return EqualView(l, cstr(arr))
	case KindValue:
		if len(arr) == 0 {
			return false
		}
		eq, _ := numericEqual(int64(arr[0]), l.scalar())
		return eq
	}
	return len(arr) == 0 || arr[0] == 0
}

// Compare orders two strings of the same character kind by logical content.
// It returns -1, 0 or +1.
func Compare[C Char](a, b String[C]) int {
	return viewCompare(a.view(), b.view())
}

// Compare orders the logical content against a view.
func (s String[C]) Compare(v []C) int {
	return viewCompare(s.view(), v)
}

// CompareArray orders the logical content against a character array read up
// to its first zero.
func (s String[C]) CompareArray(arr []C) int {
	return viewCompare(s.view(), cstr(arr))
}

// CompareRange compares Substr(pos1, count1) against v. A pos1 past the
// logical length is an ErrCodeOutOfRange error.
func (s String[C]) CompareRange(pos1, count1 int, v []C) (int, error) {
	sub, err := viewSub(s.view(), pos1, count1)
	if err != nil {
		return 0, err
	}
	return viewCompare(sub, v), nil
}

// CompareRanges compares Substr(pos1, count1) against v[pos2:pos2+count2].
func (s String[C]) CompareRanges(pos1, count1 int, v []C, pos2, count2 int) (int, error) {
	sub, err := viewSub(s.view(), pos1, count1)
	if err != nil {
		return 0, err
	}
	other, err := viewSub(v, pos2, count2)
	if err != nil {
		return 0, err
	}
	return viewCompare(sub, other), nil
}

func viewCompare[C Char](a, b []C) int {
	return slices.Compare(a, b)
}

// scalarsEqual compares two payloads. Identical types compare with ==;
// otherwise both must be numeric. The second result reports comparability.
func scalarsEqual(x, y any) (equal, comparable bool) {
	if reflect.TypeOf(x) == reflect.TypeOf(y) {
		return x == y, true
	}
	return numericEqual(x, y)
}

// number is a scalar widened to one of three numeric domains.
type number struct {
	domain byte // 'i', 'u' or 'f'
	i      int64
	u      uint64
	f      float64
}

func toNumber(x any) (number, bool) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return number{domain: 'i', i: 1}, true
		}
		return number{domain: 'i'}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number{domain: 'i', i: v.Int()}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number{domain: 'u', u: v.Uint()}, true
	case reflect.Float32, reflect.Float64:
		return number{domain: 'f', f: v.Float()}, true
	}
	return number{}, false
}

// numericEqual compares two numeric scalars of possibly different types by
// value, the way arithmetic types compare after the usual conversions.
func numericEqual(x, y any) (equal, comparable bool) {
	a, ok := toNumber(x)
	if !ok {
		return false, false
	}
	b, ok := toNumber(y)
	if !ok {
		return false, false
	}
	if a.domain > b.domain {
		a, b = b, a
	}
	switch uint16(a.domain)<<8 | uint16(b.domain) {
	case 'f'<<8 | 'f':
		return a.f == b.f, true
	case 'i'<<8 | 'i':
		return a.i == b.i, true
	case 'u'<<8 | 'u':
		return a.u == b.u, true
	case 'i'<<8 | 'u':
		return a.i >= 0 && uint64(a.i) == b.u, true
	case 'f'<<8 | 'i':
		return a.f == float64(b.i), true
	case 'f'<<8 | 'u':
		return a.f == float64(b.u), true
	}
	return false, false
}
