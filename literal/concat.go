package literal

import "slices"

// Append copies the logical content of rhs after the logical content of s.
// The capacity of s never changes: copying stops when either rhs (including
// its terminator) or the capacity of s is exhausted, silently truncating.
func (s *String[C]) Append(rhs String[C]) {
	s.appendUnits(rhs.view())
}

// AppendView is Append with a raw view.
func (s *String[C]) AppendView(v []C) {
	s.appendUnits(v)
}

// AppendChar is Append with a single code unit.
func (s *String[C]) AppendChar(c C) {
	s.appendUnits([]C{c})
}

func (s *String[C]) appendUnits(units []C) {
	buf := slices.Clone(s.storage())
	limit := len(buf) - 1
	d := s.Len()
	for _, c := range units {
		if d == limit {
			break
		}
		buf[d] = c
		d++
	}
	if d < limit {
		buf[d] = 0
	}
	s.buf = buf
}

// Concat returns a followed by b in a String whose capacity is the power of
// two ceiling of a.Cap()+b.Cap(), so the result is never truncated.
func Concat[C Char](a, b String[C]) String[C] {
	out := widenTo(a, BitCeil(a.Cap()+b.Cap()))
	out.Append(b)
	return out
}

// ConcatView returns a followed by v. v counts as an array of len(v)+1
// elements when sizing the result.
func ConcatView[C Char](a String[C], v []C) String[C] {
	out := widenTo(a, BitCeil(a.Cap()+len(v)+1))
	out.AppendView(v)
	return out
}

// PrependView returns v followed by b.
func PrependView[C Char](v []C, b String[C]) String[C] {
	out := MustWithCapacity(BitCeil(len(v)+1+b.Cap()), v)
	out.Append(b)
	return out
}

// ConcatChar returns a followed by c.
func ConcatChar[C Char](a String[C], c C) String[C] {
	out := widenTo(a, BitCeil(1+a.Cap()))
	out.AppendChar(c)
	return out
}

// PrependChar returns c followed by b.
func PrependChar[C Char](c C, b String[C]) String[C] {
	out := MustWithCapacity(BitCeil(1+b.Cap()), []C{c})
	out.Append(b)
	return out
}

// widenTo is Widen for capacities already known to be valid.
func widenTo[C Char](s String[C], capacity int) String[C] {
	out, err := Widen(s, capacity)
	if err != nil {
		panic(err)
	}
	return out
}
