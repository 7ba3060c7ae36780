package literal

// Find returns the first position at or after pos where v occurs.
func (s String[C]) Find(v []C, pos int) int {
	return viewFind(s.view(), v, pos)
}

// FindChar returns the first position at or after pos holding c.
func (s String[C]) FindChar(c C, pos int) int {
	return viewFind(s.view(), []C{c}, pos)
}

// FindLiteral is Find with a literal needle. A needle with a larger capacity
// than s is never searched for.
func (s String[C]) FindLiteral(needle String[C], pos int) int {
	if needle.Cap() > s.Cap() {
		return NPos
	}
	return s.Find(needle.view(), pos)
}

// RFind returns the last position at or before pos where v occurs.
func (s String[C]) RFind(v []C, pos int) int {
	return viewRFind(s.view(), v, pos)
}

// RFindChar returns the last position at or before pos holding c.
func (s String[C]) RFindChar(c C, pos int) int {
	return viewRFind(s.view(), []C{c}, pos)
}

// RFindLiteral is RFind with a literal needle.
func (s String[C]) RFindLiteral(needle String[C], pos int) int {
	if needle.Cap() > s.Cap() {
		return NPos
	}
	return s.RFind(needle.view(), pos)
}

// FindFirstOf returns the first position at or after pos holding any code
// unit of set.
func (s String[C]) FindFirstOf(set []C, pos int) int {
	return viewFindFirstOf(s.view(), set, pos)
}

// FindFirstOfChar is FindFirstOf with a single-unit set.
func (s String[C]) FindFirstOfChar(c C, pos int) int {
	return viewFindFirstOf(s.view(), []C{c}, pos)
}

// FindFirstOfLiteral is FindFirstOf with a literal set. A set with a larger
// capacity than s yields NPos.
func (s String[C]) FindFirstOfLiteral(set String[C], pos int) int {
	if set.Cap() > s.Cap() {
		return NPos
	}
	return s.FindFirstOf(set.view(), pos)
}

// FindLastOf returns the last position at or before pos holding any code
// unit of set.
func (s String[C]) FindLastOf(set []C, pos int) int {
	return viewFindLastOf(s.view(), set, pos)
}

// FindLastOfChar is FindLastOf with a single-unit set.
func (s String[C]) FindLastOfChar(c C, pos int) int {
	return viewFindLastOf(s.view(), []C{c}, pos)
}

// FindLastOfLiteral is FindLastOf with a literal set. A set with a larger
// capacity than s yields NPos.
func (s String[C]) FindLastOfLiteral(set String[C], pos int) int {
	if set.Cap() > s.Cap() {
		return NPos
	}
	return s.FindLastOf(set.view(), pos)
}

// FindFirstNotOf returns the first position at or after pos holding a code
// unit that is not in set.
func (s String[C]) FindFirstNotOf(set []C, pos int) int {
	return viewFindFirstNotOf(s.view(), set, pos)
}

// FindFirstNotOfChar is FindFirstNotOf with a single-unit set.
func (s String[C]) FindFirstNotOfChar(c C, pos int) int {
	return viewFindFirstNotOf(s.view(), []C{c}, pos)
}

// FindFirstNotOfLiteral is FindFirstNotOf with a literal set. A set with a larger
// capacity than s yields NPos.
func (s String[C]) FindFirstNotOfLiteral(set String[C], pos int) int {
	if set.Cap() > s.Cap() {
		return NPos
	}
	return s.FindFirstNotOf(set.view(), pos)
}

// FindLastNotOf returns the last position at or before pos holding a code
// unit that is not in set.
func (s String[C]) FindLastNotOf(set []C, pos int) int {
	return viewFindLastNotOf(s.view(), set, pos)
}

// FindLastNotOfChar is FindLastNotOf with a single-unit set.
func (s String[C]) FindLastNotOfChar(c C, pos int) int {
	return viewFindLastNotOf(s.view(), []C{c}, pos)
}

// FindLastNotOfLiteral is FindLastNotOf with a literal set. A set with a larger
// capacity than s yields NPos.
func (s String[C]) FindLastNotOfLiteral(set String[C], pos int) int {
	if set.Cap() > s.Cap() {
		return NPos
	}
	return s.FindLastNotOf(set.view(), pos)
}

// StartsWith reports whether the logical content begins with v.
func (s String[C]) StartsWith(v []C) bool {
	sv := s.view()
	return len(v) <= len(sv) && viewCompare(sv[:len(v)], v) == 0
}

// StartsWithChar reports whether the first code unit is c.
func (s String[C]) StartsWithChar(c C) bool {
	return !s.Empty() && s.Front() == c
}

// EndsWith reports whether the logical content ends with v.
func (s String[C]) EndsWith(v []C) bool {
	sv := s.view()
	return len(v) <= len(sv) && viewCompare(sv[len(sv)-len(v):], v) == 0
}

// EndsWithChar reports whether the last logical code unit is c.
func (s String[C]) EndsWithChar(c C) bool {
	return !s.Empty() && s.Back() == c
}

// Contains reports whether v occurs in the logical content.
func (s String[C]) Contains(v []C) bool {
	return s.Find(v, 0) != NPos
}

// ContainsChar reports whether c occurs in the logical content.
func (s String[C]) ContainsChar(c C) bool {
	return s.FindChar(c, 0) != NPos
}
