package literal

import (
	"math"
	"slices"
)

// NPos is returned by the search methods when nothing is found. As a position
// argument it means "until the end".
const NPos = math.MaxInt

// The functions below implement std::basic_string_view semantics over a
// logical view.

func viewFind[C Char](s, v []C, pos int) int {
	pos = max(pos, 0)
	if pos > len(s) || len(v) > len(s)-pos {
		return NPos
	}
	for i := pos; i <= len(s)-len(v); i++ {
		if slices.Equal(s[i:i+len(v)], v) {
			return i
		}
	}
	return NPos
}

func viewRFind[C Char](s, v []C, pos int) int {
	if len(v) > len(s) {
		return NPos
	}
	for i := min(pos, len(s)-len(v)); i >= 0; i-- {
		if slices.Equal(s[i:i+len(v)], v) {
			return i
		}
	}
	return NPos
}

func viewFindFirstOf[C Char](s, set []C, pos int) int {
	for i := max(pos, 0); i < len(s); i++ {
		if slices.Contains(set, s[i]) {
			return i
		}
	}
	return NPos
}

func viewFindLastOf[C Char](s, set []C, pos int) int {
	if len(s) == 0 || len(set) == 0 {
		return NPos
	}
	for i := min(pos, len(s)-1); i >= 0; i-- {
		if slices.Contains(set, s[i]) {
			return i
		}
	}
	return NPos
}

func viewFindFirstNotOf[C Char](s, set []C, pos int) int {
	for i := max(pos, 0); i < len(s); i++ {
		if !slices.Contains(set, s[i]) {
			return i
		}
	}
	return NPos
}

func viewFindLastNotOf[C Char](s, set []C, pos int) int {
	if len(s) == 0 {
		return NPos
	}
	for i := min(pos, len(s)-1); i >= 0; i-- {
		if !slices.Contains(set, s[i]) {
			return i
		}
	}
	return NPos
}

// viewSub is basic_string_view::substr: pos past the end is an error, count
// is clamped.
func viewSub[C Char](s []C, pos, count int) ([]C, error) {
	if pos < 0 || pos > len(s) {
		return nil, newRangeError("substr", pos, len(s))
	}
	if count < 0 || count > len(s)-pos {
		count = len(s) - pos
	}
	return s[pos : pos+count], nil
}

// cstr truncates an array at its first zero, the way a character array
// decays into a view.
func cstr[C Char](arr []C) []C {
	if i := slices.Index(arr, 0); i >= 0 {
		return arr[:i]
	}
	return arr
}
