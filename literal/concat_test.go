package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendTruncates(t *testing.T) {
	e := FromString("")
	assert.Equal(t, 1, e.Cap())

	e.Append(FromString("b"))
	assert.Equal(t, "b", e.String())
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 1, e.Cap())

	e.Append(FromString("c"))
	assert.Equal(t, "b", e.String())

	x := MustWithCapacity(8, []byte("abc"))
	x.AppendView([]byte("defghij"))
	assert.Equal(t, "abcdefgh", x.String())
	assert.Equal(t, 8, x.Len())
}

func TestAppendCopiesOnWrite(t *testing.T) {
	orig := FromString("ab")
	cp := orig
	cp.AppendChar('c')
	assert.Equal(t, "ab", orig.String())
	assert.Equal(t, "abc", cp.String())
	assert.Equal(t, 4, cp.Cap())
}

func TestAppendOverPadding(t *testing.T) {
	s := FromString("ab\x00zz")
	s.AppendChar('c')
	assert.Equal(t, "abc", s.String())
	assert.Equal(t, []byte{'a', 'b', 'c', 0, 'z', 0, 0, 0, 0}, s.Data())
}

func TestConcat(t *testing.T) {
	a := FromString("Hello")
	b := FromString(", World")
	assert.Equal(t, 8, a.Cap())
	assert.Equal(t, 8, b.Cap())

	ab := Concat(a, b)
	assert.Equal(t, "Hello, World", ab.String())
	assert.Equal(t, 16, ab.Cap())
	assert.Equal(t, "Hello", a.String())

	cv := ConcatView(a, []byte(", World"))
	assert.Equal(t, "Hello, World", cv.String())
	assert.Equal(t, 16, cv.Cap())

	pv := PrependView([]byte("Hello"), b)
	assert.Equal(t, "Hello, World", pv.String())
	assert.Equal(t, 16, pv.Cap())

	cc := ConcatChar(FromString("ab"), 'c')
	assert.Equal(t, "abc", cc.String())
	assert.Equal(t, 8, cc.Cap())

	pc := PrependChar('x', FromString("yz"))
	assert.Equal(t, "xyz", pc.String())
	assert.Equal(t, 8, pc.Cap())
}

func TestConcatCapacityLaw(t *testing.T) {
	texts := []string{"", "a", "ab", "abc", "Test String", "array constructed"}
	for _, x := range texts {
		for _, y := range texts {
			a, b := FromString(x), FromString(y)
			got := Concat(a, b)
			assert.Equal(t, BitCeil(a.Cap()+b.Cap()), got.Cap(), "%q + %q", x, y)
			assert.Equal(t, x+y, got.String(), "%q + %q", x, y)
			assert.Equal(t, a.Len()+b.Len(), got.Len())
		}
	}
}

func TestConcatMixedCapacity(t *testing.T) {
	a := MustWithCapacity(32, []byte("abc"))
	b := FromString("def")
	got := Concat(a, b)
	assert.Equal(t, 64, got.Cap())
	assert.Equal(t, "abcdef", got.String())

	got = Concat(b, a)
	assert.Equal(t, 64, got.Cap())
	assert.Equal(t, "defabc", got.String())
}
