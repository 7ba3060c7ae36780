package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringConstruction(t *testing.T) {
	s := FromString("Test String")
	assert.Equal(t, 11, s.Len())
	assert.Equal(t, 16, s.Cap())
	assert.False(t, s.Empty())
	assert.True(t, s.Bool())
	assert.Equal(t, "Test String", s.String())
	assert.Equal(t, KindString, s.Kind())

	arrayConstructed := FromString("array constructed")
	assert.Equal(t, 17, arrayConstructed.Len())
	assert.Equal(t, 32, arrayConstructed.Cap())
	assert.True(t, arrayConstructed.Bool())
}

func TestStringZeroValue(t *testing.T) {
	var z String[byte]
	assert.Equal(t, 1, z.Cap())
	assert.Equal(t, 0, z.Len())
	assert.True(t, z.Empty())
	assert.False(t, z.Bool())
	assert.Equal(t, byte(0), z.Front())
	assert.Equal(t, []byte{0, 0}, z.Data())
	assert.True(t, Equal(z, New()))
	assert.True(t, Equal(z, FromString("")))

	z.AppendChar('q')
	assert.Equal(t, "q", z.String())
	assert.Equal(t, 1, z.Cap())
}

func TestStringEmbeddedTerminator(t *testing.T) {
	s := FromString("ab\x00cd")
	assert.Equal(t, 8, s.Cap())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "ab", s.String())
	// Padding past the terminator is kept in storage.
	assert.Equal(t, []byte{'a', 'b', 0, 'c', 'd', 0, 0, 0, 0}, s.Data())
}

func TestWithCapacity(t *testing.T) {
	s, err := WithCapacity(4, []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Cap())
	assert.Equal(t, "abc", s.String())

	_, err = WithCapacity(3, []byte("abc"))
	require.Error(t, err)
	assert.True(t, IsContractError(err))

	_, err = WithCapacity(2, []byte("abc"))
	var le *Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeOverflow, le.Code)

	_, err = WithCapacity(0, []byte{})
	assert.Error(t, err)

	assert.Panics(t, func() { MustWithCapacity(6, []byte("x")) })
}

func TestWidenAndResize(t *testing.T) {
	abc := FromString("abc")

	wide, err := Widen(abc, 32)
	require.NoError(t, err)
	assert.Equal(t, 32, wide.Cap())
	assert.Equal(t, "abc", wide.String())
	assert.True(t, Equal(abc, wide))

	_, err = Widen(abc, 2)
	assert.Error(t, err)
	_, err = Widen(abc, 12)
	assert.True(t, IsContractError(err))

	narrow, err := abc.Resize(2)
	require.NoError(t, err)
	assert.Equal(t, 2, narrow.Cap())
	assert.Equal(t, "ab", narrow.String())

	_, err = abc.Resize(5)
	assert.Error(t, err)
}

func TestAssign(t *testing.T) {
	local := fixedString

	arr := make([]byte, 16)
	copy(arr, "Test String")
	require.NoError(t, local.Assign(arr))
	assert.True(t, Equal(local, fixedString))

	err := local.Assign([]byte("Test String"))
	var le *Error
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ErrCodeSizeMismatch, le.Code)
	assert.Equal(t, 11, le.Index)
	assert.Equal(t, 16, le.Limit)

	require.NoError(t, local.Set([]byte("Other")))
	assert.Equal(t, "Other", local.String())
	assert.Equal(t, 16, local.Cap())
	assert.Equal(t, "Test String", fixedString.String())

	assert.Error(t, local.Set(make([]byte, 17)))
}

func TestSwap(t *testing.T) {
	a := FromString("left")
	b := FromString("right side")
	a.Swap(&b)
	assert.Equal(t, "right side", a.String())
	assert.Equal(t, 16, a.Cap())
	assert.Equal(t, "left", b.String())
	assert.Equal(t, 8, b.Cap())
}

func TestElementAccess(t *testing.T) {
	s := FromString("Test String")

	assert.Equal(t, byte('T'), s.Index(0))
	assert.Equal(t, byte('g'), s.Index(10))
	assert.Equal(t, byte('T'), s.Front())
	assert.Equal(t, byte('g'), s.Back())

	c, err := s.At(5)
	require.NoError(t, err)
	assert.Equal(t, byte('S'), c)

	for _, i := range []int{-1, 11, 12, 100} {
		_, err := s.At(i)
		assert.True(t, IsRangeError(err), "At(%d)", i)
	}

	if SafeMode {
		assert.Panics(t, func() { s.Index(12) })
		assert.Panics(t, func() { s.Index(11) })
	} else {
		assert.Equal(t, byte(0), s.Index(12))
	}
}

func TestSetAt(t *testing.T) {
	s := FromString("Test")
	cp := s

	require.NoError(t, cp.SetAt(0, 'B'))
	assert.Equal(t, "Best", cp.String())
	assert.Equal(t, "Test", s.String())

	assert.True(t, IsRangeError(cp.SetAt(4, 'x')))

	require.NoError(t, cp.SetAt(2, 0))
	assert.Equal(t, "Be", cp.String())
	assert.Equal(t, 2, cp.Len())
}

func TestRawAccessors(t *testing.T) {
	s := FromString("Test String")

	data := s.Data()
	assert.Len(t, data, 17)
	assert.Equal(t, byte(0), data[16])

	assert.Equal(t, append([]byte("Test String"), 0), s.CStr())
	assert.Equal(t, []byte("Test String"), s.View())

	// Accessors return copies.
	data[0] = 'X'
	view := s.View()
	view[1] = 'X'
	assert.Equal(t, "Test String", s.String())
}

func TestIteration(t *testing.T) {
	var forward []byte
	for i, c := range fixedString.All() {
		assert.Equal(t, len(forward), i)
		forward = append(forward, c)
	}
	assert.Equal(t, "Test String", string(forward))

	var backward []byte
	for _, c := range fixedString.Backward() {
		backward = append(backward, c)
	}
	assert.Equal(t, "gnirtS tseT", string(backward))

	var prefix []byte
	for _, c := range fixedString.All() {
		if len(prefix) == 4 {
			break
		}
		prefix = append(prefix, c)
	}
	assert.Equal(t, "Test", string(prefix))

	count := 0
	for range emptyString4.All() {
		count++
	}
	assert.Zero(t, count)
}

func TestSubstr(t *testing.T) {
	s := FromString("Hello, World")

	sub := s.Substr(7, 5)
	assert.Equal(t, "World", sub.String())
	assert.Equal(t, s.Cap(), sub.Cap())

	assert.Equal(t, "World", s.Substr(7, NPos).String())
	assert.Equal(t, "lo, World", s.Substr(3, 100).String())
	assert.True(t, s.Substr(12, 1).Empty())
	assert.True(t, s.Substr(40, 1).Empty())
	assert.True(t, Equal(s.Substr(0, s.Len()), s))
}

func TestCharacterKinds(t *testing.T) {
	text := "héllo😀"

	u16 := FromUTF16(text)
	assert.Equal(t, 7, u16.Len())
	assert.Equal(t, 8, u16.Cap())
	assert.Equal(t, text, u16.String())

	wide := FromRunes(text)
	assert.Equal(t, 6, wide.Len())
	assert.Equal(t, 8, wide.Cap())
	assert.Equal(t, text, wide.String())

	u8 := Parse[Char8](text)
	assert.Equal(t, len(text), u8.Len())
	assert.Equal(t, text, u8.String())

	u32 := Parse[Char32](text)
	assert.Equal(t, 6, u32.Len())
	assert.Equal(t, text, u32.String())

	assert.True(t, Equal(FromUTF16("abc"), FromString("abc")))
	assert.True(t, Equal(wide, u32))
	assert.False(t, Equal(FromUTF16("😀"), FromRunes("😀")))
}

func TestValueAccessors(t *testing.T) {
	v := Of(5)
	assert.Equal(t, 5, v.Get())
	assert.Equal(t, 5, v.Index(99))
	assert.Equal(t, 5, v.Front())
	assert.Equal(t, 0, v.Cap())
	assert.Equal(t, 0, v.Len())
	assert.True(t, v.Empty())
	assert.True(t, v.Bool())
	assert.Equal(t, "5", v.String())
	assert.Equal(t, "int", v.TypeName())

	assert.False(t, Of(0).Bool())
	assert.False(t, Of(false).Bool())
	assert.False(t, New().Bool())
	assert.Equal(t, KindUndefined, New().Kind())
	assert.Equal(t, "", New().String())
	assert.Equal(t, "5.5", fixedValue.String())

	assert.True(t, v.EqualArray([]int{5, 6, 7}))
	assert.False(t, v.EqualArray([]int{6, 5}))
	assert.False(t, v.EqualArray(nil))
}
