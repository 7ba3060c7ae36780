package registry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epixu/literal-t/internal/testutil"
	"github.com/Epixu/literal-t/literal"
)

func TestMaterialize_RoundTrip(t *testing.T) {
	r := newTestRegistry(t)

	extra := []testutil.Fixture{
		{Name: "utf16", Literal: literal.FromUTF16("héllo😀")},
		{Name: "lone_surrogate", Literal: literal.From([]literal.Char16{0xD800, 'x'})},
		{Name: "char8", Literal: literal.Parse[literal.Char8]("u8")},
		{Name: "char32", Literal: literal.Parse[literal.Char32]("u32")},
		{Name: "int", Literal: literal.Of(-42)},
		{Name: "uint64", Literal: literal.Of(uint64(1) << 60)},
		{Name: "bool", Literal: literal.Of(true)},
		{Name: "text", Literal: literal.Of("text")},
		{Name: "positive_infinity", Literal: literal.Of(math.Inf(1))},
		{Name: "negative_infinity", Literal: literal.Of(float32(math.Inf(-1)))},
	}

	for _, f := range append(testutil.Fixtures(), extra...) {
		t.Run(f.Name, func(t *testing.T) {
			e, _, err := r.Register(f.Literal)
			require.NoError(t, err)

			got, err := Materialize(e)
			require.NoError(t, err)
			assert.True(t, literal.Equal(f.Literal, got))
			assert.Equal(t, f.Literal.Cap(), got.Cap())
			assert.Equal(t, f.Literal.TypeName(), got.TypeName())
			assert.Equal(t, f.Literal.Kind(), got.Kind())
		})
	}
}

func TestMaterialize_NaN(t *testing.T) {
	r := newTestRegistry(t)

	e, _, err := r.Register(literal.Of(math.NaN()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"value","type":"float64","value":"NaN"}`, string(e.Content))

	got, err := Materialize(e)
	require.NoError(t, err)
	require.IsType(t, literal.Value[float64]{}, got)
	assert.True(t, math.IsNaN(got.(literal.Value[float64]).Get()))
}

func TestMaterialize_Unsupported(t *testing.T) {
	r := newTestRegistry(t)
	type celsius float64

	e, _, err := r.Register(literal.Of(celsius(21.5)))
	require.NoError(t, err)

	_, err = Materialize(e)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestMaterialize_InvalidFloat(t *testing.T) {
	e := Entry{
		ID:      "bad",
		Kind:    literal.KindValue,
		Key:     Key{Type: "float64"},
		Content: []byte(`{"kind":"value","type":"float64","value":"Infinity"}`),
	}
	_, err := Materialize(e)
	assert.Error(t, err)
}
