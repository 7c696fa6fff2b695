package variant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntInfoRanges(t *testing.T) {
	lo, hi := IntInfo{Kind: IntU8}.Range()
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(255), hi)

	lo, hi = IntInfo{Kind: IntCustom, Min: -5, Max: 5}.Range()
	require.Equal(t, int64(-5), lo)
	require.Equal(t, int64(5), hi)

	lo, hi = IntInfo{Kind: IntFlags, Names: []string{"a", "b", "c"}}.Range()
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(7), hi)

	lo, hi = IntInfo{Kind: IntEnum, Names: []string{"a", "b"}}.Range()
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(1), hi)
}

func TestStructPathGet(t *testing.T) {
	leaf := NewFloat(3.5)
	arr := NewArray([]*Variant{leaf}, func() *Variant { return NewFloat(0) }, true)
	root := NewStruct([]StructField{
		{Name: "values", Value: arr},
	})

	got, ok := root.Get(Member("values"), Index(0))
	require.True(t, ok)
	require.Same(t, leaf, got)

	_, ok = root.Get(Member("missing"))
	require.False(t, ok)

	_, ok = root.Get(Member("values"), Index(5))
	require.False(t, ok)
}

func TestChoiceVariant(t *testing.T) {
	alt := map[int32]ChoiceAlternative{
		1: {Name: "Mesh", DefaultGen: func() *Variant { return NewInteger(0, IntInfo{Kind: IntI32}) }},
	}
	choice := NewChoice(1, NewInteger(42, IntInfo{Kind: IntI32}), alt)

	data, ok := choice.GetChoice()
	require.True(t, ok)
	require.Equal(t, int32(1), data.Tag)
	v, ok := data.Value.GetInteger()
	require.True(t, ok)
	require.Equal(t, int64(42), v)
}

func TestOptionalVariant(t *testing.T) {
	opt := NewOptional(nil, func() *Variant { return NewFloat(1.0) })
	data, ok := opt.GetOptional()
	require.True(t, ok)
	require.Nil(t, data.Value)
	require.Equal(t, float32(1.0), data.DefaultGen().Float)
}
