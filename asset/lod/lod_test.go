package lod

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/vecmath"
	"github.com/stretchr/testify/require"
)

func TestLodRoundTripNoSounds(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	l := Lod{
		Unk1:    &[4]float32{1, 2, 3, 4},
		Unk4:    &vecmath.Mat4x4{},
		Unk15:   &UnkStruct{Unk1: [4]float32{1, 1, 1, 1}, Unk2: 9},
		Unk18:   [2]float32{5, 6},
		Unk19:   3,
		SkinIDs: []int32{1, 2},
		Anims:   []AnimEntry{{Symbol: 1, AnimationID: 10}},
	}

	var buf bytes.Buffer
	require.NoError(t, l.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, l, got)
	require.Nil(t, got.Sounds)
}

func TestLodRoundTripWithSounds(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	l := Lod{
		Unk18:   [2]float32{1, 2},
		SkinIDs: []int32{},
		Anims:   []AnimEntry{},
		Sounds:  []SoundEntry{{Symbol: 4, SoundID: 55}},
	}
	l.Transform.ItemSubtype = 2

	var buf bytes.Buffer
	require.NoError(t, l.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, l, got)
}
