package material

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/stretchr/testify/require"
)

func TestMaterialRoundTrip(t *testing.T) {
	c := endian.NewCodec(endian.GetBigEndianEngine())
	var header [unknownHeaderSize]byte

	var buf bytes.Buffer
	require.NoError(t, (Material{Texture: 11, TextureReflection: 22}).WriteTo(&buf, c, header))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, Material{Texture: 11, TextureReflection: 22}, got)
}

func TestMaterialStructureDestructureRoundTrip(t *testing.T) {
	m := Material{Texture: 5, TextureReflection: -5}
	got, err := Destructure(m.Structure())
	require.NoError(t, err)
	require.Equal(t, m, got)
}
