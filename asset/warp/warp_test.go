package warp

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/vecmath"
	"github.com/stretchr/testify/require"
)

func TestWarpRoundTrip(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	w := Warp{
		Size:        2.5,
		MaterialIDs: [6]int32{1, 2, 3, 4, 5, 6},
	}
	for i := range w.Vertices {
		w.Vertices[i] = vecmath.Vector3{X: float32(i), Y: float32(i) * 2, Z: float32(i) * 3}
	}
	for i := range w.Texcoords {
		w.Texcoords[i] = vecmath.Vector2{X: float32(i), Y: float32(i) + 1}
	}

	var buf bytes.Buffer
	require.NoError(t, w.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, w, got)
}
