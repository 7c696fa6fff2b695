package rotshape

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/vecmath"
	"github.com/stretchr/testify/require"
)

func TestRotShapeRoundTrip(t *testing.T) {
	c := endian.NewCodec(endian.GetBigEndianEngine())
	s := RotShape{
		Unk5:           vecmath.Vector3{X: 1, Y: 2, Z: 3},
		Unk7:           4.5,
		MaterialAnimID: 9,
		BillboardMode:  BillboardFull,
	}
	s.Size[0] = vecmath.Vector3{X: 1}
	s.Size[1] = vecmath.Vector3{X: 2}
	for i := range s.Texcoords {
		s.Texcoords[i] = vecmath.Vector2{X: float32(i)}
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestRotShapeRejectsInvalidBillboardMode(t *testing.T) {
	c := endian.NewCodec(endian.GetBigEndianEngine())
	s := RotShape{BillboardMode: BillboardYAxis}

	var buf bytes.Buffer
	require.NoError(t, s.WriteTo(&buf, c))
	raw := buf.Bytes()
	raw[len(raw)-1] = 0xFF // corrupt billboard_mode low byte

	_, err := ReadFrom(bytes.NewReader(raw), c)
	require.Error(t, err)
}
