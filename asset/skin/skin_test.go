package skin

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/stretchr/testify/require"
)

func TestSkinRoundTripNoAnims(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	s := Skin{
		ItemFlags: 1,
		MeshIDs:   []int32{1, 2},
		VertexGroups: []VertexGroup{
			{
				GroupID: 5,
				Sections: []VertexGroupSection{
					{
						MeshIndex: 0,
						Vertices:  []VertexWeight{{ID: 1, Weight: 0.5}},
						Normals:   []VertexWeight{{ID: 2, Weight: 0.25}},
					},
				},
			},
		},
		Unknown: []UnknownEntry{
			{Vertices: []uint32{1, 2}, Normals: []uint32{3}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestSkinRoundTripWithAnims(t *testing.T) {
	c := endian.NewCodec(endian.GetBigEndianEngine())
	s := Skin{
		MeshIDs:      []int32{},
		VertexGroups: []VertexGroup{},
		AnimsPresent: true,
		Anims:        []AnimEntry{{Symbol: 1, AnimID: 2}},
		Unknown:      []UnknownEntry{},
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, s, got)
}
