package gameobj

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/asset/node"
	"github.com/brinepack/totemkit/endian"
	"github.com/stretchr/testify/require"
)

func TestGameObjRoundTrip(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	g := GameObj{
		Prefabs: []Prefab{
			{
				Subtype1: 42,
				Subtype2: 42,
				Node: node.Node{
					ParentID: -1,
					Data:     node.NodeData{Tag: node.TagEmpty},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, g.WriteTo(&buf, c))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), c)
	require.NoError(t, err)
	require.Equal(t, g, got)
}
