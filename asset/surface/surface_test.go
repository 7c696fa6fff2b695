package surface

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/vecmath"
	"github.com/stretchr/testify/require"
)

// writeSurfaceObject builds a single-patch SurfaceObject on the wire: a flat
// unit square, whose four boundary curves are straight lines (tangent
// handles coincide with their endpoints).
func writeSurfaceObject(t *testing.T, c *endian.Codec) []byte {
	t.Helper()
	return writeSurfaceObjectWithCurveOrder(t, c, 0)
}

func writeSurfaceObjectWithCurveOrder(t *testing.T, c *endian.Codec, curveOrder uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.WriteBytes(&buf, make([]byte, 96)))
	require.NoError(t, c.WriteU16(&buf, 0)) // unknown2
	require.NoError(t, c.WriteU16(&buf, 0)) // unknown3

	vertices := []vecmath.Vector3{
		{X: 0, Y: 0, Z: 0}, // 0: bottom-left
		{X: 1, Y: 0, Z: 0}, // 1: bottom-right
		{X: 1, Y: 1, Z: 0}, // 2: top-right
		{X: 0, Y: 1, Z: 0}, // 3: top-left
	}
	require.NoError(t, c.WriteU32(&buf, uint32(len(vertices))))
	for _, v := range vertices {
		require.NoError(t, vecmath.WriteVector3(&buf, c, v))
	}
	require.NoError(t, c.WriteU32(&buf, 0)) // num_unk0
	require.NoError(t, c.WriteU32(&buf, 0)) // num_unk1

	require.NoError(t, c.WriteU32(&buf, 1)) // num_surfaces
	texcoords := [4]vecmath.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	for _, tc := range texcoords {
		require.NoError(t, vecmath.WriteVector2(&buf, c, tc))
	}
	require.NoError(t, c.WriteBytes(&buf, make([]byte, 12*4)))
	for _, id := range [4]uint16{0, 0, 0, 0} {
		require.NoError(t, c.WriteU16(&buf, id))
	}
	for _, id := range [4]uint16{0, 1, 2, 3} {
		require.NoError(t, c.WriteU16(&buf, id))
	}
	require.NoError(t, c.WriteU32(&buf, curveOrder))
	require.NoError(t, c.WriteBytes(&buf, make([]byte, 32+4)))
	require.NoError(t, c.WriteI32(&buf, 42)) // material_id

	require.NoError(t, c.WriteU32(&buf, 4)) // num_curves
	// curve 0: bottom edge 0->1
	require.NoError(t, c.WriteU16(&buf, 0))
	require.NoError(t, c.WriteU16(&buf, 1))
	require.NoError(t, c.WriteU16(&buf, 0))
	require.NoError(t, c.WriteU16(&buf, 1))
	// curve 1: right edge 1->2
	require.NoError(t, c.WriteU16(&buf, 1))
	require.NoError(t, c.WriteU16(&buf, 2))
	require.NoError(t, c.WriteU16(&buf, 1))
	require.NoError(t, c.WriteU16(&buf, 2))
	// curve 2: top edge 3->2
	require.NoError(t, c.WriteU16(&buf, 3))
	require.NoError(t, c.WriteU16(&buf, 2))
	require.NoError(t, c.WriteU16(&buf, 3))
	require.NoError(t, c.WriteU16(&buf, 2))
	// curve 3: left edge 0->3
	require.NoError(t, c.WriteU16(&buf, 0))
	require.NoError(t, c.WriteU16(&buf, 3))
	require.NoError(t, c.WriteU16(&buf, 0))
	require.NoError(t, c.WriteU16(&buf, 3))

	normals := []vecmath.Vector3{{X: 0, Y: 0, Z: 1}}
	require.NoError(t, c.WriteU32(&buf, uint32(len(normals))))
	for _, n := range normals {
		require.NoError(t, vecmath.WriteVector3(&buf, c, n))
	}

	return buf.Bytes()
}

func TestSurfaceObjectReadFrom(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	data := writeSurfaceObject(t, c)

	obj, err := ReadFrom(bytes.NewReader(data), c)
	require.NoError(t, err)
	require.Len(t, obj.Vertices, 4)
	require.Len(t, obj.Surfaces, 1)
	require.Len(t, obj.Curves, 4)
	require.Equal(t, int32(42), obj.Surfaces[0].MaterialID)
}

func TestSurfaceObjectTessellateFlatPatchIsPlanar(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	data := writeSurfaceObject(t, c)
	obj, err := ReadFrom(bytes.NewReader(data), c)
	require.NoError(t, err)

	quads := obj.Tessellate(4)
	require.Len(t, quads, 16)
	for _, q := range quads {
		for _, p := range q.Points {
			require.InDelta(t, 0, p.Vertex.Z, 1e-5)
			require.GreaterOrEqual(t, p.Vertex.X, float32(-1e-5))
			require.LessOrEqual(t, p.Vertex.X, float32(1+1e-5))
			require.GreaterOrEqual(t, p.Vertex.Y, float32(-1e-5))
			require.LessOrEqual(t, p.Vertex.Y, float32(1+1e-5))
		}
	}
}

func TestSurfaceObjectReadFromRejectsCurveOrderHighBits(t *testing.T) {
	c := endian.NewCodec(endian.GetLittleEndianEngine())
	data := writeSurfaceObjectWithCurveOrder(t, c, 1<<5)

	_, err := ReadFrom(bytes.NewReader(data), c)
	require.Error(t, err)
}
