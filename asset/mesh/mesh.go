// Package mesh decodes the Mesh asset: a triangle mesh stored as a set of
// triangle strips rather than a flat triangle list, each strip parameterized
// by an alternating winding order so two directly adjacent triangles never
// share the same handedness.
package mesh

import (
	"io"
	"sort"

	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// Strip is one triangle strip: a list of vertex indices plus the material
// it's drawn with and the winding order its first triangle uses.
type Strip struct {
	VertexIDs []uint16
	TriOrder  uint32
	Material  uint32
}

// ElementData pairs a texcoord and normal index, parallel to a Strip's
// vertex id at the same position.
type ElementData struct {
	TexcoordID uint16
	NormalID   uint16
}

// StripData is a strip plus the data that rides alongside it: an optional
// group id (present only when the mesh's item_subtype is 4) and an optional
// per-vertex texcoord/normal index list (absent on PS2-format meshes).
type StripData struct {
	Strip Strip
	Group *int32
	Ext   *[]ElementData
}

// Footer1 is an unidentified bounding-sphere-shaped footer record.
type Footer1 struct {
	Pos    vecmath.Vector3
	Radius float32
}

// Footer2 is an unidentified per-mesh transform footer record; 16 bytes
// immediately following the matrix are junk and are discarded.
type Footer2 struct {
	Transform vecmath.Mat4x4
}

// Footer3 is an unidentified footer record combining four floats, a normal,
// a junk u32, and a trailing float.
type Footer3 struct {
	Unk1   [4]float32
	Normal vecmath.Vector3
	Junk   uint32
	Unk2   float32
}

// Mesh is a full triangle mesh: shared vertex/texcoord/normal pools, a list
// of strips indexing into them, the materials the strips reference, three
// unidentified footer tables, and the order in which strips should be
// packed back together for rendering.
type Mesh struct {
	Transform  vecmath.TransformationHeader
	Vertices   []vecmath.Vector3
	Texcoords  []vecmath.Vector2
	Normals    []vecmath.Vector3
	Strips     []StripData
	Materials  []int32
	Footer1s   []Footer1
	Footer2s   []Footer2
	Footer3s   []Footer3
	StripOrder []uint32
}

func readStrip(r io.Reader, c *endian.Codec) (Strip, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return Strip{}, err
	}
	vertexIDs := make([]uint16, count)
	if err = c.ReadU16Into(r, vertexIDs); err != nil {
		return Strip{}, err
	}
	material, err := c.ReadU32(r)
	if err != nil {
		return Strip{}, err
	}
	triOrder, err := c.ReadU32(r)
	if err != nil {
		return Strip{}, err
	}
	return Strip{VertexIDs: vertexIDs, TriOrder: triOrder, Material: material}, nil
}

func writeStrip(w io.Writer, c *endian.Codec, s Strip) error {
	if err := c.WriteU32(w, uint32(len(s.VertexIDs))); err != nil {
		return err
	}
	for _, id := range s.VertexIDs {
		if err := c.WriteU16(w, id); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, s.Material); err != nil {
		return err
	}
	return c.WriteU32(w, s.TriOrder)
}

func readStripExt(r io.Reader, c *endian.Codec) ([]ElementData, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]ElementData, count)
	for i := range out {
		if out[i].TexcoordID, err = c.ReadU16(r); err != nil {
			return nil, err
		}
		if out[i].NormalID, err = c.ReadU16(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeStripExt(w io.Writer, c *endian.Codec, ext []ElementData) error {
	if err := c.WriteU32(w, uint32(len(ext))); err != nil {
		return err
	}
	for _, e := range ext {
		if err := c.WriteU16(w, e.TexcoordID); err != nil {
			return err
		}
		if err := c.WriteU16(w, e.NormalID); err != nil {
			return err
		}
	}
	return nil
}

// TriIndex is a (vertex, texcoord, normal) index triple for one triangle
// corner.
type TriIndex struct {
	Vertex   uint16
	Texcoord uint16
	Normal   uint16
}

// Triangles expands a strip into its constituent triangles, alternating the
// winding order every step so adjacent triangles share an edge with opposite
// handedness. TriOrder is 1 or 2 and selects which of the two fixed index
// permutations the strip starts on.
func (s StripData) Triangles() [][3]TriIndex {
	if s.Ext == nil || len(s.Strip.VertexIDs) < 3 {
		return nil
	}
	elements := *s.Ext
	a := s.Strip.TriOrder
	b := 3 - a
	lists := [2][3]uint32{{0, a, b}, {0, b, a}}
	n := len(s.Strip.VertexIDs) - 2
	out := make([][3]TriIndex, 0, n)
	for i := 0; i < n; i++ {
		cycle := lists[i%2]
		vids := s.Strip.VertexIDs[i : i+3]
		els := elements[i : i+3]
		var tri [3]TriIndex
		for j, idx := range cycle {
			tri[j] = TriIndex{
				Vertex:   vids[idx],
				Texcoord: els[idx].TexcoordID,
				Normal:   els[idx].NormalID,
			}
		}
		out = append(out, tri)
	}
	return out
}

// TriangleSurface is a run of triangles drawn with the same material.
type TriangleSurface struct {
	MaterialIndex uint32
	Triangles     [][3]TriIndex
}

// TriangleSurfaces expands every strip into triangles, groups them by
// material index, and emits one TriangleSurface per distinct material in
// ascending material-index order.
func (m Mesh) TriangleSurfaces() []TriangleSurface {
	type stripTris struct {
		material uint32
		tris     [][3]TriIndex
	}
	values := make([]stripTris, len(m.Strips))
	for i, s := range m.Strips {
		values[i] = stripTris{material: s.Strip.Material, tris: s.Triangles()}
	}
	sort.SliceStable(values, func(i, j int) bool { return values[i].material < values[j].material })

	var out []TriangleSurface
	for _, v := range values {
		if len(out) == 0 || out[len(out)-1].MaterialIndex != v.material {
			out = append(out, TriangleSurface{MaterialIndex: v.material})
		}
		out[len(out)-1].Triangles = append(out[len(out)-1].Triangles, v.tris...)
	}
	return out
}

// ReadFrom decodes a Mesh. Group ids are present only when Transform's
// ItemSubtype is 4 (0 means absent); an ItemSubtype outside {0, 4} is
// rejected. Per-vertex texcoord/normal extension data is present only when
// its count matches the strip count exactly.
func ReadFrom(r io.Reader, c *endian.Codec) (Mesh, error) {
	var m Mesh
	var err error
	if m.Transform, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return Mesh{}, err
	}

	numVertices, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Vertices = make([]vecmath.Vector3, numVertices)
	for i := range m.Vertices {
		if m.Vertices[i], err = vecmath.ReadVector3(r, c); err != nil {
			return Mesh{}, err
		}
	}

	numTexcoords, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Texcoords = make([]vecmath.Vector2, numTexcoords)
	for i := range m.Texcoords {
		if m.Texcoords[i], err = vecmath.ReadVector2(r, c); err != nil {
			return Mesh{}, err
		}
	}

	numNormals, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Normals = make([]vecmath.Vector3, numNormals)
	for i := range m.Normals {
		if m.Normals[i], err = vecmath.ReadVector3(r, c); err != nil {
			return Mesh{}, err
		}
	}

	numStrips, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	strips := make([]Strip, numStrips)
	for i := range strips {
		if strips[i], err = readStrip(r, c); err != nil {
			return Mesh{}, err
		}
	}

	var groups []int32
	switch m.Transform.ItemSubtype {
	case 4:
		groups = make([]int32, numStrips)
		if err = c.ReadI32Into(r, groups); err != nil {
			return Mesh{}, err
		}
	case 0:
		groups = nil
	default:
		return Mesh{}, chumerr.New(chumerr.KindInvalidEnum, "Mesh", "item_subtype", nil)
	}

	numStripsExt, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	var stripsExt [][]ElementData
	switch {
	case numStripsExt == 0:
		stripsExt = nil
	case numStripsExt == numStrips:
		stripsExt = make([][]ElementData, numStripsExt)
		for i := range stripsExt {
			if stripsExt[i], err = readStripExt(r, c); err != nil {
				return Mesh{}, err
			}
		}
	default:
		return Mesh{}, chumerr.New(chumerr.KindInvalidValue, "Mesh", "num_strips_ext", nil)
	}

	numMaterials, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Materials = make([]int32, numMaterials)
	if err = c.ReadI32Into(r, m.Materials); err != nil {
		return Mesh{}, err
	}

	numFooter1, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Footer1s = make([]Footer1, numFooter1)
	for i := range m.Footer1s {
		if m.Footer1s[i].Pos, err = vecmath.ReadVector3(r, c); err != nil {
			return Mesh{}, err
		}
		if m.Footer1s[i].Radius, err = c.ReadF32(r); err != nil {
			return Mesh{}, err
		}
	}

	numFooter2, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Footer2s = make([]Footer2, numFooter2)
	for i := range m.Footer2s {
		if m.Footer2s[i].Transform, err = vecmath.ReadMat4x4(r, c); err != nil {
			return Mesh{}, err
		}
		if err = c.SkipNBytes(r, 16); err != nil {
			return Mesh{}, err
		}
	}

	numFooter3, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.Footer3s = make([]Footer3, numFooter3)
	for i := range m.Footer3s {
		if err = c.ReadF32Into(r, m.Footer3s[i].Unk1[:]); err != nil {
			return Mesh{}, err
		}
		if m.Footer3s[i].Normal, err = vecmath.ReadVector3(r, c); err != nil {
			return Mesh{}, err
		}
		if m.Footer3s[i].Junk, err = c.ReadU32(r); err != nil {
			return Mesh{}, err
		}
		if m.Footer3s[i].Unk2, err = c.ReadF32(r); err != nil {
			return Mesh{}, err
		}
	}

	numUnk4, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	if numUnk4 != 0 {
		return Mesh{}, chumerr.New(chumerr.KindInvalidValue, "Mesh", "num_unk4", nil)
	}

	numStripOrder, err := c.ReadU32(r)
	if err != nil {
		return Mesh{}, err
	}
	m.StripOrder = make([]uint32, numStripOrder)
	if err = c.ReadU32Into(r, m.StripOrder); err != nil {
		return Mesh{}, err
	}

	m.Strips = make([]StripData, numStrips)
	for i, s := range strips {
		sd := StripData{Strip: s}
		if groups != nil {
			g := groups[i]
			sd.Group = &g
		}
		if stripsExt != nil {
			ext := stripsExt[i]
			sd.Ext = &ext
		}
		m.Strips[i] = sd
	}

	return m, nil
}

// WriteTo encodes a Mesh. Group ids are emitted only when ItemSubtype is 4;
// a strip whose Group is nil but ItemSubtype is 4 writes a zero id.
func (m Mesh) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, m.Transform); err != nil {
		return err
	}

	if err := c.WriteU32(w, uint32(len(m.Vertices))); err != nil {
		return err
	}
	for _, v := range m.Vertices {
		if err := vecmath.WriteVector3(w, c, v); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Texcoords))); err != nil {
		return err
	}
	for _, t := range m.Texcoords {
		if err := vecmath.WriteVector2(w, c, t); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Normals))); err != nil {
		return err
	}
	for _, n := range m.Normals {
		if err := vecmath.WriteVector3(w, c, n); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Strips))); err != nil {
		return err
	}
	for _, s := range m.Strips {
		if err := writeStrip(w, c, s.Strip); err != nil {
			return err
		}
	}

	if m.Transform.ItemSubtype == 4 {
		for _, s := range m.Strips {
			var g int32
			if s.Group != nil {
				g = *s.Group
			}
			if err := c.WriteI32(w, g); err != nil {
				return err
			}
		}
	}

	hasExt := len(m.Strips) > 0 && m.Strips[0].Ext != nil
	if hasExt {
		if err := c.WriteU32(w, uint32(len(m.Strips))); err != nil {
			return err
		}
		for _, s := range m.Strips {
			var ext []ElementData
			if s.Ext != nil {
				ext = *s.Ext
			}
			if err := writeStripExt(w, c, ext); err != nil {
				return err
			}
		}
	} else {
		if err := c.WriteU32(w, 0); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Materials))); err != nil {
		return err
	}
	for _, mat := range m.Materials {
		if err := c.WriteI32(w, mat); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Footer1s))); err != nil {
		return err
	}
	for _, f := range m.Footer1s {
		if err := vecmath.WriteVector3(w, c, f.Pos); err != nil {
			return err
		}
		if err := c.WriteF32(w, f.Radius); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Footer2s))); err != nil {
		return err
	}
	for _, f := range m.Footer2s {
		if err := vecmath.WriteMat4x4(w, c, f.Transform); err != nil {
			return err
		}
		if err := c.WriteBytes(w, make([]byte, 16)); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, uint32(len(m.Footer3s))); err != nil {
		return err
	}
	for _, f := range m.Footer3s {
		for _, v := range f.Unk1 {
			if err := c.WriteF32(w, v); err != nil {
				return err
			}
		}
		if err := vecmath.WriteVector3(w, c, f.Normal); err != nil {
			return err
		}
		if err := c.WriteU32(w, f.Junk); err != nil {
			return err
		}
		if err := c.WriteF32(w, f.Unk2); err != nil {
			return err
		}
	}

	if err := c.WriteU32(w, 0); err != nil { // num_unk4, always 0
		return err
	}

	if err := c.WriteU32(w, uint32(len(m.StripOrder))); err != nil {
		return err
	}
	for _, v := range m.StripOrder {
		if err := c.WriteU32(w, v); err != nil {
			return err
		}
	}

	return nil
}

// Structure exposes Mesh's material references.
func (m Mesh) Structure() *variant.Variant {
	materials := make([]*variant.Variant, len(m.Materials))
	for i, id := range m.Materials {
		materials[i] = variant.NewReference(id, "MATERIAL")
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "materials", Value: variant.NewArray(materials, func() *variant.Variant { return variant.NewReference(0, "MATERIAL") }, true)},
	})
}
