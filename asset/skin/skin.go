// Package skin decodes the Skin asset: a mesh-skinning binding between a
// set of meshes and a set of named vertex groups, each vertex group
// carrying per-mesh vertex/normal weight lists, plus an optional animation
// symbol table and a trailing list of unidentified per-vertex-group
// entries.
package skin

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// ItemTypeSkin is the fixed item_type tag every Skin record carries.
const ItemTypeSkin int32 = 0

// VertexWeight binds a vertex or normal index to a blend weight.
type VertexWeight struct {
	ID     uint32
	Weight float32
}

// VertexGroupSection binds one mesh's vertex and normal weight lists to a
// vertex group.
type VertexGroupSection struct {
	MeshIndex uint16
	Vertices  []VertexWeight
	Normals   []VertexWeight
}

// VertexGroup is a named bone binding: a reference to the group's driving
// node, plus one section per mesh it influences.
type VertexGroup struct {
	GroupID  int32
	Sections []VertexGroupSection
}

// AnimEntry binds a raw animation symbol to an animation reference.
type AnimEntry struct {
	Symbol int32
	AnimID int32
}

// UnknownEntry is an unidentified trailing record: two parallel lists of
// raw u32s whose purpose is not established in the reference material.
type UnknownEntry struct {
	Vertices []uint32
	Normals  []uint32
}

// Skin is a mesh-skinning binding.
type Skin struct {
	Header       vecmath.TransformHeaderBase
	ItemFlags    uint16
	MeshIDs      []int32
	VertexGroups []VertexGroup
	Anims        []AnimEntry // nil when the optional anim section is absent
	AnimsPresent bool
	Unknown      []UnknownEntry
}

func readVertexWeightList(r io.Reader, c *endian.Codec) ([]VertexWeight, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]VertexWeight, count)
	for i := range out {
		if out[i].ID, err = c.ReadU32(r); err != nil {
			return nil, err
		}
		if out[i].Weight, err = c.ReadF32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeVertexWeightList(w io.Writer, c *endian.Codec, list []VertexWeight) error {
	if err := c.WriteU32(w, uint32(len(list))); err != nil {
		return err
	}
	for _, v := range list {
		if err := c.WriteU32(w, v.ID); err != nil {
			return err
		}
		if err := c.WriteF32(w, v.Weight); err != nil {
			return err
		}
	}
	return nil
}

func readVertexGroupSection(r io.Reader, c *endian.Codec) (VertexGroupSection, error) {
	var s VertexGroupSection
	var err error
	if s.MeshIndex, err = c.ReadU16(r); err != nil {
		return VertexGroupSection{}, err
	}
	if s.Vertices, err = readVertexWeightList(r, c); err != nil {
		return VertexGroupSection{}, err
	}
	if s.Normals, err = readVertexWeightList(r, c); err != nil {
		return VertexGroupSection{}, err
	}
	return s, nil
}

func writeVertexGroupSection(w io.Writer, c *endian.Codec, s VertexGroupSection) error {
	if err := c.WriteU16(w, s.MeshIndex); err != nil {
		return err
	}
	if err := writeVertexWeightList(w, c, s.Vertices); err != nil {
		return err
	}
	return writeVertexWeightList(w, c, s.Normals)
}

func readVertexGroup(r io.Reader, c *endian.Codec) (VertexGroup, error) {
	var g VertexGroup
	var err error
	if g.GroupID, err = c.ReadI32(r); err != nil {
		return VertexGroup{}, err
	}
	count, err := c.ReadU32(r)
	if err != nil {
		return VertexGroup{}, err
	}
	g.Sections = make([]VertexGroupSection, count)
	for i := range g.Sections {
		if g.Sections[i], err = readVertexGroupSection(r, c); err != nil {
			return VertexGroup{}, err
		}
	}
	return g, nil
}

func writeVertexGroup(w io.Writer, c *endian.Codec, g VertexGroup) error {
	if err := c.WriteI32(w, g.GroupID); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(g.Sections))); err != nil {
		return err
	}
	for _, s := range g.Sections {
		if err := writeVertexGroupSection(w, c, s); err != nil {
			return err
		}
	}
	return nil
}

func readUnknownEntry(r io.Reader, c *endian.Codec) (UnknownEntry, error) {
	var u UnknownEntry
	var err error
	vCount, err := c.ReadU32(r)
	if err != nil {
		return UnknownEntry{}, err
	}
	u.Vertices = make([]uint32, vCount)
	if err = c.ReadU32Into(r, u.Vertices); err != nil {
		return UnknownEntry{}, err
	}
	nCount, err := c.ReadU32(r)
	if err != nil {
		return UnknownEntry{}, err
	}
	u.Normals = make([]uint32, nCount)
	if err = c.ReadU32Into(r, u.Normals); err != nil {
		return UnknownEntry{}, err
	}
	return u, nil
}

func writeUnknownEntry(w io.Writer, c *endian.Codec, u UnknownEntry) error {
	if err := c.WriteU32(w, uint32(len(u.Vertices))); err != nil {
		return err
	}
	for _, v := range u.Vertices {
		if err := c.WriteU32(w, v); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(u.Normals))); err != nil {
		return err
	}
	for _, v := range u.Normals {
		if err := c.WriteU32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom decodes a Skin. The item_type tag and the unk_zero spacer
// immediately after the mesh list are read and discarded.
func ReadFrom(r io.Reader, c *endian.Codec) (Skin, error) {
	var s Skin
	var err error
	if s.Header, err = vecmath.ReadTransformHeaderBase(r, c); err != nil {
		return Skin{}, err
	}
	if _, err = c.ReadU16(r); err != nil { // item_type
		return Skin{}, err
	}
	if s.ItemFlags, err = c.ReadU16(r); err != nil {
		return Skin{}, err
	}
	meshCount, err := c.ReadU32(r)
	if err != nil {
		return Skin{}, err
	}
	s.MeshIDs = make([]int32, meshCount)
	if err = c.ReadI32Into(r, s.MeshIDs); err != nil {
		return Skin{}, err
	}
	if _, err = c.ReadU32(r); err != nil { // unk_zero
		return Skin{}, err
	}
	groupCount, err := c.ReadU32(r)
	if err != nil {
		return Skin{}, err
	}
	s.VertexGroups = make([]VertexGroup, groupCount)
	for i := range s.VertexGroups {
		if s.VertexGroups[i], err = readVertexGroup(r, c); err != nil {
			return Skin{}, err
		}
	}
	animsPresent, err := c.ReadU8(r)
	if err != nil {
		return Skin{}, err
	}
	if animsPresent != 0 {
		s.AnimsPresent = true
		animCount, err := c.ReadU32(r)
		if err != nil {
			return Skin{}, err
		}
		s.Anims = make([]AnimEntry, animCount)
		for i := range s.Anims {
			if s.Anims[i].Symbol, err = c.ReadI32(r); err != nil {
				return Skin{}, err
			}
			if s.Anims[i].AnimID, err = c.ReadI32(r); err != nil {
				return Skin{}, err
			}
		}
	}
	unkCount, err := c.ReadU32(r)
	if err != nil {
		return Skin{}, err
	}
	s.Unknown = make([]UnknownEntry, unkCount)
	for i := range s.Unknown {
		if s.Unknown[i], err = readUnknownEntry(r, c); err != nil {
			return Skin{}, err
		}
	}
	return s, nil
}

// WriteTo encodes a Skin.
func (s Skin) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformHeaderBase(w, c, s.Header); err != nil {
		return err
	}
	if err := c.WriteU16(w, uint16(ItemTypeSkin)); err != nil {
		return err
	}
	if err := c.WriteU16(w, s.ItemFlags); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(s.MeshIDs))); err != nil {
		return err
	}
	for _, id := range s.MeshIDs {
		if err := c.WriteI32(w, id); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, 0); err != nil { // unk_zero
		return err
	}
	if err := c.WriteU32(w, uint32(len(s.VertexGroups))); err != nil {
		return err
	}
	for _, g := range s.VertexGroups {
		if err := writeVertexGroup(w, c, g); err != nil {
			return err
		}
	}
	if s.AnimsPresent {
		if err := c.WriteU8(w, 1); err != nil {
			return err
		}
		if err := c.WriteU32(w, uint32(len(s.Anims))); err != nil {
			return err
		}
		for _, a := range s.Anims {
			if err := c.WriteI32(w, a.Symbol); err != nil {
				return err
			}
			if err := c.WriteI32(w, a.AnimID); err != nil {
				return err
			}
		}
	} else {
		if err := c.WriteU8(w, 0); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(s.Unknown))); err != nil {
		return err
	}
	for _, u := range s.Unknown {
		if err := writeUnknownEntry(w, c, u); err != nil {
			return err
		}
	}
	return nil
}

// Structure exposes Skin's mesh references and vertex group names.
func (s Skin) Structure() *variant.Variant {
	meshes := make([]*variant.Variant, len(s.MeshIDs))
	for i, id := range s.MeshIDs {
		meshes[i] = variant.NewReference(id, "MESH")
	}
	groups := make([]*variant.Variant, len(s.VertexGroups))
	for i, g := range s.VertexGroups {
		groups[i] = variant.NewReference(g.GroupID, "NODE")
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "meshes", Value: variant.NewArray(meshes, func() *variant.Variant { return variant.NewReference(0, "MESH") }, true)},
		{Name: "vertex_groups", Value: variant.NewArray(groups, func() *variant.Variant { return variant.NewReference(0, "NODE") }, true)},
	})
}
