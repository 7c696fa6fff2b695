// Package warp decodes the Warp asset: a skybox-like volume built from a
// scale factor, six material references, eight corner vertices, and four
// texture coordinates.
package warp

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// Warp is a six-sided warp volume.
type Warp struct {
	Size        float32
	MaterialIDs [6]int32
	Vertices    [8]vecmath.Vector3
	Texcoords   [4]vecmath.Vector2
}

// ReadFrom decodes a Warp.
func ReadFrom(r io.Reader, c *endian.Codec) (Warp, error) {
	var w Warp
	var err error
	if w.Size, err = c.ReadF32(r); err != nil {
		return Warp{}, err
	}
	if err = c.ReadI32Into(r, w.MaterialIDs[:]); err != nil {
		return Warp{}, err
	}
	for i := range w.Vertices {
		if w.Vertices[i], err = vecmath.ReadVector3(r, c); err != nil {
			return Warp{}, err
		}
	}
	for i := range w.Texcoords {
		if w.Texcoords[i], err = vecmath.ReadVector2(r, c); err != nil {
			return Warp{}, err
		}
	}
	return w, nil
}

// WriteTo encodes a Warp.
func (w Warp) WriteTo(out io.Writer, c *endian.Codec) error {
	if err := c.WriteF32(out, w.Size); err != nil {
		return err
	}
	for _, id := range w.MaterialIDs {
		if err := c.WriteI32(out, id); err != nil {
			return err
		}
	}
	for _, v := range w.Vertices {
		if err := vecmath.WriteVector3(out, c, v); err != nil {
			return err
		}
	}
	for _, tc := range w.Texcoords {
		if err := vecmath.WriteVector2(out, c, tc); err != nil {
			return err
		}
	}
	return nil
}

// Structure exposes Warp's size, material references, vertices, and texture
// coordinates.
func (w Warp) Structure() *variant.Variant {
	materials := make([]*variant.Variant, len(w.MaterialIDs))
	for i, id := range w.MaterialIDs {
		materials[i] = variant.NewReference(id, "MATERIAL")
	}
	vertices := make([]*variant.Variant, len(w.Vertices))
	for i, v := range w.Vertices {
		vertices[i] = variant.NewVec3(v.X, v.Y, v.Z)
	}
	texcoords := make([]*variant.Variant, len(w.Texcoords))
	for i, tc := range w.Texcoords {
		texcoords[i] = variant.NewVec2(tc.X, tc.Y)
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "size", Value: variant.NewFloat(w.Size)},
		{Name: "material_ids", Value: variant.NewArray(materials, nil, false)},
		{Name: "vertices", Value: variant.NewArray(vertices, nil, false)},
		{Name: "texcoords", Value: variant.NewArray(texcoords, nil, false)},
	})
}
