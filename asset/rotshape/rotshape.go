// Package rotshape decodes the RotShape asset: a billboarded quad with a
// transformation header, two size vectors, four texture coordinates, a
// material-animation reference, and a billboard mode.
package rotshape

import (
	"io"

	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// BillboardMode selects how a RotShape faces the camera.
type BillboardMode uint16

const (
	BillboardYAxis BillboardMode = 0
	BillboardFull  BillboardMode = 1
)

// RotShape is a billboarded quad, typically used for sprites like particles
// or foliage cards.
type RotShape struct {
	Transform      vecmath.TransformationHeader
	Unk5           vecmath.Vector3
	Unk7           float32
	Size           [2]vecmath.Vector3
	Texcoords      [4]vecmath.Vector2
	MaterialAnimID int32
	BillboardMode  BillboardMode
}

// ReadFrom decodes a RotShape. Five unknown u32 spacer fields interleaved
// between the meaningful fields are read and discarded.
func ReadFrom(r io.Reader, c *endian.Codec) (RotShape, error) {
	var s RotShape
	var err error
	if s.Transform, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return RotShape{}, err
	}
	if _, err = c.ReadU32(r); err != nil {
		return RotShape{}, err
	}
	if s.Unk5, err = vecmath.ReadVector3(r, c); err != nil {
		return RotShape{}, err
	}
	if _, err = c.ReadU32(r); err != nil {
		return RotShape{}, err
	}
	if s.Unk7, err = c.ReadF32(r); err != nil {
		return RotShape{}, err
	}
	if _, err = c.ReadU32(r); err != nil {
		return RotShape{}, err
	}
	for i := range s.Size {
		if s.Size[i], err = vecmath.ReadVector3(r, c); err != nil {
			return RotShape{}, err
		}
	}
	if _, err = c.ReadU32(r); err != nil {
		return RotShape{}, err
	}
	for i := range s.Texcoords {
		if s.Texcoords[i], err = vecmath.ReadVector2(r, c); err != nil {
			return RotShape{}, err
		}
	}
	if _, err = c.ReadU32(r); err != nil {
		return RotShape{}, err
	}
	if s.MaterialAnimID, err = c.ReadI32(r); err != nil {
		return RotShape{}, err
	}
	mode, err := c.ReadU16(r)
	if err != nil {
		return RotShape{}, err
	}
	switch BillboardMode(mode) {
	case BillboardYAxis, BillboardFull:
		s.BillboardMode = BillboardMode(mode)
	default:
		return RotShape{}, chumerr.New(chumerr.KindInvalidEnum, "RotShape", "billboard_mode", nil)
	}
	return s, nil
}

// WriteTo encodes a RotShape, writing zero for the five spacer fields.
func (s RotShape) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, s.Transform); err != nil {
		return err
	}
	if err := c.WriteU32(w, 0); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, s.Unk5); err != nil {
		return err
	}
	if err := c.WriteU32(w, 0); err != nil {
		return err
	}
	if err := c.WriteF32(w, s.Unk7); err != nil {
		return err
	}
	if err := c.WriteU32(w, 0); err != nil {
		return err
	}
	for _, v := range s.Size {
		if err := vecmath.WriteVector3(w, c, v); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, 0); err != nil {
		return err
	}
	for _, tc := range s.Texcoords {
		if err := vecmath.WriteVector2(w, c, tc); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, 0); err != nil {
		return err
	}
	if err := c.WriteI32(w, s.MaterialAnimID); err != nil {
		return err
	}
	return c.WriteU16(w, uint16(s.BillboardMode))
}

// Structure exposes RotShape's size, texture coordinates, material
// animation reference, and billboard mode.
func (s RotShape) Structure() *variant.Variant {
	sizes := make([]*variant.Variant, len(s.Size))
	for i, v := range s.Size {
		sizes[i] = variant.NewVec3(v.X, v.Y, v.Z)
	}
	texcoords := make([]*variant.Variant, len(s.Texcoords))
	for i, tc := range s.Texcoords {
		texcoords[i] = variant.NewVec2(tc.X, tc.Y)
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "size", Value: variant.NewArray(sizes, nil, false)},
		{Name: "texcoords", Value: variant.NewArray(texcoords, nil, false)},
		{Name: "materialanim_id", Value: variant.NewReference(s.MaterialAnimID, "MATERIALANIM")},
		{Name: "billboard_mode", Value: variant.NewInteger(int64(s.BillboardMode), variant.IntInfo{
			Kind:  variant.IntEnum,
			Names: []string{"YAxis", "Full"},
		})},
	})
}
