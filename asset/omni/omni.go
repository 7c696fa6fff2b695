// Package omni decodes the Omni asset: a point light with a transformation
// header, an RGB colour, and a 2D falloff vector.
package omni

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// Omni is a point light.
type Omni struct {
	Transform vecmath.TransformationHeader
	Color     vecmath.Vector3
	Unknown1  uint8
	Junk      [3]byte
	Unknown2  vecmath.Vector2
}

// ReadFrom decodes an Omni.
func ReadFrom(r io.Reader, c *endian.Codec) (Omni, error) {
	var o Omni
	var err error
	if o.Transform, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return Omni{}, err
	}
	if o.Color, err = vecmath.ReadVector3(r, c); err != nil {
		return Omni{}, err
	}
	if o.Unknown1, err = c.ReadU8(r); err != nil {
		return Omni{}, err
	}
	if err = c.ReadExact(r, o.Junk[:]); err != nil {
		return Omni{}, err
	}
	if o.Unknown2, err = vecmath.ReadVector2(r, c); err != nil {
		return Omni{}, err
	}
	return o, nil
}

// WriteTo encodes an Omni.
func (o Omni) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, o.Transform); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, o.Color); err != nil {
		return err
	}
	if err := c.WriteU8(w, o.Unknown1); err != nil {
		return err
	}
	if err := c.WriteBytes(w, o.Junk[:]); err != nil {
		return err
	}
	return vecmath.WriteVector2(w, c, o.Unknown2)
}

// Structure exposes Omni's colour and falloff as structured variants.
func (o Omni) Structure() *variant.Variant {
	return variant.NewStruct([]variant.StructField{
		{Name: "color", Value: variant.NewColor(o.Color.X, o.Color.Y, o.Color.Z, 1, variant.ColorInfo{HasAlpha: false})},
		{Name: "falloff", Value: variant.NewVec2(o.Unknown2.X, o.Unknown2.Y)},
	})
}
