// Package light decodes the Light asset: a transformation header plus a
// handful of unidentified float blocks and a direction vector.
package light

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// Light is a scene light.
type Light struct {
	Header    vecmath.TransformationHeader
	Unk1      [4]float32
	Unk2      [3]float32
	Direction vecmath.Vector3
	Unk3      [3]float32
	Unk4      uint8
	Junk      [3]byte
	Unk5      [3]float32
}

// ReadFrom decodes a Light.
func ReadFrom(r io.Reader, c *endian.Codec) (Light, error) {
	var l Light
	var err error
	if l.Header, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return Light{}, err
	}
	if err = c.ReadF32Into(r, l.Unk1[:]); err != nil {
		return Light{}, err
	}
	if err = c.ReadF32Into(r, l.Unk2[:]); err != nil {
		return Light{}, err
	}
	if l.Direction, err = vecmath.ReadVector3(r, c); err != nil {
		return Light{}, err
	}
	if err = c.ReadF32Into(r, l.Unk3[:]); err != nil {
		return Light{}, err
	}
	if l.Unk4, err = c.ReadU8(r); err != nil {
		return Light{}, err
	}
	if err = c.ReadExact(r, l.Junk[:]); err != nil {
		return Light{}, err
	}
	if err = c.ReadF32Into(r, l.Unk5[:]); err != nil {
		return Light{}, err
	}
	return l, nil
}

// WriteTo encodes a Light.
func (l Light) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, l.Header); err != nil {
		return err
	}
	for _, v := range l.Unk1 {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	for _, v := range l.Unk2 {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	if err := vecmath.WriteVector3(w, c, l.Direction); err != nil {
		return err
	}
	for _, v := range l.Unk3 {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	if err := c.WriteU8(w, l.Unk4); err != nil {
		return err
	}
	if err := c.WriteBytes(w, l.Junk[:]); err != nil {
		return err
	}
	for _, v := range l.Unk5 {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// Structure exposes Light's direction as a structured variant; the
// remaining fields are unidentified and stay out of the editable tree, the
// same way lod's long opaque footer blocks do.
func (l Light) Structure() *variant.Variant {
	return variant.NewStruct([]variant.StructField{
		{Name: "direction", Value: variant.NewVec3(l.Direction.X, l.Direction.Y, l.Direction.Z)},
	})
}
