// Package hfog decodes the HFog asset: a height-fog volume with a reduced
// transformation header, its own item-type/item-flags tags, a colour, and
// a full transform (translation/scale/rotation plus two opaque 4x4
// matrices).
package hfog

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// ItemTypeHFog is the fixed item_type tag every HFog record carries.
const ItemTypeHFog = 0 // unresolved in the source this is grounded on; preserved as a named constant rather than inferred.

// HFog is a height-fog volume.
type HFog struct {
	Header      vecmath.TransformHeaderBase
	ItemFlags   uint16
	Color       vecmath.Vector3
	Translation vecmath.Vector3
	Scale       vecmath.Vector3
	Rotation    vecmath.Quaternion
	Unk5        vecmath.Mat4x4
	Unk6        vecmath.Mat4x4
}

// ReadFrom decodes an HFog. The item_type tag is read and discarded (it is
// a per-archive constant, not per-instance data).
func ReadFrom(r io.Reader, c *endian.Codec) (HFog, error) {
	var h HFog
	var err error
	if h.Header, err = vecmath.ReadTransformHeaderBase(r, c); err != nil {
		return HFog{}, err
	}
	if _, err = c.ReadU16(r); err != nil { // item_type
		return HFog{}, err
	}
	if h.ItemFlags, err = c.ReadU16(r); err != nil {
		return HFog{}, err
	}
	if h.Color, err = vecmath.ReadVector3(r, c); err != nil {
		return HFog{}, err
	}
	if _, err = c.ReadU8(r); err != nil { // unk0
		return HFog{}, err
	}
	var junk [3]byte
	if err = c.ReadExact(r, junk[:]); err != nil {
		return HFog{}, err
	}
	if h.Translation, err = vecmath.ReadVector3(r, c); err != nil {
		return HFog{}, err
	}
	if h.Scale, err = vecmath.ReadVector3(r, c); err != nil {
		return HFog{}, err
	}
	if h.Rotation, err = vecmath.ReadQuaternion(r, c); err != nil {
		return HFog{}, err
	}
	if h.Unk5, err = vecmath.ReadMat4x4(r, c); err != nil {
		return HFog{}, err
	}
	if h.Unk6, err = vecmath.ReadMat4x4(r, c); err != nil {
		return HFog{}, err
	}
	return h, nil
}

// WriteTo encodes an HFog.
func (h HFog) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformHeaderBase(w, c, h.Header); err != nil {
		return err
	}
	if err := c.WriteU16(w, ItemTypeHFog); err != nil {
		return err
	}
	if err := c.WriteU16(w, h.ItemFlags); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, h.Color); err != nil {
		return err
	}
	if err := c.WriteU8(w, 1); err != nil {
		return err
	}
	var junk [3]byte
	if err := c.WriteBytes(w, junk[:]); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, h.Translation); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, h.Scale); err != nil {
		return err
	}
	if err := vecmath.WriteQuaternion(w, c, h.Rotation); err != nil {
		return err
	}
	if err := vecmath.WriteMat4x4(w, c, h.Unk5); err != nil {
		return err
	}
	return vecmath.WriteMat4x4(w, c, h.Unk6)
}

// Structure exposes HFog's editable fields.
func (h HFog) Structure() *variant.Variant {
	return variant.NewStruct([]variant.StructField{
		{Name: "color", Value: variant.NewColor(h.Color.X, h.Color.Y, h.Color.Z, 1, variant.ColorInfo{})},
		{Name: "translation", Value: variant.NewVec3(h.Translation.X, h.Translation.Y, h.Translation.Z)},
		{Name: "scale", Value: variant.NewVec3(h.Scale.X, h.Scale.Y, h.Scale.Z)},
	})
}
