// Package camera decodes the Camera asset: a reduced transformation header,
// its own item-type/item-flags tags, a field of view in radians, and a
// reference to the node it is attached to.
package camera

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// ItemTypeCamera is the fixed item_type tag every Camera record carries.
const ItemTypeCamera = 0

// Camera is a viewpoint attached to a node, with a field of view in radians.
type Camera struct {
	Header    vecmath.TransformHeaderBase
	ItemFlags uint16
	FOV       float32
	Unk       uint32
	Target    int32
}

// ReadFrom decodes a Camera. The item_type tag is read and discarded.
func ReadFrom(r io.Reader, c *endian.Codec) (Camera, error) {
	var cam Camera
	var err error
	if cam.Header, err = vecmath.ReadTransformHeaderBase(r, c); err != nil {
		return Camera{}, err
	}
	if _, err = c.ReadU16(r); err != nil { // item_type
		return Camera{}, err
	}
	if cam.ItemFlags, err = c.ReadU16(r); err != nil {
		return Camera{}, err
	}
	if cam.FOV, err = c.ReadF32(r); err != nil {
		return Camera{}, err
	}
	if cam.Unk, err = c.ReadU32(r); err != nil {
		return Camera{}, err
	}
	if cam.Target, err = c.ReadI32(r); err != nil {
		return Camera{}, err
	}
	return cam, nil
}

// WriteTo encodes a Camera.
func (cam Camera) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformHeaderBase(w, c, cam.Header); err != nil {
		return err
	}
	if err := c.WriteU16(w, ItemTypeCamera); err != nil {
		return err
	}
	if err := c.WriteU16(w, cam.ItemFlags); err != nil {
		return err
	}
	if err := c.WriteF32(w, cam.FOV); err != nil {
		return err
	}
	if err := c.WriteU32(w, cam.Unk); err != nil {
		return err
	}
	return c.WriteI32(w, cam.Target)
}

// Structure exposes Camera's field of view and node target.
func (cam Camera) Structure() *variant.Variant {
	return variant.NewStruct([]variant.StructField{
		{Name: "fov", Value: variant.NewFloat(cam.FOV)},
		{Name: "target", Value: variant.NewReference(cam.Target, "NODE")},
	})
}
