// Package collisionvol decodes the CollisionVol asset: a collision volume
// with a transformation header, a local transform and its inverse, a fixed
// set of attached node references, and variable-length lists of extra node
// and bitmap references.
package collisionvol

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// CollisionVol is a collision volume.
type CollisionVol struct {
	Transform         vecmath.TransformationHeader
	Unk1              uint32
	LocalTransform    vecmath.Mat4x4
	LocalTransformInv vecmath.Mat4x4
	Unk2              uint32
	Unk3              uint32
	NodeIDs           [10]int32
	Unk4              [10]float32
	ExtraNodeIDs      []int32
	BitmapIDs         []int32
	VolumeType        int32
	Unk6              uint32
}

// ReadFrom decodes a CollisionVol.
func ReadFrom(r io.Reader, c *endian.Codec) (CollisionVol, error) {
	var v CollisionVol
	var err error
	if v.Transform, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return CollisionVol{}, err
	}
	if v.Unk1, err = c.ReadU32(r); err != nil {
		return CollisionVol{}, err
	}
	if v.LocalTransform, err = vecmath.ReadMat4x4(r, c); err != nil {
		return CollisionVol{}, err
	}
	if v.LocalTransformInv, err = vecmath.ReadMat4x4(r, c); err != nil {
		return CollisionVol{}, err
	}
	if v.Unk2, err = c.ReadU32(r); err != nil {
		return CollisionVol{}, err
	}
	if v.Unk3, err = c.ReadU32(r); err != nil {
		return CollisionVol{}, err
	}
	if err = c.ReadI32Into(r, v.NodeIDs[:]); err != nil {
		return CollisionVol{}, err
	}
	if err = c.ReadF32Into(r, v.Unk4[:]); err != nil {
		return CollisionVol{}, err
	}
	if v.ExtraNodeIDs, err = readI32List(r, c); err != nil {
		return CollisionVol{}, err
	}
	if v.BitmapIDs, err = readI32List(r, c); err != nil {
		return CollisionVol{}, err
	}
	if v.VolumeType, err = c.ReadI32(r); err != nil {
		return CollisionVol{}, err
	}
	if v.Unk6, err = c.ReadU32(r); err != nil {
		return CollisionVol{}, err
	}
	return v, nil
}

func readI32List(r io.Reader, c *endian.Codec) ([]int32, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return nil, err
	}
	out := make([]int32, count)
	for i := range out {
		if out[i], err = c.ReadI32(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func writeI32List(w io.Writer, c *endian.Codec, list []int32) error {
	if err := c.WriteU32(w, uint32(len(list))); err != nil {
		return err
	}
	for _, v := range list {
		if err := c.WriteI32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteTo encodes a CollisionVol.
func (v CollisionVol) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, v.Transform); err != nil {
		return err
	}
	if err := c.WriteU32(w, v.Unk1); err != nil {
		return err
	}
	if err := vecmath.WriteMat4x4(w, c, v.LocalTransform); err != nil {
		return err
	}
	if err := vecmath.WriteMat4x4(w, c, v.LocalTransformInv); err != nil {
		return err
	}
	if err := c.WriteU32(w, v.Unk2); err != nil {
		return err
	}
	if err := c.WriteU32(w, v.Unk3); err != nil {
		return err
	}
	for _, id := range v.NodeIDs {
		if err := c.WriteI32(w, id); err != nil {
			return err
		}
	}
	for _, f := range v.Unk4 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := writeI32List(w, c, v.ExtraNodeIDs); err != nil {
		return err
	}
	if err := writeI32List(w, c, v.BitmapIDs); err != nil {
		return err
	}
	if err := c.WriteI32(w, v.VolumeType); err != nil {
		return err
	}
	return c.WriteU32(w, v.Unk6)
}

// Structure exposes CollisionVol's node, bitmap, and volume-type fields.
func (v CollisionVol) Structure() *variant.Variant {
	nodes := make([]*variant.Variant, len(v.NodeIDs))
	for i, id := range v.NodeIDs {
		nodes[i] = variant.NewReference(id, "NODE")
	}
	extraNodes := make([]*variant.Variant, len(v.ExtraNodeIDs))
	for i, id := range v.ExtraNodeIDs {
		extraNodes[i] = variant.NewReference(id, "NODE")
	}
	bitmaps := make([]*variant.Variant, len(v.BitmapIDs))
	for i, id := range v.BitmapIDs {
		bitmaps[i] = variant.NewReference(id, "BITMAP")
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "node_ids", Value: variant.NewArray(nodes, nil, false)},
		{Name: "extra_node_ids", Value: variant.NewArray(extraNodes, func() *variant.Variant { return variant.NewReference(0, "NODE") }, true)},
		{Name: "bitmap_ids", Value: variant.NewArray(bitmaps, func() *variant.Variant { return variant.NewReference(0, "BITMAP") }, true)},
		{Name: "volume_type", Value: variant.NewInteger(int64(v.VolumeType), variant.IntInfo{Kind: variant.IntI32})},
	})
}
