// Package lod decodes the Lod asset: a level-of-detail node carrying a long
// run of optional opaque blocks (left un-interpreted, matching the source
// format's own "unknown but preserved" footer fields), a skin reference
// list, an animation symbol table, and an optional sound table present only
// for a specific transform subtype.
package lod

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// UnkStruct is the unk15 opaque block: four floats plus a trailing u32.
type UnkStruct struct {
	Unk1 [4]float32
	Unk2 uint32
}

// AnimEntry binds a raw animation symbol to the animation it plays. The
// symbol is kept as a raw value rather than resolved against a lookup table.
type AnimEntry struct {
	Symbol      uint32
	AnimationID int32
}

// SoundEntry binds a raw sound symbol to a sound asset reference.
type SoundEntry struct {
	Symbol  uint32
	SoundID int32
}

// Lod is a level-of-detail node.
type Lod struct {
	Transform vecmath.TransformationHeader

	Unk1  *[4]float32
	Unk2  *[4]float32
	Unk3  *[9]float32
	Unk4  *vecmath.Mat4x4
	Unk5  *[4]float32
	Unk6  *struct{}
	Unk7  *vecmath.Mat4x4
	Unk8  *[4]float32
	Unk9  *struct{}
	Unk10 *vecmath.Mat4x4
	Unk11 *[4]float32
	Unk12 *struct{}
	Unk13 *struct{}
	Unk14 *[4]float32
	Unk15 *UnkStruct
	Unk16 *[4]float32
	Unk17 *[4]float32

	Unk18 [2]float32
	Unk19 uint16

	SkinIDs []int32
	Anims   []AnimEntry

	// Sounds is non-nil only when Transform.ItemSubtype == 2.
	Sounds []SoundEntry
}

func readOptionF32_4(r io.Reader, c *endian.Codec) (*[4]float32, error) {
	present, err := c.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	var buf [4]float32
	if err := c.ReadF32Into(r, buf[:]); err != nil {
		return nil, err
	}
	return &buf, nil
}

func writeOptionF32_4(w io.Writer, c *endian.Codec, v *[4]float32) error {
	if v == nil {
		return c.WriteU8(w, 0)
	}
	if err := c.WriteU8(w, 1); err != nil {
		return err
	}
	for _, f := range v {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	return nil
}

func readOptionF32_9(r io.Reader, c *endian.Codec) (*[9]float32, error) {
	present, err := c.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	var buf [9]float32
	if err := c.ReadF32Into(r, buf[:]); err != nil {
		return nil, err
	}
	return &buf, nil
}

func writeOptionF32_9(w io.Writer, c *endian.Codec, v *[9]float32) error {
	if v == nil {
		return c.WriteU8(w, 0)
	}
	if err := c.WriteU8(w, 1); err != nil {
		return err
	}
	for _, f := range v {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	return nil
}

// readOptionTransform reads an optional Mat4x4 followed by 16 junk bytes,
// consistent with load_transform in the format this package is modelled on.
func readOptionTransform(r io.Reader, c *endian.Codec) (*vecmath.Mat4x4, error) {
	present, err := c.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	m, err := vecmath.ReadMat4x4(r, c)
	if err != nil {
		return nil, err
	}
	if err := c.SkipNBytes(r, 16); err != nil {
		return nil, err
	}
	return &m, nil
}

func writeOptionTransform(w io.Writer, c *endian.Codec, v *vecmath.Mat4x4) error {
	if v == nil {
		return c.WriteU8(w, 0)
	}
	if err := c.WriteU8(w, 1); err != nil {
		return err
	}
	if err := vecmath.WriteMat4x4(w, c, *v); err != nil {
		return err
	}
	var junk [16]byte
	return c.WriteBytes(w, junk[:])
}

func readOptionEmpty(r io.Reader, c *endian.Codec) (*struct{}, error) {
	present, err := c.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	return &struct{}{}, nil
}

func writeOptionEmpty(w io.Writer, c *endian.Codec, v *struct{}) error {
	if v == nil {
		return c.WriteU8(w, 0)
	}
	return c.WriteU8(w, 1)
}

func readOptionUnkStruct(r io.Reader, c *endian.Codec) (*UnkStruct, error) {
	present, err := c.ReadU8(r)
	if err != nil {
		return nil, err
	}
	if present == 0 {
		return nil, nil
	}
	var u UnkStruct
	if err := c.ReadF32Into(r, u.Unk1[:]); err != nil {
		return nil, err
	}
	if u.Unk2, err = c.ReadU32(r); err != nil {
		return nil, err
	}
	return &u, nil
}

func writeOptionUnkStruct(w io.Writer, c *endian.Codec, v *UnkStruct) error {
	if v == nil {
		return c.WriteU8(w, 0)
	}
	if err := c.WriteU8(w, 1); err != nil {
		return err
	}
	for _, f := range v.Unk1 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	return c.WriteU32(w, v.Unk2)
}

// ReadFrom decodes a Lod. Sounds is only read when the transform's item
// subtype is 2; any other nonzero subtype is treated the same as 0 (no
// sound table) rather than rejected, since the source format's own handling
// of unrecognized subtypes is undefined.
func ReadFrom(r io.Reader, c *endian.Codec) (Lod, error) {
	var l Lod
	var err error
	if l.Transform, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk1, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk2, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk3, err = readOptionF32_9(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk4, err = readOptionTransform(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk5, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk6, err = readOptionEmpty(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk7, err = readOptionTransform(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk8, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk9, err = readOptionEmpty(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk10, err = readOptionTransform(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk11, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk12, err = readOptionEmpty(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk13, err = readOptionEmpty(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk14, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk15, err = readOptionUnkStruct(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk16, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if l.Unk17, err = readOptionF32_4(r, c); err != nil {
		return Lod{}, err
	}
	if err = c.ReadF32Into(r, l.Unk18[:]); err != nil {
		return Lod{}, err
	}
	if l.Unk19, err = c.ReadU16(r); err != nil {
		return Lod{}, err
	}
	skinCount, err := c.ReadU32(r)
	if err != nil {
		return Lod{}, err
	}
	l.SkinIDs = make([]int32, skinCount)
	if err = c.ReadI32Into(r, l.SkinIDs); err != nil {
		return Lod{}, err
	}
	animCount, err := c.ReadU32(r)
	if err != nil {
		return Lod{}, err
	}
	l.Anims = make([]AnimEntry, animCount)
	for i := range l.Anims {
		if l.Anims[i].Symbol, err = c.ReadU32(r); err != nil {
			return Lod{}, err
		}
		if l.Anims[i].AnimationID, err = c.ReadI32(r); err != nil {
			return Lod{}, err
		}
	}
	if l.Transform.ItemSubtype == 2 {
		soundCount, err := c.ReadU32(r)
		if err != nil {
			return Lod{}, err
		}
		l.Sounds = make([]SoundEntry, soundCount)
		for i := range l.Sounds {
			if l.Sounds[i].Symbol, err = c.ReadU32(r); err != nil {
				return Lod{}, err
			}
			if l.Sounds[i].SoundID, err = c.ReadI32(r); err != nil {
				return Lod{}, err
			}
		}
	}
	return l, nil
}

// WriteTo encodes a Lod.
func (l Lod) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, l.Transform); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk1); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk2); err != nil {
		return err
	}
	if err := writeOptionF32_9(w, c, l.Unk3); err != nil {
		return err
	}
	if err := writeOptionTransform(w, c, l.Unk4); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk5); err != nil {
		return err
	}
	if err := writeOptionEmpty(w, c, l.Unk6); err != nil {
		return err
	}
	if err := writeOptionTransform(w, c, l.Unk7); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk8); err != nil {
		return err
	}
	if err := writeOptionEmpty(w, c, l.Unk9); err != nil {
		return err
	}
	if err := writeOptionTransform(w, c, l.Unk10); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk11); err != nil {
		return err
	}
	if err := writeOptionEmpty(w, c, l.Unk12); err != nil {
		return err
	}
	if err := writeOptionEmpty(w, c, l.Unk13); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk14); err != nil {
		return err
	}
	if err := writeOptionUnkStruct(w, c, l.Unk15); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk16); err != nil {
		return err
	}
	if err := writeOptionF32_4(w, c, l.Unk17); err != nil {
		return err
	}
	for _, f := range l.Unk18 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	if err := c.WriteU16(w, l.Unk19); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(l.SkinIDs))); err != nil {
		return err
	}
	for _, id := range l.SkinIDs {
		if err := c.WriteI32(w, id); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(l.Anims))); err != nil {
		return err
	}
	for _, a := range l.Anims {
		if err := c.WriteU32(w, a.Symbol); err != nil {
			return err
		}
		if err := c.WriteI32(w, a.AnimationID); err != nil {
			return err
		}
	}
	if l.Transform.ItemSubtype == 2 {
		if err := c.WriteU32(w, uint32(len(l.Sounds))); err != nil {
			return err
		}
		for _, s := range l.Sounds {
			if err := c.WriteU32(w, s.Symbol); err != nil {
				return err
			}
			if err := c.WriteI32(w, s.SoundID); err != nil {
				return err
			}
		}
	}
	return nil
}

// Structure exposes Lod's skin references; the long run of unidentified
// optional blocks is kept out of the reflective tree, matching the source
// format's treatment of them as opaque preserved data.
func (l Lod) Structure() *variant.Variant {
	skins := make([]*variant.Variant, len(l.SkinIDs))
	for i, id := range l.SkinIDs {
		skins[i] = variant.NewReference(id, "SKIN")
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "skin_ids", Value: variant.NewArray(skins, func() *variant.Variant { return variant.NewReference(0, "SKIN") }, true)},
	})
}
