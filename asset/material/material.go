// Package material decodes the Material asset: a texture reference and a
// reflection-texture reference, preceded by 101 bytes of unidentified
// header data that every known archive carries but no consumer reads.
package material

import (
	"io"

	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
)

const unknownHeaderSize = 101

// Material is a surface's texture bindings.
type Material struct {
	Texture           int32
	TextureReflection int32
}

// ReadFrom decodes a Material.
func ReadFrom(r io.Reader, c *endian.Codec) (Material, error) {
	if err := c.SkipNBytes(r, unknownHeaderSize); err != nil {
		return Material{}, err
	}
	tex, err := c.ReadI32(r)
	if err != nil {
		return Material{}, err
	}
	texRef, err := c.ReadI32(r)
	if err != nil {
		return Material{}, err
	}
	return Material{Texture: tex, TextureReflection: texRef}, nil
}

// WriteTo encodes a Material, emitting unknownHeader verbatim as its
// leading 101 bytes. Material itself does not store these bytes and
// ReadFrom skips them without returning them, so the caller supplies them.
func (m Material) WriteTo(w io.Writer, c *endian.Codec, unknownHeader [unknownHeaderSize]byte) error {
	if err := c.WriteBytes(w, unknownHeader[:]); err != nil {
		return err
	}
	if err := c.WriteI32(w, m.Texture); err != nil {
		return err
	}
	return c.WriteI32(w, m.TextureReflection)
}

// Structure exposes Material as a structured variant for editor use.
func (m Material) Structure() *variant.Variant {
	return variant.NewStruct([]variant.StructField{
		{Name: "texture", Value: variant.NewReference(m.Texture, "BITMAP")},
		{Name: "texture_reflection", Value: variant.NewReference(m.TextureReflection, "BITMAP")},
	})
}

// Destructure rebuilds a Material from a structured variant.
func Destructure(v *variant.Variant) (Material, error) {
	tex, ok := v.GetStructItem("texture")
	if !ok {
		return Material{}, chumerr.MissingField("texture")
	}
	texRef, ok := v.GetStructItem("texture_reflection")
	if !ok {
		return Material{}, chumerr.MissingField("texture_reflection")
	}
	texHash, _, ok := tex.GetReference()
	if !ok {
		return Material{}, chumerr.WrongKind("texture")
	}
	texRefHash, _, ok := texRef.GetReference()
	if !ok {
		return Material{}, chumerr.WrongKind("texture_reflection")
	}
	return Material{Texture: texHash, TextureReflection: texRefHash}, nil
}
