// Package gameobj decodes the GameObj asset: a list of prefab instances,
// each binding a node subtype reference to a fully embedded Node.
package gameobj

import (
	"io"

	"github.com/brinepack/totemkit/asset/node"
	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
)

// AssetTypeNode is the fixed asset_type tag every Prefab record carries.
const AssetTypeNode int32 = -1276508687

// Prefab binds a node reference to an embedded Node. Subtype2 mirrors
// Subtype1 on the wire (the original format writes it redundantly); it is
// not read back from the user-facing structure, matching the "subtype2
// always equals subtype1" invariant this type is grounded on.
type Prefab struct {
	Subtype1 int32
	Subtype2 int32
	Node     node.Node
}

// GameObj is a list of prefab instances.
type GameObj struct {
	Prefabs []Prefab
}

// ReadFrom decodes a GameObj.
func ReadFrom(r io.Reader, c *endian.Codec) (GameObj, error) {
	count, err := c.ReadU32(r)
	if err != nil {
		return GameObj{}, err
	}
	g := GameObj{Prefabs: make([]Prefab, count)}
	for i := range g.Prefabs {
		if g.Prefabs[i], err = readPrefab(r, c); err != nil {
			return GameObj{}, err
		}
	}
	return g, nil
}

func readPrefab(r io.Reader, c *endian.Codec) (Prefab, error) {
	var p Prefab
	var err error
	if _, err = c.ReadI32(r); err != nil { // asset_type
		return Prefab{}, err
	}
	if p.Subtype1, err = c.ReadI32(r); err != nil {
		return Prefab{}, err
	}
	if p.Subtype2, err = c.ReadI32(r); err != nil {
		return Prefab{}, err
	}
	if p.Node, err = node.ReadFrom(r, c); err != nil {
		return Prefab{}, err
	}
	return p, nil
}

func writePrefab(w io.Writer, c *endian.Codec, p Prefab) error {
	if err := c.WriteI32(w, AssetTypeNode); err != nil {
		return err
	}
	if err := c.WriteI32(w, p.Subtype1); err != nil {
		return err
	}
	if err := c.WriteI32(w, p.Subtype1); err != nil {
		return err
	}
	return p.Node.WriteTo(w, c)
}

// WriteTo encodes a GameObj. Subtype2 is always re-emitted as a copy of
// Subtype1, regardless of the value stored in Prefab.Subtype2.
func (g GameObj) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := c.WriteU32(w, uint32(len(g.Prefabs))); err != nil {
		return err
	}
	for _, p := range g.Prefabs {
		if err := writePrefab(w, c, p); err != nil {
			return err
		}
	}
	return nil
}

// Structure exposes GameObj's prefab list as node subtype references paired
// with their embedded node's structure.
func (g GameObj) Structure() *variant.Variant {
	prefabs := make([]*variant.Variant, len(g.Prefabs))
	for i, p := range g.Prefabs {
		prefabs[i] = variant.NewStruct([]variant.StructField{
			{Name: "subtype1", Value: variant.NewReference(p.Subtype1, "")},
			{Name: "node", Value: p.Node.Structure()},
		})
	}
	return variant.NewStruct([]variant.StructField{
		{Name: "prefabs", Value: variant.NewArray(prefabs, nil, true)},
	})
}
