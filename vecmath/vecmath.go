// Package vecmath provides the vector, matrix, and colour primitives shared
// by every asset codec, plus the 100-byte TransformationHeader carried by
// most spatial asset types.
//
// Matrices are stored row-major, matching the archive's on-disk layout, so
// reading and writing is a straight float32 sequence with no transpose step.
package vecmath

import (
	"io"

	"github.com/brinepack/totemkit/endian"
)

// Vector2 is a two-component float32 vector.
type Vector2 struct {
	X, Y float32
}

// Vector3 is a three-component float32 vector.
type Vector3 struct {
	X, Y, Z float32
}

// Quaternion is a four-component rotation.
type Quaternion struct {
	X, Y, Z, W float32
}

// Mat3x3 is a row-major 3x3 matrix.
type Mat3x3 [9]float32

// Mat4x4 is a row-major 4x4 matrix.
type Mat4x4 [16]float32

// Color is an RGBA colour stored as four floats.
type Color struct {
	R, G, B, A float32
}

// ReadVector2 reads a Vector2 (8 bytes).
func ReadVector2(r io.Reader, c *endian.Codec) (Vector2, error) {
	x, err := c.ReadF32(r)
	if err != nil {
		return Vector2{}, err
	}
	y, err := c.ReadF32(r)
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{X: x, Y: y}, nil
}

// WriteVector2 writes a Vector2 (8 bytes).
func WriteVector2(w io.Writer, c *endian.Codec, v Vector2) error {
	if err := c.WriteF32(w, v.X); err != nil {
		return err
	}
	return c.WriteF32(w, v.Y)
}

// ReadVector3 reads a Vector3 (12 bytes).
func ReadVector3(r io.Reader, c *endian.Codec) (Vector3, error) {
	buf := make([]float32, 3)
	if err := c.ReadF32Into(r, buf); err != nil {
		return Vector3{}, err
	}
	return Vector3{X: buf[0], Y: buf[1], Z: buf[2]}, nil
}

// WriteVector3 writes a Vector3 (12 bytes).
func WriteVector3(w io.Writer, c *endian.Codec, v Vector3) error {
	if err := c.WriteF32(w, v.X); err != nil {
		return err
	}
	if err := c.WriteF32(w, v.Y); err != nil {
		return err
	}
	return c.WriteF32(w, v.Z)
}

// ReadQuaternion reads a Quaternion (16 bytes).
func ReadQuaternion(r io.Reader, c *endian.Codec) (Quaternion, error) {
	buf := make([]float32, 4)
	if err := c.ReadF32Into(r, buf); err != nil {
		return Quaternion{}, err
	}
	return Quaternion{X: buf[0], Y: buf[1], Z: buf[2], W: buf[3]}, nil
}

// WriteQuaternion writes a Quaternion (16 bytes).
func WriteQuaternion(w io.Writer, c *endian.Codec, q Quaternion) error {
	for _, v := range [4]float32{q.X, q.Y, q.Z, q.W} {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadMat3x3 reads a row-major Mat3x3 (36 bytes).
func ReadMat3x3(r io.Reader, c *endian.Codec) (Mat3x3, error) {
	var m Mat3x3
	if err := c.ReadF32Into(r, m[:]); err != nil {
		return Mat3x3{}, err
	}
	return m, nil
}

// WriteMat3x3 writes a row-major Mat3x3 (36 bytes).
func WriteMat3x3(w io.Writer, c *endian.Codec, m Mat3x3) error {
	for _, v := range m {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadMat4x4 reads a row-major Mat4x4 (64 bytes).
func ReadMat4x4(r io.Reader, c *endian.Codec) (Mat4x4, error) {
	var m Mat4x4
	if err := c.ReadF32Into(r, m[:]); err != nil {
		return Mat4x4{}, err
	}
	return m, nil
}

// WriteMat4x4 writes a row-major Mat4x4 (64 bytes).
func WriteMat4x4(w io.Writer, c *endian.Codec, m Mat4x4) error {
	for _, v := range m {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// ReadColor reads an RGBA float colour (16 bytes).
func ReadColor(r io.Reader, c *endian.Codec) (Color, error) {
	buf := make([]float32, 4)
	if err := c.ReadF32Into(r, buf); err != nil {
		return Color{}, err
	}
	return Color{R: buf[0], G: buf[1], B: buf[2], A: buf[3]}, nil
}

// WriteColor writes an RGBA float colour (16 bytes).
func WriteColor(w io.Writer, c *endian.Codec, col Color) error {
	for _, v := range [4]float32{col.R, col.G, col.B, col.A} {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	return nil
}

// QLerpVector3 bilinearly interpolates the four corner values of a patch.
func QLerpVector3(values [2][2]Vector3, tx, ty float32) Vector3 {
	a := values[0][0]
	b := values[0][1]
	c := values[1][1]
	d := values[1][0]
	return Vector3{
		X: a.X*(1-tx)*(1-ty) + b.X*tx*(1-ty) + c.X*tx*ty + d.X*(1-tx)*ty,
		Y: a.Y*(1-tx)*(1-ty) + b.Y*tx*(1-ty) + c.Y*tx*ty + d.Y*(1-tx)*ty,
		Z: a.Z*(1-tx)*(1-ty) + b.Z*tx*(1-ty) + c.Z*tx*ty + d.Z*(1-tx)*ty,
	}
}

// QLerpVector2 bilinearly interpolates the four corner values of a patch.
func QLerpVector2(values [2][2]Vector2, tx, ty float32) Vector2 {
	a := values[0][0]
	b := values[0][1]
	c := values[1][1]
	d := values[1][0]
	return Vector2{
		X: a.X*(1-tx)*(1-ty) + b.X*tx*(1-ty) + c.X*tx*ty + d.X*(1-tx)*ty,
		Y: a.Y*(1-tx)*(1-ty) + b.Y*tx*(1-ty) + c.Y*tx*ty + d.Y*(1-tx)*ty,
	}
}

// Point is a single mesh vertex: position, texture coordinate, and normal.
type Point struct {
	Vertex   Vector3
	Texcoord Vector2
	Normal   Vector3
}

// Tri is a triangle of three points.
type Tri struct {
	Points [3]Point
}

// Quad is a quadrilateral of four points.
type Quad struct {
	Points [4]Point
}

// Tris splits a Quad into two triangles using corner order (0,2,1) and
// (0,3,2).
func (q Quad) Tris() [2]Tri {
	return [2]Tri{
		{Points: [3]Point{q.Points[0], q.Points[2], q.Points[1]}},
		{Points: [3]Point{q.Points[0], q.Points[3], q.Points[2]}},
	}
}

// TransformHeaderBase is the 96-byte reduced transformation header used by
// asset types that carry their own item-type/item-flags tags as explicit
// fields instead of folding them into the header itself (hfog, camera,
// skin, mesh, ...). It holds the same four opaque floats, 4x4 transform,
// and 16 junk bytes as TransformationHeader, but stops there.
type TransformHeaderBase struct {
	Floats    [4]float32
	Transform Mat4x4
	Junk      [16]byte
}

// ReadTransformHeaderBase reads a TransformHeaderBase (96 bytes).
func ReadTransformHeaderBase(r io.Reader, c *endian.Codec) (TransformHeaderBase, error) {
	var h TransformHeaderBase
	if err := c.ReadF32Into(r, h.Floats[:]); err != nil {
		return h, err
	}
	transform, err := ReadMat4x4(r, c)
	if err != nil {
		return h, err
	}
	h.Transform = transform
	if err := c.ReadExact(r, h.Junk[:]); err != nil {
		return h, err
	}
	return h, nil
}

// WriteTransformHeaderBase writes a TransformHeaderBase (96 bytes).
func WriteTransformHeaderBase(w io.Writer, c *endian.Codec, h TransformHeaderBase) error {
	for _, v := range h.Floats {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	if err := WriteMat4x4(w, c, h.Transform); err != nil {
		return err
	}
	return c.WriteBytes(w, h.Junk[:])
}

// TransformationHeader is the 100-byte header carried by most spatial asset
// types: four opaque floats, a 4x4 transform, 16 junk bytes, and a pair of
// item-type tags.
type TransformationHeader struct {
	Floats      [4]float32
	Transform   Mat4x4
	Junk        [16]byte
	ItemType    uint16
	ItemSubtype uint16
}

// ReadTransformationHeader reads a TransformationHeader (100 bytes).
func ReadTransformationHeader(r io.Reader, c *endian.Codec) (TransformationHeader, error) {
	var h TransformationHeader
	if err := c.ReadF32Into(r, h.Floats[:]); err != nil {
		return h, err
	}
	transform, err := ReadMat4x4(r, c)
	if err != nil {
		return h, err
	}
	h.Transform = transform
	if err := c.ReadExact(r, h.Junk[:]); err != nil {
		return h, err
	}
	itemType, err := c.ReadU16(r)
	if err != nil {
		return h, err
	}
	itemSubtype, err := c.ReadU16(r)
	if err != nil {
		return h, err
	}
	h.ItemType = itemType
	h.ItemSubtype = itemSubtype
	return h, nil
}

// WriteTransformationHeader writes a TransformationHeader (100 bytes).
func WriteTransformationHeader(w io.Writer, c *endian.Codec, h TransformationHeader) error {
	for _, v := range h.Floats {
		if err := c.WriteF32(w, v); err != nil {
			return err
		}
	}
	if err := WriteMat4x4(w, c, h.Transform); err != nil {
		return err
	}
	if err := c.WriteBytes(w, h.Junk[:]); err != nil {
		return err
	}
	if err := c.WriteU16(w, h.ItemType); err != nil {
		return err
	}
	return c.WriteU16(w, h.ItemSubtype)
}
