// Package surface decodes the SurfaceObject asset: a bezier-patch surface
// made of boundary curves referencing a shared vertex pool, which can be
// tessellated into a quad mesh for rendering. Read-only, matching the
// reference format having no write-back path for this asset.
package surface

import (
	"fmt"
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/vecmath"
)

// curveOrderMask covers the four bits generate_meshes actually tests
// (0b10<<i for i in 0..4); any other bit set is a malformed patch.
const curveOrderMask = 0b11110

// Curve is a cubic bezier curve: two endpoints and their tangent handles,
// all indices into a SurfaceObject's Vertices pool.
type Curve struct {
	P1, P2   uint16
	P1T, P2T uint16
}

// Surface is one bezier patch: four boundary curves (referenced by index
// into a SurfaceObject's Curves), each paired with a corner texcoord and
// normal, plus the material the patch is drawn with.
type Surface struct {
	Texcoords  [4]vecmath.Vector2
	NormalIDs  [4]uint16
	CurveIDs   [4]uint16
	CurveOrder uint32
	MaterialID int32
}

// SurfaceObject is a bezier-patch surface.
type SurfaceObject struct {
	Vertices []vecmath.Vector3
	Surfaces []Surface
	Curves   []Curve
	Normals  []vecmath.Vector3
}

// ReadFrom decodes a SurfaceObject. A 96-byte header and two following u16s
// are skipped; they carry no fields this module's asset graph references.
// Two unknown vertex-shaped tables (24 bytes per entry) between the vertex
// pool and the surface list are skipped as well.
func ReadFrom(r io.Reader, c *endian.Codec) (SurfaceObject, error) {
	var s SurfaceObject
	if err := c.SkipNBytes(r, 96); err != nil {
		return SurfaceObject{}, err
	}
	if _, err := c.ReadU16(r); err != nil { // unknown2
		return SurfaceObject{}, err
	}
	if _, err := c.ReadU16(r); err != nil { // unknown3
		return SurfaceObject{}, err
	}

	numVertices, err := c.ReadU32(r)
	if err != nil {
		return SurfaceObject{}, err
	}
	s.Vertices = make([]vecmath.Vector3, numVertices)
	for i := range s.Vertices {
		if s.Vertices[i], err = vecmath.ReadVector3(r, c); err != nil {
			return SurfaceObject{}, err
		}
	}

	numUnk0, err := c.ReadU32(r)
	if err != nil {
		return SurfaceObject{}, err
	}
	if err = c.SkipNBytes(r, int64(numUnk0)*24); err != nil {
		return SurfaceObject{}, err
	}
	numUnk1, err := c.ReadU32(r)
	if err != nil {
		return SurfaceObject{}, err
	}
	if err = c.SkipNBytes(r, int64(numUnk1)*24); err != nil {
		return SurfaceObject{}, err
	}

	numSurfaces, err := c.ReadU32(r)
	if err != nil {
		return SurfaceObject{}, err
	}
	s.Surfaces = make([]Surface, numSurfaces)
	for i := range s.Surfaces {
		surf := &s.Surfaces[i]
		for j := range surf.Texcoords {
			if surf.Texcoords[j], err = vecmath.ReadVector2(r, c); err != nil {
				return SurfaceObject{}, err
			}
		}
		if err = c.SkipNBytes(r, 12*4); err != nil {
			return SurfaceObject{}, err
		}
		if err = c.ReadU16Into(r, surf.NormalIDs[:]); err != nil {
			return SurfaceObject{}, err
		}
		if err = c.ReadU16Into(r, surf.CurveIDs[:]); err != nil {
			return SurfaceObject{}, err
		}
		if surf.CurveOrder, err = c.ReadU32(r); err != nil {
			return SurfaceObject{}, err
		}
		if surf.CurveOrder&^uint32(curveOrderMask) != 0 {
			return SurfaceObject{}, fmt.Errorf("surface: curve order %#x has bits set outside the four curve-winding positions", surf.CurveOrder)
		}
		if err = c.SkipNBytes(r, 32+4); err != nil {
			return SurfaceObject{}, err
		}
		if surf.MaterialID, err = c.ReadI32(r); err != nil {
			return SurfaceObject{}, err
		}
	}

	numCurves, err := c.ReadU32(r)
	if err != nil {
		return SurfaceObject{}, err
	}
	s.Curves = make([]Curve, numCurves)
	for i := range s.Curves {
		if s.Curves[i].P1, err = c.ReadU16(r); err != nil {
			return SurfaceObject{}, err
		}
		if s.Curves[i].P2, err = c.ReadU16(r); err != nil {
			return SurfaceObject{}, err
		}
		if s.Curves[i].P1T, err = c.ReadU16(r); err != nil {
			return SurfaceObject{}, err
		}
		if s.Curves[i].P2T, err = c.ReadU16(r); err != nil {
			return SurfaceObject{}, err
		}
	}

	numNormals, err := c.ReadU32(r)
	if err != nil {
		return SurfaceObject{}, err
	}
	s.Normals = make([]vecmath.Vector3, numNormals)
	for i := range s.Normals {
		if s.Normals[i], err = vecmath.ReadVector3(r, c); err != nil {
			return SurfaceObject{}, err
		}
	}

	return s, nil
}

// boundaryCurve returns a Surface's i-th boundary edge as four control
// points in patch-consistent winding order: bit (i+1) of curve_order
// selects whether the underlying Curve runs forward or is reversed.
func (s SurfaceObject) boundaryCurve(surf Surface, i int) [4]vecmath.Vector3 {
	curve := s.Curves[surf.CurveIDs[i]]
	p1 := s.Vertices[curve.P1]
	p1t := s.Vertices[curve.P1T]
	p2t := s.Vertices[curve.P2T]
	p2 := s.Vertices[curve.P2]
	if surf.CurveOrder&(0b10<<uint(i)) == 0 {
		return [4]vecmath.Vector3{p1, p1t, p2t, p2}
	}
	return [4]vecmath.Vector3{p2, p2t, p1t, p1}
}

// bernstein3 is the i-th cubic Bernstein basis polynomial evaluated at t.
func bernstein3(i int, t float32) float32 {
	u := 1 - t
	switch i {
	case 0:
		return u * u * u
	case 1:
		return 3 * u * u * t
	case 2:
		return 3 * u * t * t
	default:
		return t * t * t
	}
}

func lerpVec2(a, b vecmath.Vector2, t float32) vecmath.Vector2 {
	return vecmath.Vector2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func lerpVec3(a, b vecmath.Vector3, t float32) vecmath.Vector3 {
	return vecmath.Vector3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// bilinear interpolates four corner values (ordered 0,1,2,3 around the
// patch, matching Surface.Texcoords/NormalIDs order) across a u,v grid.
func bilinearVec2(corners [4]vecmath.Vector2, u, v float32) vecmath.Vector2 {
	top := lerpVec2(corners[0], corners[1], u)
	bottom := lerpVec2(corners[3], corners[2], u)
	return lerpVec2(top, bottom, v)
}

func bilinearVec3(corners [4]vecmath.Vector3, u, v float32) vecmath.Vector3 {
	top := lerpVec3(corners[0], corners[1], u)
	bottom := lerpVec3(corners[3], corners[2], u)
	return lerpVec3(top, bottom, v)
}

// bicubicPoint evaluates the tensor-product bicubic bezier surface point at
// (u, v) over a patch's 4x4 control lattice: lattice[i] is the i-th boundary
// curve's four control points (one lattice row per curve), so row index i
// carries the u-direction basis and column index j carries the v-direction
// basis.
func bicubicPoint(lattice [4][4]vecmath.Vector3, u, v float32) vecmath.Vector3 {
	var p vecmath.Vector3
	for i := 0; i < 4; i++ {
		bu := bernstein3(i, u)
		for j := 0; j < 4; j++ {
			w := bu * bernstein3(j, v)
			p.X += w * lattice[i][j].X
			p.Y += w * lattice[i][j].Y
			p.Z += w * lattice[i][j].Z
		}
	}
	return p
}

// Tessellate subdivides every patch into resolution x resolution quads,
// evaluating the bicubic bezier surface over the patch's 4x4 curve-control
// lattice and bilinearly blending the patch's corner texcoords and normals
// across the grid.
func (s SurfaceObject) Tessellate(resolution int) []vecmath.Quad {
	if resolution < 1 {
		resolution = 1
	}
	var quads []vecmath.Quad
	step := 1.0 / float32(resolution)
	for _, surf := range s.Surfaces {
		var lattice [4][4]vecmath.Vector3
		for i := range lattice {
			lattice[i] = s.boundaryCurve(surf, i)
		}
		var normals [4]vecmath.Vector3
		for i, nid := range surf.NormalIDs {
			normals[i] = s.Normals[nid]
		}
		for iu := 0; iu < resolution; iu++ {
			for iv := 0; iv < resolution; iv++ {
				u0, u1 := float32(iu)*step, float32(iu+1)*step
				v0, v1 := float32(iv)*step, float32(iv+1)*step
				quads = append(quads, vecmath.Quad{Points: [4]vecmath.Point{
					{
						Vertex:   bicubicPoint(lattice, u0, v0),
						Texcoord: bilinearVec2(surf.Texcoords, u0, v0),
						Normal:   bilinearVec3(normals, u0, v0),
					},
					{
						Vertex:   bicubicPoint(lattice, u1, v0),
						Texcoord: bilinearVec2(surf.Texcoords, u1, v0),
						Normal:   bilinearVec3(normals, u1, v0),
					},
					{
						Vertex:   bicubicPoint(lattice, u1, v1),
						Texcoord: bilinearVec2(surf.Texcoords, u1, v1),
						Normal:   bilinearVec3(normals, u1, v1),
					},
					{
						Vertex:   bicubicPoint(lattice, u0, v1),
						Texcoord: bilinearVec2(surf.Texcoords, u0, v1),
						Normal:   bilinearVec3(normals, u0, v1),
					},
				}})
			}
		}
	}
	return quads
}
