// Package spline decodes the Spline asset: a piecewise-cubic path made of
// control vertices grouped into sections, each section holding eight fixed
// subsections of two points and an arc length.
package spline

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/variant"
	"github.com/brinepack/totemkit/vecmath"
)

// Subsection is one eighth of a Section: two control points and the arc
// length between them.
type Subsection struct {
	Point1           vecmath.Vector3
	Point2           vecmath.Vector3
	SubsectionLength float32
}

// Section is a run of eight Subsections between two named path control
// points.
type Section struct {
	P1            uint32
	P2            uint32
	P1T           uint32
	P2T           uint32
	Unk           uint32
	SectionLength float32
	Subsections   [8]Subsection
}

// Spline is a piecewise-cubic path, such as a camera rail or patrol route.
type Spline struct {
	Transform vecmath.TransformationHeader
	Vertices  []vecmath.Vector3
	Sections  []Section
	Unk4      [4]float32
	Length    float32
}

func readSubsection(r io.Reader, c *endian.Codec) (Subsection, error) {
	var s Subsection
	var err error
	if s.Point1, err = vecmath.ReadVector3(r, c); err != nil {
		return Subsection{}, err
	}
	if s.Point2, err = vecmath.ReadVector3(r, c); err != nil {
		return Subsection{}, err
	}
	if s.SubsectionLength, err = c.ReadF32(r); err != nil {
		return Subsection{}, err
	}
	return s, nil
}

func writeSubsection(w io.Writer, c *endian.Codec, s Subsection) error {
	if err := vecmath.WriteVector3(w, c, s.Point1); err != nil {
		return err
	}
	if err := vecmath.WriteVector3(w, c, s.Point2); err != nil {
		return err
	}
	return c.WriteF32(w, s.SubsectionLength)
}

func readSection(r io.Reader, c *endian.Codec) (Section, error) {
	var s Section
	var err error
	if s.P1, err = c.ReadU32(r); err != nil {
		return Section{}, err
	}
	if s.P2, err = c.ReadU32(r); err != nil {
		return Section{}, err
	}
	if s.P1T, err = c.ReadU32(r); err != nil {
		return Section{}, err
	}
	if s.P2T, err = c.ReadU32(r); err != nil {
		return Section{}, err
	}
	if s.Unk, err = c.ReadU32(r); err != nil {
		return Section{}, err
	}
	if s.SectionLength, err = c.ReadF32(r); err != nil {
		return Section{}, err
	}
	for i := range s.Subsections {
		if s.Subsections[i], err = readSubsection(r, c); err != nil {
			return Section{}, err
		}
	}
	return s, nil
}

func writeSection(w io.Writer, c *endian.Codec, s Section) error {
	if err := c.WriteU32(w, s.P1); err != nil {
		return err
	}
	if err := c.WriteU32(w, s.P2); err != nil {
		return err
	}
	if err := c.WriteU32(w, s.P1T); err != nil {
		return err
	}
	if err := c.WriteU32(w, s.P2T); err != nil {
		return err
	}
	if err := c.WriteU32(w, s.Unk); err != nil {
		return err
	}
	if err := c.WriteF32(w, s.SectionLength); err != nil {
		return err
	}
	for _, sub := range s.Subsections {
		if err := writeSubsection(w, c, sub); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom decodes a Spline.
func ReadFrom(r io.Reader, c *endian.Codec) (Spline, error) {
	var s Spline
	var err error
	if s.Transform, err = vecmath.ReadTransformationHeader(r, c); err != nil {
		return Spline{}, err
	}
	vertexCount, err := c.ReadU32(r)
	if err != nil {
		return Spline{}, err
	}
	s.Vertices = make([]vecmath.Vector3, vertexCount)
	for i := range s.Vertices {
		if s.Vertices[i], err = vecmath.ReadVector3(r, c); err != nil {
			return Spline{}, err
		}
	}
	sectionCount, err := c.ReadU32(r)
	if err != nil {
		return Spline{}, err
	}
	s.Sections = make([]Section, sectionCount)
	for i := range s.Sections {
		if s.Sections[i], err = readSection(r, c); err != nil {
			return Spline{}, err
		}
	}
	if err = c.ReadF32Into(r, s.Unk4[:]); err != nil {
		return Spline{}, err
	}
	if s.Length, err = c.ReadF32(r); err != nil {
		return Spline{}, err
	}
	return s, nil
}

// WriteTo encodes a Spline.
func (s Spline) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := vecmath.WriteTransformationHeader(w, c, s.Transform); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(s.Vertices))); err != nil {
		return err
	}
	for _, v := range s.Vertices {
		if err := vecmath.WriteVector3(w, c, v); err != nil {
			return err
		}
	}
	if err := c.WriteU32(w, uint32(len(s.Sections))); err != nil {
		return err
	}
	for _, sec := range s.Sections {
		if err := writeSection(w, c, sec); err != nil {
			return err
		}
	}
	for _, f := range s.Unk4 {
		if err := c.WriteF32(w, f); err != nil {
			return err
		}
	}
	return c.WriteF32(w, s.Length)
}

// ControlPoints returns the spline's control points: the first subsection's
// start point, followed by every subsection's end point in order.
func (s Spline) ControlPoints() []vecmath.Vector3 {
	if len(s.Sections) == 0 {
		return nil
	}
	points := make([]vecmath.Vector3, 0, len(s.Sections)*8+1)
	points = append(points, s.Sections[0].Subsections[0].Point1)
	for _, section := range s.Sections {
		for _, sub := range section.Subsections {
			points = append(points, sub.Point2)
		}
	}
	return points
}

// SectionStops returns the control point at the start of the spline
// followed by the end point of each section, i.e. one point per named
// path control point rather than per subsection.
func (s Spline) SectionStops() []vecmath.Vector3 {
	if len(s.Sections) == 0 {
		return nil
	}
	points := make([]vecmath.Vector3, 0, len(s.Sections)+1)
	points = append(points, s.Sections[0].Subsections[0].Point1)
	for _, section := range s.Sections {
		points = append(points, section.Subsections[7].Point2)
	}
	return points
}

// Structure exposes Spline's length as a structured variant; the section
// list is exposed through ControlPoints/SectionStops instead of the
// reflective tree since its subsection nesting has no direct variant
// equivalent. The vertex list is exposed by neither.
func (s Spline) Structure() *variant.Variant {
	return variant.NewStruct([]variant.StructField{
		{Name: "length", Value: variant.NewFloat(s.Length)},
	})
}
