// Package materialanim decodes the MaterialAnimation asset: ten parallel
// keyframe tracks driving a material's texture index, UV scroll/stretch,
// rotation, RGBA tint, and alpha over time, each independently interpolated
// discrete or linear. Read-only, matching the reference format having no
// write-back path for this asset.
package materialanim

import (
	"io"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/vecmath"
)

// Interpolation selects how a Track blends between two keyframes.
type Interpolation int

const (
	InterpDiscrete Interpolation = iota + 1
	InterpLinear
	InterpUnknown
	InterpInvalid
)

func interpFromU16(v uint16) Interpolation {
	switch v {
	case 1:
		return InterpDiscrete
	case 2:
		return InterpLinear
	case 3:
		return InterpUnknown
	default:
		return InterpInvalid
	}
}

// TrackFrame is one keyframe: the tick it fires on and its payload.
type TrackFrame[T any] struct {
	Frame uint16
	Data  T
}

// Track is a keyframe list sharing one interpolation mode.
type Track[T any] struct {
	Interp Interpolation
	Frames []TrackFrame[T]
}

func readTrack[T any](r io.Reader, c *endian.Codec, readValue func(io.Reader, *endian.Codec) (T, error)) (Track[T], error) {
	interpRaw, err := c.ReadU16(r)
	if err != nil {
		return Track[T]{}, err
	}
	count, err := c.ReadU32(r)
	if err != nil {
		return Track[T]{}, err
	}
	frames := make([]TrackFrame[T], count)
	for i := range frames {
		if frames[i].Frame, err = c.ReadU16(r); err != nil {
			return Track[T]{}, err
		}
		if err = c.SkipNBytes(r, 2); err != nil {
			return Track[T]{}, err
		}
		if frames[i].Data, err = readValue(r, c); err != nil {
			return Track[T]{}, err
		}
	}
	return Track[T]{Interp: interpFromU16(interpRaw), Frames: frames}, nil
}

// ValueAt samples the track at the given frame tick, using lerp to blend
// between the straddling keyframes when Interp is InterpLinear and holding
// the preceding keyframe's value otherwise. An empty track returns the zero
// value.
func (t Track[T]) ValueAt(frame float32, lerp func(a, b T, f float32) T) T {
	var zero T
	if len(t.Frames) == 0 {
		return zero
	}
	if frame <= float32(t.Frames[0].Frame) {
		return t.Frames[0].Data
	}
	last := t.Frames[len(t.Frames)-1]
	if frame >= float32(last.Frame) {
		return last.Data
	}
	for i := 0; i < len(t.Frames)-1; i++ {
		a, b := t.Frames[i], t.Frames[i+1]
		if frame >= float32(a.Frame) && frame <= float32(b.Frame) {
			if t.Interp != InterpLinear || lerp == nil || b.Frame == a.Frame {
				return a.Data
			}
			f := (frame - float32(a.Frame)) / float32(b.Frame-a.Frame)
			return lerp(a.Data, b.Data, f)
		}
	}
	return zero
}

// Color4 is an RGBA tint track value.
type Color4 [4]float32

// MaterialAnimation is a material's keyframed texture/UV/color animation.
type MaterialAnimation struct {
	Length        float32
	MaterialID    int32
	TrackTexture  Track[int32]
	TrackScroll   Track[vecmath.Vector2]
	TrackStretch  Track[vecmath.Vector2]
	TrackRotation Track[float32]
	TrackColor    Track[Color4]
	TrackAlpha    Track[float32]
}

func readI32Value(r io.Reader, c *endian.Codec) (int32, error) { return c.ReadI32(r) }
func readF32Value(r io.Reader, c *endian.Codec) (float32, error) { return c.ReadF32(r) }

func readVector2Value(r io.Reader, c *endian.Codec) (vecmath.Vector2, error) {
	return vecmath.ReadVector2(r, c)
}

func readVector3Value(r io.Reader, c *endian.Codec) (vecmath.Vector3, error) {
	return vecmath.ReadVector3(r, c)
}

func readColor4Value(r io.Reader, c *endian.Codec) (Color4, error) {
	var v Color4
	err := c.ReadF32Into(r, v[:])
	return v, err
}

func readU32Value(r io.Reader, c *endian.Codec) (uint32, error) { return c.ReadU32(r) }

// ReadFrom decodes a MaterialAnimation. Three trailing u32 tracks and one
// Vector3 track carried by the source format are read and discarded; none
// of this module's asset graph references them.
func ReadFrom(r io.Reader, c *endian.Codec) (MaterialAnimation, error) {
	var m MaterialAnimation
	var err error
	if err = c.SkipNBytes(r, 1); err != nil {
		return MaterialAnimation{}, err
	}
	if m.Length, err = c.ReadF32(r); err != nil {
		return MaterialAnimation{}, err
	}
	if m.TrackTexture, err = readTrack(r, c, readI32Value); err != nil {
		return MaterialAnimation{}, err
	}
	if m.TrackScroll, err = readTrack(r, c, readVector2Value); err != nil {
		return MaterialAnimation{}, err
	}
	if m.TrackStretch, err = readTrack(r, c, readVector2Value); err != nil {
		return MaterialAnimation{}, err
	}
	if m.TrackRotation, err = readTrack(r, c, readF32Value); err != nil {
		return MaterialAnimation{}, err
	}
	if m.TrackColor, err = readTrack(r, c, readColor4Value); err != nil {
		return MaterialAnimation{}, err
	}
	if _, err = readTrack(r, c, readVector3Value); err != nil { // track_unknown
		return MaterialAnimation{}, err
	}
	if m.TrackAlpha, err = readTrack(r, c, readF32Value); err != nil {
		return MaterialAnimation{}, err
	}
	if _, err = readTrack(r, c, readU32Value); err != nil { // track_unk1
		return MaterialAnimation{}, err
	}
	if _, err = readTrack(r, c, readU32Value); err != nil { // track_unk2
		return MaterialAnimation{}, err
	}
	if _, err = readTrack(r, c, readU32Value); err != nil { // track_unk3
		return MaterialAnimation{}, err
	}
	if m.MaterialID, err = c.ReadI32(r); err != nil {
		return MaterialAnimation{}, err
	}
	return m, nil
}

// LerpVector2 linearly interpolates two Vector2 track values.
func LerpVector2(a, b vecmath.Vector2, f float32) vecmath.Vector2 {
	return vecmath.Vector2{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
}

// LerpFloat32 linearly interpolates two scalar track values.
func LerpFloat32(a, b float32, f float32) float32 {
	return a + (b-a)*f
}

// LerpColor4 linearly interpolates two RGBA track values componentwise.
func LerpColor4(a, b Color4, f float32) Color4 {
	var out Color4
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*f
	}
	return out
}
