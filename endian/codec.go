package endian

import (
	"io"
	"math"
)

// Codec reads and writes the fixed-width primitives used throughout totemkit's
// binary formats, using a single EndianEngine for every multi-byte value.
//
// It is the Go counterpart of the original format's two-variant "NGC or PS2"
// switch: instead of branching on a platform tag at every call site, callers
// pick the engine once and the Codec closes over it.
type Codec struct {
	engine EndianEngine
}

// NewCodec returns a Codec that reads and writes values using engine.
func NewCodec(engine EndianEngine) *Codec {
	return &Codec{engine: engine}
}

// Engine returns the underlying EndianEngine.
func (c *Codec) Engine() EndianEngine {
	return c.engine
}

func (c *Codec) ReadU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (c *Codec) ReadI8(r io.Reader) (int8, error) {
	v, err := c.ReadU8(r)
	return int8(v), err
}

func (c *Codec) ReadU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return c.engine.Uint16(buf[:]), nil
}

func (c *Codec) ReadI16(r io.Reader) (int16, error) {
	v, err := c.ReadU16(r)
	return int16(v), err
}

// ReadU24 reads a 24-bit unsigned value, widened into a uint32.
func (c *Codec) ReadU24(r io.Reader) (uint32, error) {
	var buf [3]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	if IsBigEndian(c.engine) {
		return uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]), nil
	}
	return uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16, nil
}

// ReadI24 reads a 24-bit value and sign-extends it into an int32.
func (c *Codec) ReadI24(r io.Reader) (int32, error) {
	v, err := c.ReadU24(r)
	if err != nil {
		return 0, err
	}
	if v&0x800000 != 0 {
		v |= 0xFF000000
	}
	return int32(v), nil
}

func (c *Codec) ReadU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return c.engine.Uint32(buf[:]), nil
}

func (c *Codec) ReadI32(r io.Reader) (int32, error) {
	v, err := c.ReadU32(r)
	return int32(v), err
}

func (c *Codec) ReadF32(r io.Reader) (float32, error) {
	v, err := c.ReadU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadExact reads len(buf) bytes from r, filling buf.
func (c *Codec) ReadExact(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return err
}

// ReadToEnd reads every remaining byte from r.
func (c *Codec) ReadToEnd(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

// SkipNBytes discards n bytes from r without allocating a buffer for them.
func (c *Codec) SkipNBytes(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}

// ReadU4Into reads len(dst) packed nibbles, high nibble first, matching the
// original format's read_u4_into: each source byte yields two nibbles, with a
// final odd nibble discarding the low half of its source byte.
func (c *Codec) ReadU4Into(r io.Reader, dst []byte) error {
	pairs := len(dst) / 2
	for i := 0; i < pairs; i++ {
		v, err := c.ReadU8(r)
		if err != nil {
			return err
		}
		dst[i*2] = v >> 4
		dst[i*2+1] = v & 0x0F
	}
	if len(dst)%2 == 1 {
		v, err := c.ReadU8(r)
		if err != nil {
			return err
		}
		dst[len(dst)-1] = v >> 4
	}
	return nil
}

func (c *Codec) ReadU32Into(r io.Reader, dst []uint32) error {
	for i := range dst {
		v, err := c.ReadU32(r)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *Codec) ReadI32Into(r io.Reader, dst []int32) error {
	for i := range dst {
		v, err := c.ReadI32(r)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *Codec) ReadU16Into(r io.Reader, dst []uint16) error {
	for i := range dst {
		v, err := c.ReadU16(r)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *Codec) ReadU8Into(r io.Reader, dst []byte) error {
	_, err := io.ReadFull(r, dst)
	return err
}

func (c *Codec) ReadU24Into(r io.Reader, dst []uint32) error {
	for i := range dst {
		v, err := c.ReadU24(r)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *Codec) ReadF32Into(r io.Reader, dst []float32) error {
	for i := range dst {
		v, err := c.ReadF32(r)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

func (c *Codec) WriteU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func (c *Codec) WriteI8(w io.Writer, v int8) error {
	return c.WriteU8(w, uint8(v))
}

func (c *Codec) WriteU16(w io.Writer, v uint16) error {
	buf := make([]byte, 2)
	c.engine.PutUint16(buf, v)
	_, err := w.Write(buf)
	return err
}

func (c *Codec) WriteI16(w io.Writer, v int16) error {
	return c.WriteU16(w, uint16(v))
}

func (c *Codec) WriteU32(w io.Writer, v uint32) error {
	buf := make([]byte, 4)
	c.engine.PutUint32(buf, v)
	_, err := w.Write(buf)
	return err
}

func (c *Codec) WriteI32(w io.Writer, v int32) error {
	return c.WriteU32(w, uint32(v))
}

func (c *Codec) WriteF32(w io.Writer, v float32) error {
	return c.WriteU32(w, math.Float32bits(v))
}

// WriteU24 writes the low 24 bits of v.
func (c *Codec) WriteU24(w io.Writer, v uint32) error {
	var buf [3]byte
	if IsBigEndian(c.engine) {
		buf[0] = byte(v >> 16)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v)
	} else {
		buf[0] = byte(v)
		buf[1] = byte(v >> 8)
		buf[2] = byte(v >> 16)
	}
	_, err := w.Write(buf[:])
	return err
}

func (c *Codec) WriteI24(w io.Writer, v int32) error {
	return c.WriteU24(w, uint32(v))
}

func (c *Codec) WriteBytes(w io.Writer, buf []byte) error {
	_, err := w.Write(buf)
	return err
}

// IsBigEndian reports whether engine orders bytes the same way binary.BigEndian does.
func IsBigEndian(engine EndianEngine) bool {
	var buf [2]byte
	engine.PutUint16(buf[:], 0x0102)
	return buf[0] == 0x01
}
