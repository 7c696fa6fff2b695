// Package bitmap decodes the Bitmap asset: a console texture stored in one
// of several packed pixel formats (4-bit/8-bit indexed, RGB565, A3RGB5,
// interleaved ARGB8888, or linear RGB888), each block-swizzled for the
// target GPU's tiled memory layout except the linear RGB888 path.
package bitmap

import (
	"io"

	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/endian"
)

// Pixel format tags.
const (
	FormatC4       uint8 = 1
	FormatC8       uint8 = 2
	FormatRGB565   uint8 = 8
	FormatA3RGB565 uint8 = 10
	FormatARGB8888 uint8 = 12
	FormatRGB888   uint8 = 13
)

// Palette format tags, meaningful only alongside FormatC4/FormatC8.
const (
	PaletteA3RGB5   uint8 = 1
	PaletteRGB565   uint8 = 2
	PaletteRGBA8888 uint8 = 3
)

// AlphaLevel summarizes how much the alpha channel actually varies, a hint
// carried alongside the format rather than derived from the pixels.
type AlphaLevel uint8

const (
	AlphaOpaque AlphaLevel = iota // alpha is always 255
	AlphaBit                      // alpha is always 0 or 255
	AlphaBlend                    // alpha can be any value
)

// Color is a straight 8-bit-per-channel RGBA pixel.
type Color struct {
	R, G, B, A uint8
}

// Bitmap is a decoded, un-swizzled texture: Data is always in linear
// row-major order regardless of the on-disk block layout.
type Bitmap struct {
	Data   []Color
	Alpha  AlphaLevel
	Width  uint32
	Height uint32
}

func colorFromRGB565(v uint16) Color {
	red := uint8((v & 0b11111_000000_00000) >> 8)
	green := uint8((v & 0b00000_111111_00000) >> 3)
	blue := uint8((v & 0b00000_000000_11111) << 3)
	return Color{
		R: red | (red >> 5),
		G: green | (green >> 6),
		B: blue | (blue >> 5),
		A: 255,
	}
}

func colorFromA3RGB5(v uint16) Color {
	if v&0b1000000000000000 != 0 {
		red := uint8((v & 0b011111_00000_00000) >> 7)
		green := uint8((v & 0b000000_11111_00000) >> 2)
		blue := uint8((v & 0b000000_00000_11111) << 3)
		return Color{
			R: red | (red >> 5),
			G: green | (green >> 5),
			B: blue | (blue >> 5),
			A: 255,
		}
	}
	alpha := uint8((v & 0b0111000000000000) >> 7)
	red := uint8((v & 0b0000111100000000) >> 4)
	green := uint8(v & 0b0000000011110000)
	blue := uint8((v & 0b0000000000001111) << 4)
	return Color{
		R: red | (red >> 4),
		G: green | (green >> 4),
		B: blue | (blue >> 4),
		A: alpha | (alpha >> 3) | (alpha >> 6),
	}
}

func colorFromARGB8888(v uint32) Color {
	return Color{
		A: uint8(v >> 24),
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

func colorFromRGBA8888(v uint32) Color {
	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

func colorFromRGB888(v uint32) Color {
	return Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

// chunkIndex maps a linear block-scan position back to its row-major pixel
// index, undoing the GPU's tiled memory layout.
func chunkIndex(index, blockWidth, blockHeight, imageWidth int) int {
	blockSize := blockWidth * blockHeight
	blocksPerRow := imageWidth / blockWidth
	blockI := index % blockSize
	blockID := index / blockSize
	blockCol := blockID % blocksPerRow
	blockRow := blockID / blocksPerRow
	ix := blockCol*blockWidth + blockI%blockWidth
	iy := blockRow*blockHeight + blockI/blockWidth
	return iy*imageWidth + ix
}

// arrangeBlocks un-swizzles data (stored in block-tiled order) into linear
// row-major order. If the image is exactly one block wide, the data is
// already linear and is returned unchanged.
func arrangeBlocks(data []Color, blockWidth, blockHeight, imageWidth, imageHeight int) ([]Color, error) {
	if len(data) != imageWidth*imageHeight {
		return nil, chumerr.New(chumerr.KindInvalidValue, "Bitmap", "data", nil)
	}
	if blockWidth == 0 || blockHeight == 0 {
		return nil, chumerr.New(chumerr.KindInvalidValue, "Bitmap", "block size", nil)
	}
	if imageWidth%blockWidth != 0 || imageHeight%blockHeight != 0 {
		return nil, chumerr.New(chumerr.KindInvalidValue, "Bitmap", "dimensions", nil)
	}
	if imageWidth == blockWidth {
		return data, nil
	}
	out := make([]Color, imageWidth*imageHeight)
	for i, col := range data {
		out[chunkIndex(i, blockWidth, blockHeight, imageWidth)] = col
	}
	return out, nil
}

func readPalette(r io.Reader, c *endian.Codec, paletteFormat uint8, num int) ([]Color, error) {
	switch paletteFormat {
	case PaletteA3RGB5:
		raw := make([]uint16, num)
		if err := c.ReadU16Into(r, raw); err != nil {
			return nil, err
		}
		out := make([]Color, num)
		for i, v := range raw {
			out[i] = colorFromA3RGB5(v)
		}
		return out, nil
	case PaletteRGB565:
		raw := make([]uint16, num)
		if err := c.ReadU16Into(r, raw); err != nil {
			return nil, err
		}
		out := make([]Color, num)
		for i, v := range raw {
			out[i] = colorFromRGB565(v)
		}
		return out, nil
	case PaletteRGBA8888:
		raw := make([]uint32, num)
		if err := c.ReadU32Into(r, raw); err != nil {
			return nil, err
		}
		out := make([]Color, num)
		for i, v := range raw {
			out[i] = colorFromRGBA8888(v)
		}
		return out, nil
	default:
		return nil, chumerr.New(chumerr.KindInvalidEnum, "Bitmap", "palette_format", nil)
	}
}

// readU32Interleaved decodes FORMAT_ARGB8888's 16-pixel interleaved blocks:
// each 64-byte block packs 16 pixels' alpha/red bytes first, then 16
// green/blue byte pairs, rather than one ARGB8888 word per pixel.
func readU32Interleaved(r io.Reader, c *endian.Codec, num int) ([]Color, error) {
	if num%16 != 0 {
		return nil, chumerr.New(chumerr.KindInvalidValue, "Bitmap", "pixel count", nil)
	}
	out := make([]Color, 0, num)
	buf := make([]byte, 64)
	for i := 0; i < num/16; i++ {
		if err := c.ReadU8Into(r, buf); err != nil {
			return nil, err
		}
		for j := 0; j < 16; j++ {
			out = append(out, Color{
				A: buf[0+j*2],
				R: buf[1+j*2],
				G: buf[32+j*2],
				B: buf[33+j*2],
			})
		}
	}
	return out, nil
}

// ReadFrom decodes a Bitmap, un-swizzling its pixel data into linear
// row-major order. Six bytes of format metadata (flags, unk, filter) are
// read and discarded; only format, palette_format, and opacity_level drive
// decoding.
func ReadFrom(r io.Reader, c *endian.Codec) (Bitmap, error) {
	width, err := c.ReadU32(r)
	if err != nil {
		return Bitmap{}, err
	}
	height, err := c.ReadU32(r)
	if err != nil {
		return Bitmap{}, err
	}
	if err = c.SkipNBytes(r, 4); err != nil {
		return Bitmap{}, err
	}
	format, err := c.ReadU8(r)
	if err != nil {
		return Bitmap{}, err
	}
	if _, err = c.ReadU8(r); err != nil { // flags
		return Bitmap{}, err
	}
	paletteFormat, err := c.ReadU8(r)
	if err != nil {
		return Bitmap{}, err
	}
	opacityLevel, err := c.ReadU8(r)
	if err != nil {
		return Bitmap{}, err
	}
	if _, err = c.ReadU8(r); err != nil { // unk
		return Bitmap{}, err
	}
	if _, err = c.ReadU8(r); err != nil { // filter
		return Bitmap{}, err
	}

	w, h := int(width), int(height)
	var data []Color
	switch format {
	case FormatC4:
		indices := make([]byte, w*h)
		if err = c.ReadU4Into(r, indices); err != nil {
			return Bitmap{}, err
		}
		palette, err := readPalette(r, c, paletteFormat, 16)
		if err != nil {
			return Bitmap{}, err
		}
		raw := make([]Color, len(indices))
		for i, idx := range indices {
			raw[i] = palette[idx]
		}
		if data, err = arrangeBlocks(raw, 8, 8, w, h); err != nil {
			return Bitmap{}, err
		}
	case FormatC8:
		indices := make([]byte, w*h)
		if err = c.ReadU8Into(r, indices); err != nil {
			return Bitmap{}, err
		}
		palette, err := readPalette(r, c, paletteFormat, 256)
		if err != nil {
			return Bitmap{}, err
		}
		raw := make([]Color, len(indices))
		for i, idx := range indices {
			raw[i] = palette[idx]
		}
		if data, err = arrangeBlocks(raw, 8, 4, w, h); err != nil {
			return Bitmap{}, err
		}
	case FormatRGB565:
		raw := make([]uint16, w*h)
		if err = c.ReadU16Into(r, raw); err != nil {
			return Bitmap{}, err
		}
		colors := make([]Color, len(raw))
		for i, v := range raw {
			colors[i] = colorFromRGB565(v)
		}
		if data, err = arrangeBlocks(colors, 4, 4, w, h); err != nil {
			return Bitmap{}, err
		}
	case FormatA3RGB565:
		raw := make([]uint16, w*h)
		if err = c.ReadU16Into(r, raw); err != nil {
			return Bitmap{}, err
		}
		colors := make([]Color, len(raw))
		for i, v := range raw {
			colors[i] = colorFromA3RGB5(v)
		}
		if data, err = arrangeBlocks(colors, 4, 4, w, h); err != nil {
			return Bitmap{}, err
		}
	case FormatARGB8888:
		colors, err := readU32Interleaved(r, c, w*h)
		if err != nil {
			return Bitmap{}, err
		}
		if data, err = arrangeBlocks(colors, 4, 4, w, h); err != nil {
			return Bitmap{}, err
		}
	case FormatRGB888:
		raw := make([]uint32, w*h)
		if err = c.ReadU24Into(r, raw); err != nil {
			return Bitmap{}, err
		}
		data = make([]Color, len(raw))
		for i, v := range raw {
			data[i] = colorFromRGB888(v)
		}
	default:
		return Bitmap{}, chumerr.New(chumerr.KindInvalidEnum, "Bitmap", "format", nil)
	}

	var alpha AlphaLevel
	switch opacityLevel {
	case 0:
		alpha = AlphaOpaque
	case 1:
		alpha = AlphaBit
	case 2:
		alpha = AlphaBlend
	default:
		return Bitmap{}, chumerr.New(chumerr.KindInvalidEnum, "Bitmap", "opacity_level", nil)
	}

	return Bitmap{Data: data, Alpha: alpha, Width: width, Height: height}, nil
}
