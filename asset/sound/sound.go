// Package sound decodes and encodes the SoundGcn asset: 4-bit GameCube DSP
// ADPCM audio with a 16-coefficient predictor table searched per encode,
// chosen to minimize reconstruction error the way the original console
// toolchain's encoder did.
package sound

import (
	"io"

	"github.com/brinepack/totemkit/endian"
)

const (
	samplesPerFrame = 14
	bytesPerFrame   = 8
	nibblesPerFrame = 16
	headersPerFrame = nibblesPerFrame - samplesPerFrame
)

// SoundGcn is a GameCube DSP-ADPCM encoded sound clip.
type SoundGcn struct {
	Unk0            uint8
	SampleRate      uint32
	NumADPCMNibbles uint32
	Unk4            uint32
	Coefficients    [16]int16
	FirstHeader     int16
	Unk10           uint32
	Unk11           uint32
	Data            []byte
}

// ReadFrom decodes a SoundGcn. Several fixed-value spacer fields
// (unk0_junk, junk, unk1/unk2/unk3, unk5/unk6/unk7, unk8/unk9) are read and
// discarded; they always round-trip to a fixed constant on write.
func ReadFrom(r io.Reader, c *endian.Codec) (SoundGcn, error) {
	var s SoundGcn
	var err error
	if s.Unk0, err = c.ReadU8(r); err != nil {
		return SoundGcn{}, err
	}
	if err = c.SkipNBytes(r, 3); err != nil { // unk0_junk
		return SoundGcn{}, err
	}
	if s.SampleRate, err = c.ReadU32(r); err != nil {
		return SoundGcn{}, err
	}
	if err = c.SkipNBytes(r, 4); err != nil { // junk
		return SoundGcn{}, err
	}
	dataLength, err := c.ReadU32(r)
	if err != nil {
		return SoundGcn{}, err
	}
	if _, err = c.ReadU32(r); err != nil { // unk1
		return SoundGcn{}, err
	}
	if _, err = c.ReadU32(r); err != nil { // unk2
		return SoundGcn{}, err
	}
	if s.NumADPCMNibbles, err = c.ReadU32(r); err != nil {
		return SoundGcn{}, err
	}
	if _, err = c.ReadU32(r); err != nil { // unk3
		return SoundGcn{}, err
	}
	if s.Unk4, err = c.ReadU32(r); err != nil {
		return SoundGcn{}, err
	}
	if _, err = c.ReadU32(r); err != nil { // unk5
		return SoundGcn{}, err
	}
	if _, err = c.ReadU32(r); err != nil { // unk6
		return SoundGcn{}, err
	}
	if _, err = c.ReadI16(r); err != nil { // unk7
		return SoundGcn{}, err
	}
	for i := range s.Coefficients {
		if s.Coefficients[i], err = c.ReadI16(r); err != nil {
			return SoundGcn{}, err
		}
	}
	if _, err = c.ReadI16(r); err != nil { // unk8
		return SoundGcn{}, err
	}
	if s.FirstHeader, err = c.ReadI16(r); err != nil {
		return SoundGcn{}, err
	}
	if _, err = c.ReadI16(r); err != nil { // unk9
		return SoundGcn{}, err
	}
	if s.Unk10, err = c.ReadU32(r); err != nil {
		return SoundGcn{}, err
	}
	if s.Unk11, err = c.ReadU32(r); err != nil {
		return SoundGcn{}, err
	}
	s.Data = make([]byte, dataLength)
	if err = c.ReadExact(r, s.Data); err != nil {
		return SoundGcn{}, err
	}
	return s, nil
}

// WriteTo encodes a SoundGcn. data_length is derived from len(s.Data)
// rather than stored separately.
func (s SoundGcn) WriteTo(w io.Writer, c *endian.Codec) error {
	if err := c.WriteU8(w, s.Unk0); err != nil {
		return err
	}
	if err := c.WriteBytes(w, make([]byte, 3)); err != nil {
		return err
	}
	if err := c.WriteU32(w, s.SampleRate); err != nil {
		return err
	}
	if err := c.WriteBytes(w, make([]byte, 4)); err != nil {
		return err
	}
	if err := c.WriteU32(w, uint32(len(s.Data))); err != nil {
		return err
	}
	if err := c.WriteU32(w, 0); err != nil { // unk1
		return err
	}
	if err := c.WriteU32(w, 2); err != nil { // unk2
		return err
	}
	if err := c.WriteU32(w, s.NumADPCMNibbles); err != nil {
		return err
	}
	if err := c.WriteU32(w, 2); err != nil { // unk3
		return err
	}
	if err := c.WriteU32(w, s.Unk4); err != nil {
		return err
	}
	if err := c.WriteU32(w, 0); err != nil { // unk5
		return err
	}
	if err := c.WriteU32(w, 0); err != nil { // unk6
		return err
	}
	if err := c.WriteI16(w, 0); err != nil { // unk7
		return err
	}
	for _, v := range s.Coefficients {
		if err := c.WriteI16(w, v); err != nil {
			return err
		}
	}
	if err := c.WriteI16(w, 0); err != nil { // unk8
		return err
	}
	if err := c.WriteI16(w, s.FirstHeader); err != nil {
		return err
	}
	if err := c.WriteI16(w, 0); err != nil { // unk9
		return err
	}
	if err := c.WriteU32(w, s.Unk10); err != nil {
		return err
	}
	if err := c.WriteU32(w, s.Unk11); err != nil {
		return err
	}
	return c.WriteBytes(w, s.Data)
}

func getNibbles(b byte) (hi, lo uint8) {
	return uint8(b >> 4), uint8(b & 0x0F)
}

func getHighNibble(b byte) uint8 {
	return uint8(b >> 4)
}

func getLowNibble(b byte) uint8 {
	return uint8(b & 0x0F)
}

func divUp(a, b int) int {
	return (a + b - 1) / b
}

func clampI16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// Decode expands the clip's raw ADPCM frames into signed 16-bit PCM samples.
func (s SoundGcn) Decode() []int16 {
	var hist1, hist2 int16
	coef := s.Coefficients
	frameCount := len(s.Data) / bytesPerFrame
	numSamples := int(s.NumADPCMNibbles) - frameCount*headersPerFrame
	out := make([]int16, 0, numSamples)

	for iFrame := 0; iFrame < frameCount; iFrame++ {
		index := iFrame * bytesPerFrame
		frame := s.Data[index : index+bytesPerFrame]
		hHigh, hLow := getNibbles(frame[0])
		predictor := int(hHigh)
		scale := int32(1) << hLow
		coef1 := int32(coef[predictor*2])
		coef2 := int32(coef[predictor*2+1])
		samplesToRead := samplesPerFrame
		if remaining := numSamples - len(out); remaining < samplesToRead {
			samplesToRead = remaining
		}
		for iSample := 0; iSample < samplesToRead; iSample++ {
			var nibble uint8
			if iSample%2 == 0 {
				nibble = getHighNibble(frame[1+iSample/2])
			} else {
				nibble = getLowNibble(frame[1+iSample/2])
			}
			sample := int32(nibble)
			if sample >= 8 {
				sample -= 16
			}
			sample = (((scale * sample) << 11) + 1024 + (coef1*int32(hist1) + coef2*int32(hist2))) >> 11
			real := clampI16(sample)
			hist2 = hist1
			hist1 = real
			out = append(out, real)
		}
	}
	return out
}

// Encode builds a SoundGcn from signed 16-bit PCM samples, searching the
// 8-candidate predictor set every frame can choose from the same way the
// reference DSP tool does, and storing the 8 winning coefficient pairs.
func Encode(samples []int16, sampleRate uint32) SoundGcn {
	coef := calculateCoefficients(samples)
	frameCount := divUp(len(samples), samplesPerFrame)
	data := make([]byte, 0, frameCount*bytesPerFrame)
	pcmBuffer := make([]int16, 2+samplesPerFrame)

	for iFrame := 0; iFrame < frameCount; iFrame++ {
		iPCM := iFrame * samplesPerFrame
		remaining := len(samples) - iPCM
		numSamples := samplesPerFrame
		if remaining < numSamples {
			numSamples = remaining
		}
		for i := 2; i < 2+samplesPerFrame; i++ {
			pcmBuffer[i] = 0
		}
		for i := 0; i < numSamples; i++ {
			pcmBuffer[i+2] = samples[iPCM+i]
		}
		data = append(data, encodeFrame(pcmBuffer, numSamples, &coef)...)
		pcmBuffer[0] = pcmBuffer[14]
		pcmBuffer[1] = pcmBuffer[15]
	}

	var firstHeader int16
	if len(data) > 0 {
		firstHeader = int16(data[0])
	}

	return SoundGcn{
		SampleRate:      sampleRate,
		NumADPCMNibbles: uint32(len(samples) + frameCount*headersPerFrame),
		Coefficients:    coef,
		FirstHeader:     firstHeader,
		Data:            data,
	}
}

func clampI32(v int32) int32 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return v
}

func i32ToNibble(v int32) uint8 {
	switch {
	case v > 7:
		return 7
	case v < -8:
		return 8
	case v >= 0:
		return uint8(v)
	default:
		return uint8(16 + v)
	}
}

func encodeFrame(pcm []int16, numSamples int, coef *[16]int16) []byte {
	var inSamples [8][16]int32
	var outSamples [8][14]int32
	var scale [8]int32
	var distAcc [8]float64
	bestIndex := 0

	for i := 0; i < 8; i++ {
		inSamples[i][0] = int32(pcm[0])
		inSamples[i][1] = int32(pcm[1])
		var distance int32
		for s := 0; s < numSamples; s++ {
			v1 := (int32(pcm[s])*int32(coef[i*2+1]) + int32(pcm[s+1])*int32(coef[i*2])) / 2048
			inSamples[i][s+2] = v1
			v2 := clampI32(int32(pcm[s+2]) - v1)
			if abs32(v2) > abs32(distance) {
				distance = v2
			}
		}
		scale[i] = 0
		for scale[i] <= 12 && (distance > 7 || distance < -8) {
			distance /= 2
			scale[i]++
		}
		if scale[i] <= 1 {
			scale[i] = -1
		} else {
			scale[i] -= 2
		}
		for {
			scale[i]++
			distAcc[i] = 0
			index := int32(0)
			for s := 0; s < numSamples; s++ {
				v1 := inSamples[i][s]*int32(coef[i*2+1]) + inSamples[i][s+1]*int32(coef[i*2])
				v2 := (int32(pcm[s+2]) << 11) - v1
				v3 := int32(roundHalfAwayFromZero(float64(v2)/float64(int64(1)<<uint(scale[i]))/2048.0 + 0.499999))
				if v3 < -8 {
					if index < -8-v3 {
						index = -8 - v3
					}
					v3 = -8
				} else if v3 > 7 {
					if index < v3-7 {
						index = v3 - 7
					}
					v3 = 7
				}
				outSamples[i][s] = v3
				v1 = (v1 + ((v3 * (int32(1) << uint(scale[i]))) << 1) + 1024) >> 11
				v2 = clampI32(v1)
				inSamples[i][s+2] = v2
				v3 = int32(pcm[s+2]) - v2
				distAcc[i] += float64(v3) * float64(v3)
			}
			x := index + 8
			for x > 256 {
				scale[i]++
				if scale[i] >= 12 {
					scale[i] = 11
				}
				x >>= 1
			}
			if scale[i] >= 12 || index <= 1 {
				break
			}
		}
	}

	min := distAcc[0]
	bestIndex = 0
	for i := 1; i < 8; i++ {
		if distAcc[i] < min {
			min = distAcc[i]
			bestIndex = i
		}
	}
	for s := 0; s < numSamples; s++ {
		pcm[s+2] = int16(clampI32(inSamples[bestIndex][s+2]))
	}
	var frame [8]byte
	frame[0] = (byte(bestIndex) << 4) | byte(scale[bestIndex]&0xF)
	for s := numSamples; s < 14; s++ {
		outSamples[bestIndex][s] = 0
	}
	for y := 0; y < 7; y++ {
		frame[y+1] = (i32ToNibble(outSamples[bestIndex][y*2]) << 4) | i32ToNibble(outSamples[bestIndex][y*2+1])
	}
	return frame[:]
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}
