// Package archive implements the untyped, hash-keyed chunked container used
// by the data file half of a two-file asset archive: a 0x100-byte legal
// notice, a chunk size, 0x6FC reserved bytes, and then a sequence of
// fixed-size chunks, each holding as many variable-size file records as
// first-fit-decreasing bin-packing lets it.
//
// Every file is addressed by three hashes (type, name, subtype) rather than
// by a string; resolving those hashes into strings is the name table's job,
// layered on top of this package by mergedarchive.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/internal/pool"
)

const (
	legalNoticeSize  = 0x100
	reservedTailSize = 0x6FC
	chunkMultiple    = 0x800
	fileHeaderSize   = 16
	chunkHeaderSize  = 4
)

// Record is a single file stored in the archive, addressed by three hashes.
type Record struct {
	Data      []byte
	TypeID    int32
	NameID    int32
	SubtypeID int32
}

// TotalSize is the number of bytes this record occupies once written,
// including its 16-byte header.
func (r Record) TotalSize() int {
	return len(r.Data) + fileHeaderSize
}

func (r Record) writeTo(w io.Writer, c *endian.Codec) error {
	if err := c.WriteU32(w, uint32(r.TotalSize())); err != nil {
		return err
	}
	if err := c.WriteI32(w, r.TypeID); err != nil {
		return err
	}
	if err := c.WriteI32(w, r.NameID); err != nil {
		return err
	}
	if err := c.WriteI32(w, r.SubtypeID); err != nil {
		return err
	}
	return c.WriteBytes(w, r.Data)
}

// Chunk is a fixed-size slab of records, zero-padded to the archive's chunk
// size.
type Chunk struct {
	Records []Record
}

// TotalSize is the number of bytes this chunk's records occupy, including
// the chunk's own 4-byte file-count header.
func (c Chunk) TotalSize() int {
	size := chunkHeaderSize
	for _, r := range c.Records {
		size += r.TotalSize()
	}
	return size
}

// chunkBufferPool supplies the scratch buffer each chunk is assembled into
// before it's flushed to the destination writer in a single call, rather
// than as many small codec writes.
var chunkBufferPool = pool.NewByteBufferPool(pool.ChunkBufferDefaultSize, pool.ChunkBufferMaxThreshold)

func (c Chunk) writeTo(w io.Writer, codec *endian.Codec, chunkSize int) error {
	padding := chunkSize - c.TotalSize()
	if padding < 0 {
		return fmt.Errorf("archive: chunk of %d bytes exceeds chunk size %d", c.TotalSize(), chunkSize)
	}

	buf := chunkBufferPool.Get()
	defer chunkBufferPool.Put(buf)
	buf.Grow(chunkSize)

	if err := codec.WriteU32(buf, uint32(len(c.Records))); err != nil {
		return err
	}
	for _, r := range c.Records {
		if err := r.writeTo(buf, codec); err != nil {
			return err
		}
	}
	if _, err := io.CopyN(buf, zeroReader{}, int64(padding)); err != nil {
		return err
	}

	_, err := buf.WriteTo(w)
	return err
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// CalculateChunkSize rounds maxSize up to the smallest multiple of 0x800
// that can hold it.
func CalculateChunkSize(maxSize int) int {
	if maxSize <= 0 {
		return chunkMultiple
	}
	units := 1 + (maxSize-1)/chunkMultiple
	if units < 1 {
		units = 1
	}
	return units * chunkMultiple
}

// Archive is the chunked container: a legal notice, a chunk size, and a
// sequence of chunks holding every record, automatically bin-packed.
type Archive struct {
	LegalNotice [legalNoticeSize]byte
	ChunkSize   int
	Chunks      []Chunk
	Engine      endian.EndianEngine
}

// New creates an empty Archive using the given legal notice and endianness.
// The legal notice is truncated to 0xFF bytes if longer (the final byte of
// the 0x100-byte field is conventionally a NUL terminator).
func New(legalNotice []byte, engine endian.EndianEngine) *Archive {
	a := &Archive{ChunkSize: CalculateChunkSize(0), Engine: engine}
	n := len(legalNotice)
	if n > legalNoticeSize-1 {
		n = legalNoticeSize - 1
	}
	copy(a.LegalNotice[:n], legalNotice[:n])
	return a
}

// NewFromRecords creates an Archive already packed with records.
func NewFromRecords(legalNotice []byte, engine endian.EndianEngine, records []Record) *Archive {
	a := New(legalNotice, engine)
	a.SetRecords(records)
	return a
}

// Records returns every record in the archive, chunk order then
// within-chunk order.
func (a *Archive) Records() []Record {
	var out []Record
	for _, c := range a.Chunks {
		out = append(out, c.Records...)
	}
	return out
}

// SetRecords replaces the archive's contents, re-packing every record from
// scratch using first-fit-decreasing bin-packing: records are sorted by
// descending data size, the chunk size is derived from the largest record,
// and each record is placed in the first chunk it fits in, opening a new
// chunk when none does.
func (a *Archive) SetRecords(records []Record) {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Data) > len(sorted[j].Data)
	})

	if len(sorted) > 0 {
		a.ChunkSize = CalculateChunkSize(sorted[0].TotalSize() + chunkHeaderSize)
	} else {
		a.ChunkSize = CalculateChunkSize(0)
	}

	a.Chunks = nil
	for len(sorted) > 0 {
		chunk := Chunk{}
		remaining := sorted[:0]
		for _, r := range sorted {
			if r.TotalSize()+chunk.TotalSize() <= a.ChunkSize {
				chunk.Records = append(chunk.Records, r)
			} else {
				remaining = append(remaining, r)
			}
		}
		sorted = remaining
		a.Chunks = append(a.Chunks, chunk)
	}
}

// AddRecord adds a single record to the archive. If it fits in an existing
// chunk's remaining space, it's appended there; otherwise a new chunk is
// opened. If it doesn't even fit in an empty chunk at the current chunk
// size, every record is repacked from scratch at a larger chunk size.
func (a *Archive) AddRecord(r Record) {
	if r.TotalSize()+chunkHeaderSize > a.ChunkSize {
		all := a.Records()
		all = append(all, r)
		a.SetRecords(all)
		return
	}

	for i := range a.Chunks {
		if a.Chunks[i].TotalSize()+r.TotalSize() <= a.ChunkSize {
			a.Chunks[i].Records = append(a.Chunks[i].Records, r)
			return
		}
	}

	a.Chunks = append(a.Chunks, Chunk{Records: []Record{r}})
}

// WriteTo serialises the archive: the legal notice, the chunk size, 0x6FC
// reserved bytes, then each chunk in turn.
func (a *Archive) WriteTo(w io.Writer) error {
	codec := endian.NewCodec(a.Engine)

	if _, err := w.Write(a.LegalNotice[:]); err != nil {
		return err
	}
	if err := codec.WriteU32(w, uint32(a.ChunkSize)); err != nil {
		return err
	}
	if _, err := io.CopyN(w, zeroReader{}, reservedTailSize); err != nil {
		return err
	}
	for _, chunk := range a.Chunks {
		if err := chunk.writeTo(w, codec, a.ChunkSize); err != nil {
			return err
		}
	}
	return nil
}

// Strict, when passed to ReadFrom, turns the non-fatal "stream size not
// divisible by chunk size" warning into an error instead of a log line.
type ReadOptions struct {
	Strict bool
}

// ReadFrom parses an Archive from r using the given endianness.
func ReadFrom(r io.Reader, engine endian.EndianEngine, opts ReadOptions) (*Archive, error) {
	codec := endian.NewCodec(engine)

	a := &Archive{Engine: engine}
	if err := codec.ReadExact(r, a.LegalNotice[:]); err != nil {
		return nil, fmt.Errorf("archive: reading legal notice: %w", err)
	}

	size, err := codec.ReadU32(r)
	if err != nil {
		return nil, fmt.Errorf("archive: reading chunk size: %w", err)
	}
	a.ChunkSize = int(size)

	if err := codec.SkipNBytes(r, reservedTailSize); err != nil {
		return nil, fmt.Errorf("archive: skipping reserved header tail: %w", err)
	}

	body, err := codec.ReadToEnd(r)
	if err != nil {
		return nil, fmt.Errorf("archive: reading chunk data: %w", err)
	}

	if len(body) > 0 && a.ChunkSize <= 0 {
		return nil, fmt.Errorf("archive: non-empty body with zero chunk size")
	}

	if a.ChunkSize > 0 && len(body)%a.ChunkSize != 0 {
		msg := fmt.Sprintf("archive: stream size %s is not divisible by chunk size %s",
			humanize.Bytes(uint64(len(body))), humanize.Bytes(uint64(a.ChunkSize)))
		if opts.Strict {
			return nil, fmt.Errorf("%s", msg)
		}
		log.Print(msg)
	}

	for offset := 0; offset < len(body); offset += a.ChunkSize {
		end := offset + a.ChunkSize
		if end > len(body) {
			end = len(body)
		}
		chunk, err := loadChunk(body[offset:end], codec)
		if err != nil {
			return nil, fmt.Errorf("archive: reading chunk at offset %d: %w", offset, err)
		}
		a.Chunks = append(a.Chunks, chunk)
	}

	return a, nil
}

func loadChunk(data []byte, codec *endian.Codec) (Chunk, error) {
	r := bytes.NewReader(data)

	numFiles, err := codec.ReadU32(r)
	if err != nil {
		return Chunk{}, err
	}

	chunk := Chunk{}
	for i := uint32(0); i < numFiles; i++ {
		fileSize, err := codec.ReadU32(r)
		if err != nil {
			return Chunk{}, fmt.Errorf("record %d: %w", i, err)
		}
		typeID, err := codec.ReadI32(r)
		if err != nil {
			return Chunk{}, fmt.Errorf("record %d: %w", i, err)
		}
		nameID, err := codec.ReadI32(r)
		if err != nil {
			return Chunk{}, fmt.Errorf("record %d: %w", i, err)
		}
		subtypeID, err := codec.ReadI32(r)
		if err != nil {
			return Chunk{}, fmt.Errorf("record %d: %w", i, err)
		}
		if int(fileSize) < fileHeaderSize {
			return Chunk{}, fmt.Errorf("record %d: file size %d smaller than header", i, fileSize)
		}
		contents := make([]byte, int(fileSize)-fileHeaderSize)
		if err := codec.ReadExact(r, contents); err != nil {
			return Chunk{}, fmt.Errorf("record %d: %w", i, err)
		}
		chunk.Records = append(chunk.Records, Record{
			Data:      contents,
			TypeID:    typeID,
			NameID:    nameID,
			SubtypeID: subtypeID,
		})
	}

	return chunk, nil
}
