package archive

import (
	"bytes"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/stretchr/testify/require"
)

func TestCalculateChunkSize(t *testing.T) {
	require.Equal(t, 0x800, CalculateChunkSize(0))
	require.Equal(t, 0x800, CalculateChunkSize(1))
	require.Equal(t, 0x800, CalculateChunkSize(0x800))
	require.Equal(t, 0x1000, CalculateChunkSize(0x801))
}

func TestArchiveRoundTrip(t *testing.T) {
	a := New([]byte("test archive"), endian.GetBigEndianEngine())
	a.SetRecords([]Record{
		{Data: bytes.Repeat([]byte{0xAA}, 100), TypeID: 1, NameID: 2, SubtypeID: 3},
		{Data: bytes.Repeat([]byte{0xBB}, 50), TypeID: 4, NameID: 5, SubtypeID: 6},
	})

	var buf bytes.Buffer
	require.NoError(t, a.WriteTo(&buf))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), endian.GetBigEndianEngine(), ReadOptions{})
	require.NoError(t, err)
	require.Equal(t, a.ChunkSize, got.ChunkSize)

	gotRecords := got.Records()
	require.Len(t, gotRecords, 2)

	sizes := map[int32]int{}
	for _, r := range gotRecords {
		sizes[r.TypeID] = len(r.Data)
	}
	require.Equal(t, 100, sizes[1])
	require.Equal(t, 50, sizes[4])
}

func TestSetRecordsPacksLargestFirst(t *testing.T) {
	a := New(nil, endian.GetLittleEndianEngine())
	a.SetRecords([]Record{
		{Data: make([]byte, 10), TypeID: 1},
		{Data: make([]byte, 2000), TypeID: 2},
		{Data: make([]byte, 30), TypeID: 3},
	})

	// The chunk size must be derived from the largest record.
	require.Equal(t, CalculateChunkSize(2000+16+4), a.ChunkSize)
}

func TestAddRecordFitsExistingChunk(t *testing.T) {
	a := New(nil, endian.GetLittleEndianEngine())
	a.SetRecords([]Record{{Data: make([]byte, 10), TypeID: 1}})
	initialChunks := len(a.Chunks)

	a.AddRecord(Record{Data: make([]byte, 10), TypeID: 2})
	require.Equal(t, initialChunks, len(a.Chunks))
	require.Len(t, a.Records(), 2)
}

func TestAddRecordRepacksWhenTooBig(t *testing.T) {
	a := New(nil, endian.GetLittleEndianEngine())
	a.SetRecords([]Record{{Data: make([]byte, 10), TypeID: 1}})
	smallChunkSize := a.ChunkSize

	a.AddRecord(Record{Data: make([]byte, 10000), TypeID: 2})
	require.Greater(t, a.ChunkSize, smallChunkSize)
	require.Len(t, a.Records(), 2)
}

func TestReadFromNonStrictLogsOnMisalignedSize(t *testing.T) {
	a := New(nil, endian.GetLittleEndianEngine())
	a.SetRecords([]Record{{Data: make([]byte, 10), TypeID: 1}})

	var buf bytes.Buffer
	require.NoError(t, a.WriteTo(&buf))
	truncated := buf.Bytes()[:buf.Len()-1]

	got, err := ReadFrom(bytes.NewReader(truncated), endian.GetLittleEndianEngine(), ReadOptions{})
	require.NoError(t, err)
	// The trailing slice, short by one zero-padding byte, is still parsed
	// as a chunk rather than silently dropped.
	require.Len(t, got.Records(), 1)
	require.Equal(t, int32(1), got.Records()[0].TypeID)
}

func TestReadFromParsesTrailingPartialChunk(t *testing.T) {
	a := New(nil, endian.GetLittleEndianEngine())
	a.SetRecords([]Record{
		{Data: make([]byte, 1000), TypeID: 1},
		{Data: make([]byte, 2000), TypeID: 2},
	})
	require.Len(t, a.Chunks, 2)

	var buf bytes.Buffer
	require.NoError(t, a.WriteTo(&buf))

	// Cut the stream off partway through the last chunk's zero padding: the
	// body is no longer a multiple of ChunkSize, and the final chunk is
	// shorter than the others.
	truncated := buf.Bytes()[:buf.Len()-a.ChunkSize/2]

	got, err := ReadFrom(bytes.NewReader(truncated), endian.GetLittleEndianEngine(), ReadOptions{})
	require.NoError(t, err)
	require.Len(t, got.Chunks, 2)
	ids := []int32{got.Records()[0].TypeID, got.Records()[1].TypeID}
	require.ElementsMatch(t, []int32{1, 2}, ids)
}

func TestReadFromStrictErrorsOnMisalignedSize(t *testing.T) {
	a := New(nil, endian.GetLittleEndianEngine())
	a.SetRecords([]Record{{Data: make([]byte, 10), TypeID: 1}})

	var buf bytes.Buffer
	require.NoError(t, a.WriteTo(&buf))
	truncated := buf.Bytes()[:buf.Len()-1]

	_, err := ReadFrom(bytes.NewReader(truncated), endian.GetLittleEndianEngine(), ReadOptions{Strict: true})
	require.Error(t, err)
}
