package archive

import (
	"path/filepath"
	"testing"

	"github.com/brinepack/totemkit/endian"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadFileCopy(t *testing.T) {
	a := New([]byte("legal"), endian.GetLittleEndianEngine())
	a.SetRecords([]Record{{Data: []byte("hello"), TypeID: 1, NameID: 2, SubtypeID: 3}})

	path := filepath.Join(t.TempDir(), "test.dgc")
	require.NoError(t, SaveFile(a, path))

	got, err := LoadFile(path, endian.GetLittleEndianEngine(), ReadOptions{}, false)
	require.NoError(t, err)
	require.Equal(t, a.ChunkSize, got.ChunkSize)
	require.Len(t, got.Records(), 1)
}

func TestSaveAndLoadFileMmap(t *testing.T) {
	a := New([]byte("legal"), endian.GetBigEndianEngine())
	a.SetRecords([]Record{{Data: []byte("hello world"), TypeID: 1, NameID: 2, SubtypeID: 3}})

	path := filepath.Join(t.TempDir(), "test.dgc")
	require.NoError(t, SaveFile(a, path))

	got, err := LoadFile(path, endian.GetBigEndianEngine(), ReadOptions{}, true)
	require.NoError(t, err)
	require.Len(t, got.Records(), 1)
	require.Equal(t, []byte("hello world"), got.Records()[0].Data)
}
