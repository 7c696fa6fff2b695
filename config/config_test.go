package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	o := Default()
	require.False(t, o.Strict)
	require.Equal(t, 4, o.TessellationQuality)
	require.Equal(t, OpenModeCopy, o.OpenMode)
}

func TestNewAppliesOptionsInOrder(t *testing.T) {
	o, err := New(WithStrict(true), WithTessellationQuality(8), WithOpenMode(OpenModeMmap))
	require.NoError(t, err)
	require.True(t, o.Strict)
	require.Equal(t, 8, o.TessellationQuality)
	require.Equal(t, OpenModeMmap, o.OpenMode)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "totemkit.toml")
	contents := "strict = true\ntessellation_quality = 6\nopen_mode = \"mmap\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	o, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, o.Strict)
	require.Equal(t, 6, o.TessellationQuality)
	require.Equal(t, OpenModeMmap, o.OpenMode)
}

func TestLoadFilePartialUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "totemkit.toml")
	require.NoError(t, os.WriteFile(path, []byte("strict = true\n"), 0o644))

	o, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, o.Strict)
	require.Equal(t, 4, o.TessellationQuality)
	require.Equal(t, OpenModeCopy, o.OpenMode)
}
