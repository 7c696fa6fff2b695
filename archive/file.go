package archive

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/brinepack/totemkit/endian"
)

// LoadFile opens the data file at path and parses it into an Archive.
//
// When useMmap is true the file is memory-mapped read-only instead of being
// copied into a buffer; the mapping is released once parsing finishes since
// every parsed record already owns its own copy of its payload; this only
// changes how the bytes are staged for parsing, not the resulting Archive.
func LoadFile(path string, engine endian.EndianEngine, opts ReadOptions, useMmap bool) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("archive: opening %s: %w", path, err)
	}
	defer f.Close()

	if !useMmap {
		a, err := ReadFrom(f, engine, opts)
		if err != nil {
			return nil, fmt.Errorf("archive: reading %s: %w", path, err)
		}
		return a, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("archive: mapping %s: %w", path, err)
	}
	defer m.Unmap()

	a, err := ReadFrom(bytes.NewReader(m), engine, opts)
	if err != nil {
		return nil, fmt.Errorf("archive: reading mapped %s: %w", path, err)
	}
	return a, nil
}

// SaveFile serialises the archive to path, truncating or creating it.
func SaveFile(a *Archive, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("archive: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := a.WriteTo(f); err != nil {
		return fmt.Errorf("archive: writing %s: %w", path, err)
	}
	return f.Close()
}
