// Package mergedarchive owns the typed, string-keyed view of an archive: it
// merges the untyped hash-keyed archive package with a nametable.Table so
// every file is addressed by name instead of by hash, and re-splits that
// view back into the two files a caller actually writes to disk.
package mergedarchive

import (
	"fmt"
	"io"
	"sort"

	"github.com/brinepack/totemkit/archive"
	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/endian"
	"github.com/brinepack/totemkit/hashname"
	"github.com/brinepack/totemkit/nametable"
)

// File is a single archive entry addressed by name instead of by hash.
type File struct {
	Data        []byte
	TypeName    string
	NameName    string
	SubtypeName string
}

// Archive is the merged, typed view over a hash-keyed archive.Archive and
// its name table.
type Archive struct {
	LegalNotice []byte
	Engine      endian.EndianEngine
	files       []File
	names       *nametable.Builder
}

// New creates an empty merged Archive.
func New(legalNotice []byte, engine endian.EndianEngine) *Archive {
	return &Archive{
		LegalNotice: append([]byte(nil), legalNotice...),
		Engine:      engine,
		names:       nametable.NewBuilder(),
	}
}

// Files returns every file currently in the archive.
func (a *Archive) Files() []File {
	out := make([]File, len(a.files))
	copy(out, a.files)
	return out
}

// AddFile adds a file to the archive. Its three names are checked for hash
// collisions against the existing name table before any mutation happens:
// either all three clear the check and the file is added, or none of them
// do and the archive is left unchanged.
func (a *Archive) AddFile(file File) error {
	if _, err := a.names.TryAdd(file.TypeName, file.NameName, file.SubtypeName); err != nil {
		return fmt.Errorf("mergedarchive: AddFile: %w", err)
	}

	a.files = append(a.files, file)
	return nil
}

// UnusedNames returns every name-table entry that isn't referenced as the
// type, name, or subtype of any file in the archive.
func (a *Archive) UnusedNames() []string {
	used := make(map[string]struct{}, len(a.files)*3)
	for _, f := range a.files {
		used[f.TypeName] = struct{}{}
		used[f.NameName] = struct{}{}
		used[f.SubtypeName] = struct{}{}
	}

	var out []string
	for _, name := range a.names.Table() {
		if _, ok := used[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Split converts the merged archive into its on-disk halves: a hash-keyed
// archive.Archive and its name table.
func (a *Archive) Split() (*archive.Archive, nametable.Table) {
	records := make([]archive.Record, len(a.files))
	for i, f := range a.files {
		records[i] = archive.Record{
			Data:      f.Data,
			TypeID:    hashname.Hash(f.TypeName),
			NameID:    hashname.Hash(f.NameName),
			SubtypeID: hashname.Hash(f.SubtypeName),
		}
	}
	dgc := archive.NewFromRecords(a.LegalNotice, a.Engine, records)

	return dgc, a.names.Table()
}

// Merge builds a merged Archive from a hash-keyed archive.Archive and its
// name table, resolving every record's three hashes against names. It
// returns a name-missing error naming the first unresolved hash found.
func Merge(dgc *archive.Archive, names nametable.Table) (*Archive, error) {
	merged := &Archive{
		LegalNotice: append([]byte(nil), dgc.LegalNotice[:]...),
		Engine:      dgc.Engine,
		names:       nametable.NewBuilderFromTable(names),
	}

	for _, rec := range dgc.Records() {
		typeName, ok := names[rec.TypeID]
		if !ok {
			return nil, fmt.Errorf("mergedarchive: Merge: %w", chumerr.NameMissing(rec.TypeID))
		}
		nameName, ok := names[rec.NameID]
		if !ok {
			return nil, fmt.Errorf("mergedarchive: Merge: %w", chumerr.NameMissing(rec.NameID))
		}
		subtypeName, ok := names[rec.SubtypeID]
		if !ok {
			return nil, fmt.Errorf("mergedarchive: Merge: %w", chumerr.NameMissing(rec.SubtypeID))
		}
		merged.files = append(merged.files, File{
			Data:        rec.Data,
			TypeName:    typeName,
			NameName:    nameName,
			SubtypeName: subtypeName,
		})
	}

	return merged, nil
}

// ReadFrom reads a merged Archive from its two on-disk halves: a
// nametable.Table source and an archive.Archive source.
func ReadFrom(namesReader io.Reader, dataReader io.Reader, engine endian.EndianEngine, opts archive.ReadOptions) (*Archive, error) {
	names, err := nametable.ReadFrom(namesReader)
	if err != nil {
		return nil, fmt.Errorf("mergedarchive: reading name table: %w", err)
	}
	dgc, err := archive.ReadFrom(dataReader, engine, opts)
	if err != nil {
		return nil, fmt.Errorf("mergedarchive: reading data file: %w", err)
	}
	return Merge(dgc, names)
}

// WriteTo writes the merged archive's two on-disk halves.
func (a *Archive) WriteTo(namesWriter, dataWriter io.Writer) error {
	dgc, names := a.Split()
	if err := names.WriteTo(namesWriter); err != nil {
		return fmt.Errorf("mergedarchive: writing name table: %w", err)
	}
	if err := dgc.WriteTo(dataWriter); err != nil {
		return fmt.Errorf("mergedarchive: writing data file: %w", err)
	}
	return nil
}
