// Package config loads and applies the options that tune how this module
// reads and writes archives: strict parsing, default bezier tessellation
// quality, and the archive IO strategy (buffered copy vs memory map).
//
// Options are built the same way mebo builds per-type configuration: a set
// of functional Option[T] values (see internal/options) applied in order
// over a zero-value Options, so callers can mix explicit struct literals,
// functional overrides, and a loaded TOML file in any combination.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/brinepack/totemkit/internal/options"
)

// OpenMode selects how archive data is read from disk.
type OpenMode int

const (
	// OpenModeCopy reads the whole data file into memory up front.
	OpenModeCopy OpenMode = iota
	// OpenModeMmap memory-maps the data file read-only instead of
	// copying it, trading a page-fault-driven read pattern for avoiding
	// a full-file allocation.
	OpenModeMmap
)

// Options tunes archive and asset-codec behaviour.
type Options struct {
	// Strict selects strict parsing. The archive reader takes its own
	// archive.ReadOptions.Strict and does not read this field.
	Strict bool
	// TessellationQuality is a default number of interior subdivisions
	// (Q) for bezier surfaces. surface.SurfaceObject.Tessellate takes its
	// resolution as an argument and does not read this field.
	TessellationQuality int
	// OpenMode selects the archive data file's IO strategy.
	// archive.LoadFile takes the same choice as its useMmap argument and
	// does not read this field.
	OpenMode OpenMode
}

// Default returns the baseline Options every loader starts from.
func Default() Options {
	return Options{
		Strict:              false,
		TessellationQuality: 4,
		OpenMode:            OpenModeCopy,
	}
}

// Option configures an Options value.
type Option = options.Option[*Options]

// WithStrict sets Strict.
func WithStrict(strict bool) Option {
	return options.NoError(func(o *Options) { o.Strict = strict })
}

// WithTessellationQuality sets TessellationQuality.
func WithTessellationQuality(q int) Option {
	return options.NoError(func(o *Options) { o.TessellationQuality = q })
}

// WithOpenMode sets OpenMode.
func WithOpenMode(mode OpenMode) Option {
	return options.NoError(func(o *Options) { o.OpenMode = mode })
}

// New builds Options starting from Default and applying opts in order.
func New(opts ...Option) (Options, error) {
	o := Default()
	if err := options.Apply(&o, opts...); err != nil {
		return Options{}, err
	}
	return o, nil
}

// fileOptions mirrors Options' shape for TOML decoding; OpenMode is decoded
// as a string ("copy" or "mmap") rather than an int so the file stays
// human-editable.
type fileOptions struct {
	Strict              bool   `toml:"strict"`
	TessellationQuality int    `toml:"tessellation_quality"`
	OpenMode            string `toml:"open_mode"`
}

// LoadFile reads Options from a TOML file at path, starting from Default()
// for any field the file doesn't set.
func LoadFile(path string) (Options, error) {
	var fo fileOptions
	o := Default()
	fo.Strict = o.Strict
	fo.TessellationQuality = o.TessellationQuality
	fo.OpenMode = "copy"

	if _, err := toml.DecodeFile(path, &fo); err != nil {
		return Options{}, err
	}

	o.Strict = fo.Strict
	o.TessellationQuality = fo.TessellationQuality
	switch fo.OpenMode {
	case "mmap":
		o.OpenMode = OpenModeMmap
	default:
		o.OpenMode = OpenModeCopy
	}
	return o, nil
}
