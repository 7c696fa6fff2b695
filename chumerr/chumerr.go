// Package chumerr defines the error kinds and structural-path wrapping used
// across every archive and asset codec in totemkit.
//
// Every failure that occurs while decoding or destructuring a binary
// structure is wrapped in an Error that names the struct and field path it
// occurred at (e.g. "Mesh::strips[3].material"), so a caller can locate the
// byte range that produced the failure without re-running the decoder under
// a debugger. Wrapping composes outward-in: the innermost read attaches the
// field name, and each enclosing struct prepends its own name as the error
// propagates up, mirroring structuralize/prepend in the source this package
// is modelled on.
package chumerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why a decode, destructure, or archive operation failed.
type Kind int

const (
	// KindIO indicates an underlying read or write failure (including
	// short reads).
	KindIO Kind = iota
	// KindNameMissing indicates a hash had no corresponding entry in a
	// name table.
	KindNameMissing
	// KindNameCollision indicates a hash already maps to a different
	// name than the one being inserted.
	KindNameCollision
	// KindInvalidValue indicates a decoded value fell outside its
	// allowed range (e.g. a boolean byte that was neither 0 nor 1).
	KindInvalidValue
	// KindInvalidEnum indicates a decoded tag did not match any known
	// enum variant.
	KindInvalidEnum
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNameMissing:
		return "name-missing"
	case KindNameCollision:
		return "name-collision"
	case KindInvalidValue:
		return "invalid-value"
	case KindInvalidEnum:
		return "invalid-enum"
	default:
		return "unknown"
	}
}

// Error is the structural error type: it names the struct, the dotted/
// indexed field path within that struct, a Kind, and the underlying cause.
type Error struct {
	Kind       Kind
	StructName string
	Path       string
	cause      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not read %s::%s: %s", e.StructName, e.Path, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New wraps cause as a structural Error for field path within structName.
func New(kind Kind, structName, path string, cause error) *Error {
	return &Error{Kind: kind, StructName: structName, Path: path, cause: errors.WithStack(cause)}
}

// Index wraps cause as a structural Error for the index-th element of an
// array field within structName, producing a "field[index]" path.
func Index(kind Kind, structName, field string, index int, cause error) *Error {
	return New(kind, structName, fmt.Sprintf("%s[%d]", field, index), cause)
}

// Prepend rewrites e's path to be prefixed by prefix, used when a struct
// wraps an inner struct's path under one of its own fields (producing
// "outerField.innerPath").
func (e *Error) Prepend(prefix string) *Error {
	return &Error{Kind: e.Kind, StructName: e.StructName, Path: prefix + "." + e.Path, cause: e.cause}
}

// Structuralize renames e to belong to structName, nesting its existing path
// under pathName (producing "pathName.oldPath").
func (e *Error) Structuralize(structName, pathName string) *Error {
	return &Error{Kind: e.Kind, StructName: structName, Path: pathName + "." + e.Path, cause: e.cause}
}

// NameMissing reports that hash has no entry in a name table.
func NameMissing(hash int32) error {
	return fmt.Errorf("%w: could not find hash %d in name table", errNameMissing, hash)
}

// NameCollision reports that hash already maps to existingName while the
// caller tried to insert newName.
func NameCollision(hash int32, existingName, newName string) error {
	return fmt.Errorf("%w: hash %d already maps to %q, cannot also map to %q",
		errNameCollision, hash, existingName, newName)
}

var (
	errNameMissing   = errors.New("name missing")
	errNameCollision = errors.New("name collision")
	errMissingField  = errors.New("missing field")
	errWrongKind     = errors.New("wrong variant kind")
)

// MissingField reports that destructuring expected a struct field that
// wasn't present.
func MissingField(name string) error {
	return fmt.Errorf("%w: %q", errMissingField, name)
}

// WrongKind reports that destructuring found field but it held the wrong
// Variant kind.
func WrongKind(field string) error {
	return fmt.Errorf("%w: field %q", errWrongKind, field)
}

// IsNameMissing reports whether err (or any error it wraps) is a name-missing error.
func IsNameMissing(err error) bool {
	return errors.Is(err, errNameMissing)
}

// IsNameCollision reports whether err (or any error it wraps) is a name-collision error.
func IsNameCollision(err error) bool {
	return errors.Is(err, errNameCollision)
}
