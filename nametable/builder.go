package nametable

import (
	"github.com/brinepack/totemkit/chumerr"
	"github.com/brinepack/totemkit/hashname"
)

// Builder accumulates names into a Table while catching the one failure mode
// a plain map can't: two different names hashing to the same 32-bit value.
// Re-adding a name already present under its own hash is a no-op, since the
// same file name legitimately appears on many archive records.
type Builder struct {
	table Table
	order []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{table: make(Table)}
}

// NewBuilderFromTable seeds a Builder from an already-resolved Table, e.g.
// one just parsed by ReadFrom. Iteration order of an existing Go map isn't
// defined, so the order names were originally written in is not recovered;
// new names added afterward still append in Add/TryAdd order.
func NewBuilderFromTable(t Table) *Builder {
	b := &Builder{table: make(Table, len(t)), order: make([]string, 0, len(t))}
	for id, name := range t {
		b.table[id] = name
		b.order = append(b.order, name)
	}
	return b
}

// Add hashes name and records it, returning the hash. If a different name
// already occupies that hash, it returns a chumerr name-collision error
// instead of silently overwriting the earlier entry.
func (b *Builder) Add(name string) (int32, error) {
	id := hashname.Hash(name)

	if existing, ok := b.table[id]; ok {
		if existing != name {
			return 0, chumerr.NameCollision(id, existing, name)
		}
		return id, nil
	}

	b.table[id] = name
	b.order = append(b.order, name)

	return id, nil
}

// TryAdd adds every name in names, or none of them: each is checked against
// the existing table first, and only if all of them clear the collision
// check are any of them actually inserted. This is what a caller wants when
// one logical record carries several names (e.g. a file's type, name, and
// subtype) and a partial insert would leave the table inconsistent with the
// record it's about to add.
func (b *Builder) TryAdd(names ...string) ([]int32, error) {
	ids := make([]int32, len(names))
	for i, name := range names {
		id := hashname.Hash(name)
		if existing, ok := b.table[id]; ok && existing != name {
			return nil, chumerr.NameCollision(id, existing, name)
		}
		ids[i] = id
	}

	for i, name := range names {
		if _, ok := b.table[ids[i]]; !ok {
			b.table[ids[i]] = name
			b.order = append(b.order, name)
		}
	}

	return ids, nil
}

// Names returns every distinct name added so far, in the order it was first
// added.
func (b *Builder) Names() []string {
	return b.order
}

// Table returns a copy of the accumulated name table.
func (b *Builder) Table() Table {
	out := make(Table, len(b.table))
	for k, v := range b.table {
		out[k] = v
	}
	return out
}
