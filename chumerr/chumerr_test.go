package chumerr

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorStructuralPath(t *testing.T) {
	e := New(KindIO, "Mesh", "vertices", io.ErrUnexpectedEOF)
	require.Equal(t, "could not read Mesh::vertices: unexpected EOF", e.Error())
	require.ErrorIs(t, e, io.ErrUnexpectedEOF)
}

func TestErrorIndexPath(t *testing.T) {
	e := Index(KindIO, "Mesh", "strips", 3, io.EOF)
	require.Equal(t, "strips[3]", e.Path)
}

func TestErrorStructuralize(t *testing.T) {
	inner := New(KindIO, "NodeDataUnion", "unk7[0].data", io.EOF)
	outer := inner.Structuralize("NodeDataUnion::NodeDataSkin", "unk7")
	require.Equal(t, "unk7.unk7[0].data", outer.Path)
	require.Equal(t, "NodeDataUnion::NodeDataSkin", outer.StructName)
}

func TestNameMissingAndCollision(t *testing.T) {
	err := NameMissing(42)
	require.True(t, IsNameMissing(err))
	require.False(t, IsNameCollision(err))

	err2 := NameCollision(42, "old", "new")
	require.True(t, IsNameCollision(err2))
	require.False(t, errors.Is(err2, errNameMissing))
}
