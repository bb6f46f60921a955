package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom/loom/internal/types"
)

func mustTokenize(t *testing.T, expr string) []Token {
	t.Helper()
	tokens, err := Tokenize(expr)
	require.NoError(t, err)
	return tokens
}

func TestWrite_ReadBackInverse(t *testing.T) {
	tree := Value(Mapping{})

	tokens := mustTokenize(t, "character.skills.fireball.power")
	tree, err := Write(tree, tokens, Number(100))
	require.NoError(t, err)

	got, ok := Get(tree, tokens)
	require.True(t, ok)
	assert.Equal(t, Number(100), got)
}

func TestWrite_Idempotent(t *testing.T) {
	tree := Value(Mapping{})
	tokens := mustTokenize(t, "a.b.c")

	tree, err := Write(tree, tokens, Text("v"))
	require.NoError(t, err)
	first := tree.String()

	tree, err = Write(tree, tokens, Text("v"))
	require.NoError(t, err)
	assert.Equal(t, first, tree.String())
}

func TestWrite_AutoVivification(t *testing.T) {
	tree := Value(Mapping{})

	tree, err := Write(tree, mustTokenize(t, "a.b[2].c"), Text("deep"))
	require.NoError(t, err)

	root, ok := tree.(Mapping)
	require.True(t, ok)

	a, ok := root["a"].(Mapping)
	require.True(t, ok, "a must be a Mapping")

	b, ok := a["b"].(Sequence)
	require.True(t, ok, "a.b must be a Sequence")
	require.Len(t, b, 3)

	// padded elements are empty mappings
	assert.Equal(t, Mapping{}, b[0])
	assert.Equal(t, Mapping{}, b[1])

	elem, ok := b[2].(Mapping)
	require.True(t, ok)
	assert.Equal(t, Text("deep"), elem["c"])
}

func TestWrite_LeafOverwrite(t *testing.T) {
	tree := Value(Mapping{"a": Text("old")})

	tree, err := Write(tree, mustTokenize(t, "a"), Number(1))
	require.NoError(t, err)

	got, ok := Lookup(tree, "a")
	require.True(t, ok)
	assert.Equal(t, Number(1), got)
}

func TestWrite_ReplacesWrongKindIntermediate(t *testing.T) {
	// "a" holds a scalar but the path needs a mapping there: last writer wins.
	tree := Value(Mapping{"a": Text("leaf")})

	tree, err := Write(tree, mustTokenize(t, "a.b"), Text("v"))
	require.NoError(t, err)

	got, ok := Lookup(tree, "a.b")
	require.True(t, ok)
	assert.Equal(t, Text("v"), got)
}

func TestWrite_ReplacesMappingWithSequence(t *testing.T) {
	tree := Value(Mapping{"a": Mapping{"keep": Text("me")}})

	tree, err := Write(tree, mustTokenize(t, "a[0]"), Text("v"))
	require.NoError(t, err)

	got, ok := Lookup(tree, "a[0]")
	require.True(t, ok)
	assert.Equal(t, Text("v"), got)
}

func TestWrite_NilRootCreatesContainers(t *testing.T) {
	tree, err := Write(nil, mustTokenize(t, "a.b"), Text("v"))
	require.NoError(t, err)

	got, ok := Lookup(tree, "a.b")
	require.True(t, ok)
	assert.Equal(t, Text("v"), got)
}

func TestWrite_GrowsExistingSequence(t *testing.T) {
	tree := Value(Mapping{"s": Sequence{Text("zero")}})

	tree, err := Write(tree, mustTokenize(t, "s[2]"), Text("two"))
	require.NoError(t, err)

	s, ok := Lookup(tree, "s")
	require.True(t, ok)
	seq, ok := s.(Sequence)
	require.True(t, ok)
	require.Len(t, seq, 3)
	assert.Equal(t, Text("zero"), seq[0])
	assert.Equal(t, Text("two"), seq[2])
}

func TestWrite_EmptyTokens(t *testing.T) {
	_, err := Write(Mapping{}, nil, Text("v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(STATE_PATH_INVALID, ""))
}

func TestWriteStrict_ConflictOnScalarIntermediate(t *testing.T) {
	tree := Value(Mapping{"a": Text("leaf")})

	_, err := WriteStrict(tree, mustTokenize(t, "a.b"), Text("v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(STATE_STRUCTURAL_CONFLICT, ""))
}

func TestWriteStrict_ConflictOnWrongContainerKind(t *testing.T) {
	tree := Value(Mapping{"a": Mapping{}})

	_, err := WriteStrict(tree, mustTokenize(t, "a[0]"), Text("v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(STATE_STRUCTURAL_CONFLICT, ""))
}

func TestWriteStrict_LeafOverwriteStillAllowed(t *testing.T) {
	tree := Value(Mapping{"a": Text("old")})

	tree, err := WriteStrict(tree, mustTokenize(t, "a"), Text("new"))
	require.NoError(t, err)

	got, ok := Lookup(tree, "a")
	require.True(t, ok)
	assert.Equal(t, Text("new"), got)
}

func TestWriteStrict_VivifiesMissingContainers(t *testing.T) {
	tree, err := WriteStrict(Mapping{}, mustTokenize(t, "a.b[1].c"), Bool(true))
	require.NoError(t, err)

	got, ok := Lookup(tree, "a.b[1].c")
	require.True(t, ok)
	assert.Equal(t, Bool(true), got)
}
