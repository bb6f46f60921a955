package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() Value {
	return Mapping{
		"character": Mapping{
			"name":       Text("Eric"),
			"profession": Text("scholar"),
		},
		"skills": Sequence{Text("fire"), Text("ice"), Text("light")},
		"idx":    Number(1),
	}
}

func TestLookup_NestedKey(t *testing.T) {
	got, ok := Lookup(testTree(), "character.name")
	require.True(t, ok)
	assert.Equal(t, Text("Eric"), got)
}

func TestLookup_SequenceIndex(t *testing.T) {
	got, ok := Lookup(testTree(), "skills[2]")
	require.True(t, ok)
	assert.Equal(t, Text("light"), got)
}

func TestLookup_WholeContainer(t *testing.T) {
	got, ok := Lookup(testTree(), "skills")
	require.True(t, ok)
	assert.Equal(t, KindSequence, got.Kind())
}

func TestLookup_Missing(t *testing.T) {
	for _, path := range []string{
		"absent",
		"character.absent",
		"skills[9]",
		"character[0]",      // index into a mapping
		"idx.deeper",        // key into a scalar
		"skills.notanindex", // key into a sequence
	} {
		_, ok := Lookup(testTree(), path)
		assert.False(t, ok, "path %q should not resolve", path)
	}
}

func TestLookup_MalformedPath(t *testing.T) {
	_, ok := Lookup(testTree(), "skills[oops")
	assert.False(t, ok)
}
