package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom/loom/internal/state"
)

func TestJSONParser_CleanJSON(t *testing.T) {
	res := NewJSONParser().Parse(`{"story":"A"}`)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"story": state.Text("A")}, res.Value)
}

func TestJSONParser_FencedBlock(t *testing.T) {
	raw := "```json\n{\"story\":\"A\"}\n```"
	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"story": state.Text("A")}, res.Value)
}

func TestJSONParser_FenceWithoutLanguage(t *testing.T) {
	raw := "```\n{\"key\": \"value\"}\n```"
	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"key": state.Text("value")}, res.Value)
}

func TestJSONParser_SurroundingProse(t *testing.T) {
	raw := `Sure! Here is the scene you asked for:

{"scene": "The library is silent.", "danger": 2}

Let me know if you want another.`

	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())
	m, ok := res.Value.(state.Mapping)
	require.True(t, ok)
	assert.Equal(t, state.Text("The library is silent."), m["scene"])
	assert.Equal(t, state.Number(2), m["danger"])
}

func TestJSONParser_NestedContainers(t *testing.T) {
	raw := `{"era": {"events": [{"name": "The Sundering"}]}}`
	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())

	got, ok := state.Lookup(res.Value, "era.events[0].name")
	require.True(t, ok)
	assert.Equal(t, state.Text("The Sundering"), got)
}

func TestJSONParser_Array(t *testing.T) {
	res := NewJSONParser().Parse(`[{"a":1},{"a":2}]`)
	require.True(t, res.OK())
	assert.Equal(t, state.KindSequence, res.Value.Kind())
}

func TestJSONParser_TrailingComma(t *testing.T) {
	res := NewJSONParser().Parse(`{"a":1,"b":2,}`)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"a": state.Number(1), "b": state.Number(2)}, res.Value)
}

func TestJSONParser_TrailingCommaInArray(t *testing.T) {
	res := NewJSONParser().Parse(`{"items":[1,2,3,],}`)
	require.True(t, res.OK())
	got, ok := state.Lookup(res.Value, "items[2]")
	require.True(t, ok)
	assert.Equal(t, state.Number(3), got)
}

func TestJSONParser_BareKeys(t *testing.T) {
	res := NewJSONParser().Parse(`{story: "A tale", mood: "grim"}`)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{
		"story": state.Text("A tale"),
		"mood":  state.Text("grim"),
	}, res.Value)
}

func TestJSONParser_BareWordValues(t *testing.T) {
	res := NewJSONParser().Parse(`{"mood": grim, "haunted": true}`)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{
		"mood":    state.Text("grim"),
		"haunted": state.Bool(true),
	}, res.Value)
}

func TestJSONParser_BracketInsideString(t *testing.T) {
	raw := `{"note": "braces } inside { strings", "n": 1}`
	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())

	got, ok := state.Lookup(res.Value, "note")
	require.True(t, ok)
	assert.Equal(t, state.Text("braces } inside { strings"), got)
}

func TestJSONParser_EscapedQuotes(t *testing.T) {
	raw := `{"message": "He said \"run\" and fled"}`
	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())
}

func TestJSONParser_KeyValueFallback(t *testing.T) {
	raw := `The character sheet reads name="Eric" and level=3, nothing else.`
	res := NewJSONParser().Parse(raw)
	require.True(t, res.OK())

	m, ok := res.Value.(state.Mapping)
	require.True(t, ok)
	assert.Equal(t, state.Text("Eric"), m["name"])
	assert.Equal(t, state.Number(3), m["level"])
}

func TestJSONParser_TotalFailure(t *testing.T) {
	raw := "no structure here"
	res := NewJSONParser().Parse(raw)

	require.True(t, res.Failed)
	assert.Equal(t, raw, res.Raw)
	assert.NotEmpty(t, res.Reason)

	// the failure is itself a first-class value
	got, ok := state.Lookup(res.Value, "raw_output")
	require.True(t, ok)
	assert.Equal(t, state.Text(raw), got)
	_, ok = state.Lookup(res.Value, "error")
	assert.True(t, ok)
}

func TestJSONParser_ScalarIsNotRecovered(t *testing.T) {
	// A lone quoted word is valid JSON but not a structured value.
	res := NewJSONParser().Parse(`"hello"`)
	assert.True(t, res.Failed)
}

func TestIsFailureValue(t *testing.T) {
	fail := Failure("raw", "reason")
	assert.True(t, IsFailureValue(fail.Value))

	ok := Success(state.Mapping{"story": state.Text("A")})
	assert.False(t, IsFailureValue(ok.Value))
	assert.False(t, IsFailureValue(state.Text("plain")))
}
