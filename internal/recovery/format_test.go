package recovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom/loom/internal/state"
)

func TestFormatParser_QuotedPairs(t *testing.T) {
	raw := `name="Eric" profession="scholar"`
	res := NewFormatParser().Parse(raw)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{
		"name":       state.Text("Eric"),
		"profession": state.Text("scholar"),
	}, res.Value)
}

func TestFormatParser_ColonSeparated(t *testing.T) {
	raw := `"story": "Once upon a time", "mood": "calm"`
	res := NewFormatParser().Parse(raw)
	require.True(t, res.OK())

	m := res.Value.(state.Mapping)
	assert.Equal(t, state.Text("Once upon a time"), m["story"])
	assert.Equal(t, state.Text("calm"), m["mood"])
}

func TestFormatParser_ScalarCoercion(t *testing.T) {
	raw := `level=3 active=true retired=false bonus=null score=1.5`
	res := NewFormatParser().Parse(raw)
	require.True(t, res.OK())

	m := res.Value.(state.Mapping)
	assert.Equal(t, state.Number(3), m["level"])
	assert.Equal(t, state.Bool(true), m["active"])
	assert.Equal(t, state.Bool(false), m["retired"])
	assert.Equal(t, state.Null{}, m["bonus"])
	assert.Equal(t, state.Number(1.5), m["score"])
}

func TestFormatParser_MixedProse(t *testing.T) {
	raw := `After some thought the oracle wrote name="Mira" and then level=7.`
	res := NewFormatParser().Parse(raw)
	require.True(t, res.OK())

	m := res.Value.(state.Mapping)
	assert.Equal(t, state.Text("Mira"), m["name"])
	assert.Equal(t, state.Number(7), m["level"])
}

func TestFormatParser_NoMatches(t *testing.T) {
	res := NewFormatParser().Parse("nothing to see")
	assert.True(t, res.Failed)
	assert.Equal(t, "nothing to see", res.Raw)
}

func TestFieldParser_ExactMatch(t *testing.T) {
	res := NewFieldParser("story").Parse(`story="The gate opens at dawn."`)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"story": state.Text("The gate opens at dawn.")}, res.Value)
}

func TestFieldParser_ChoiceMatch(t *testing.T) {
	res := NewFieldParser("choice").Parse(`The model answered choice="enter the cave" here.`)
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"choice": state.Text("enter the cave")}, res.Value)
}

func TestFieldParser_FallsBackToFormat(t *testing.T) {
	res := NewFieldParser("story").Parse(`tale="something else"`)
	require.True(t, res.OK())

	m := res.Value.(state.Mapping)
	assert.Equal(t, state.Text("something else"), m["tale"])
}

func TestRegistry_Builtins(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"json", "format", "story", "choice"} {
		p, err := r.Get(name)
		require.NoError(t, err, "builtin %q", name)
		assert.Equal(t, name, p.Name())
	}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry()
	err := r.Register(NewFormatParser())
	require.Error(t, err)
	assert.ErrorIs(t, err, NewParserAlreadyExistsError("format"))
}

func TestRegistry_RegisterNil(t *testing.T) {
	r := NewRegistry()
	assert.Error(t, r.Register(nil))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, NewParserNotFoundError("unknown"))
}

func TestRegistry_RegisterCustom(t *testing.T) {
	r := NewRegistry()
	custom := NewFieldParser("verdict")
	require.NoError(t, r.Register(custom))

	p, err := r.Get("verdict")
	require.NoError(t, err)
	assert.Equal(t, custom, p)
}

func TestRegistry_RecoverUsesLayeredParser(t *testing.T) {
	r := NewRegistry()
	res := r.Recover("```json\n{\"a\": 1}\n```")
	require.True(t, res.OK())
	assert.Equal(t, state.Mapping{"a": state.Number(1)}, res.Value)
}

func TestRegistry_IndependentInstances(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	require.NoError(t, a.Register(NewFieldParser("only-in-a")))

	_, err := b.Get("only-in-a")
	assert.Error(t, err)
}
