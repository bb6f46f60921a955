package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storyloom/loom/internal/types"
)

func TestTokenize_SimpleKeys(t *testing.T) {
	tokens, err := Tokenize("character.name")
	require.NoError(t, err)
	assert.Equal(t, []Token{KeyToken("character"), KeyToken("name")}, tokens)
}

func TestTokenize_IndexedSegment(t *testing.T) {
	tokens, err := Tokenize("era.history.events[0].description")
	require.NoError(t, err)
	assert.Equal(t, []Token{
		KeyToken("era"),
		KeyToken("history"),
		KeyToken("events"),
		IndexToken(0),
		KeyToken("description"),
	}, tokens)
}

func TestTokenize_MultipleIndices(t *testing.T) {
	tokens, err := Tokenize("grid[1][2]")
	require.NoError(t, err)
	assert.Equal(t, []Token{KeyToken("grid"), IndexToken(1), IndexToken(2)}, tokens)
}

func TestTokenize_RootIndex(t *testing.T) {
	tokens, err := Tokenize("[3].name")
	require.NoError(t, err)
	assert.Equal(t, []Token{IndexToken(3), KeyToken("name")}, tokens)
}

func TestTokenize_Malformed(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"empty expression", ""},
		{"blank expression", "   "},
		{"empty segment", "a..b"},
		{"unterminated bracket", "a[1"},
		{"non-numeric index", "a[x]"},
		{"negative index", "a[-1]"},
		{"trailing text after index", "a[0]b"},
		{"stray close bracket", "a]b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.expr)
			require.Error(t, err)
			// CoreError.Is matches by code, so any STATE_PATH_INVALID
			// instance works as a comparison target.
			assert.ErrorIs(t, err, types.NewError(STATE_PATH_INVALID, ""))
		})
	}
}

func TestToken_String(t *testing.T) {
	assert.Equal(t, "name", KeyToken("name").String())
	assert.Equal(t, "[4]", IndexToken(4).String())
}
