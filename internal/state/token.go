package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/storyloom/loom/internal/types"
)

// State error codes
const (
	STATE_PATH_INVALID        types.ErrorCode = "STATE_PATH_INVALID"
	STATE_STRUCTURAL_CONFLICT types.ErrorCode = "STATE_STRUCTURAL_CONFLICT"
)

// TokenKind identifies whether a token is a mapping key or a sequence index.
type TokenKind int

const (
	TokenKey TokenKind = iota
	TokenIndex
)

// Token is a single resolved step of a path expression: either a string key
// into a Mapping or an integer index into a Sequence. Producing the tagged
// variant once here lets the write-back engine consume steps uniformly
// instead of re-inspecting segment text.
type Token struct {
	Kind  TokenKind
	Key   string
	Index int
}

// KeyToken builds a mapping-key token.
func KeyToken(key string) Token {
	return Token{Kind: TokenKey, Key: key}
}

// IndexToken builds a sequence-index token.
func IndexToken(index int) Token {
	return Token{Kind: TokenIndex, Index: index}
}

// String returns the path-expression form of the token.
func (t Token) String() string {
	if t.Kind == TokenIndex {
		return "[" + strconv.Itoa(t.Index) + "]"
	}
	return t.Key
}

// Tokenize splits a path expression into an ordered token sequence.
// The expression uses dot-separated segments, each optionally followed by
// one or more bracketed integer indices:
//
//	"era.history.events[0].description" ->
//	  key(era) key(history) key(events) index(0) key(description)
//
// Placeholder segments must be resolved before tokenization; Tokenize works
// on literal text only. It fails only on a malformed expression: an empty
// segment, an unterminated bracket, a non-numeric or negative index, or
// trailing characters after a closing bracket.
func Tokenize(pathExpr string) ([]Token, error) {
	if strings.TrimSpace(pathExpr) == "" {
		return nil, types.NewError(STATE_PATH_INVALID, "path expression is empty")
	}

	var tokens []Token
	for _, segment := range strings.Split(pathExpr, ".") {
		segTokens, err := tokenizeSegment(segment)
		if err != nil {
			return nil, types.WrapError(STATE_PATH_INVALID,
				fmt.Sprintf("invalid path expression %q", pathExpr), err)
		}
		tokens = append(tokens, segTokens...)
	}
	return tokens, nil
}

// tokenizeSegment handles one dot-segment: a key optionally followed by
// [n][m]... suffixes. A segment consisting only of brackets (no key) is
// allowed so that root-level sequences can be addressed.
func tokenizeSegment(segment string) ([]Token, error) {
	if segment == "" {
		return nil, fmt.Errorf("empty segment")
	}

	var tokens []Token
	open := strings.IndexByte(segment, '[')
	if open < 0 {
		if strings.IndexByte(segment, ']') >= 0 {
			return nil, fmt.Errorf("unmatched ']' in segment %q", segment)
		}
		return []Token{KeyToken(segment)}, nil
	}

	if key := segment[:open]; key != "" {
		tokens = append(tokens, KeyToken(key))
	}

	rest := segment[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("unexpected text %q after index in segment %q", rest, segment)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("unterminated '[' in segment %q", segment)
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("invalid index %q in segment %q", rest[1:end], segment)
		}
		tokens = append(tokens, IndexToken(idx))
		rest = rest[end+1:]
	}
	return tokens, nil
}
