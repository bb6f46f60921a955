package state

import (
	"fmt"

	"github.com/storyloom/loom/internal/types"
)

// Write stores value at the location described by tokens, creating missing
// intermediate containers along the way. The required container kind at each
// step is determined by the next token: a key requires a Mapping, an index
// requires a Sequence. Sequences are padded with empty Mappings up to the
// addressed index. An existing value of the wrong kind is replaced by a
// correctly-kinded empty container (last writer wins); the final token
// always overwrites.
//
// Write returns the updated root, which differs from the input only when the
// root itself had to be created or replaced.
func Write(root Value, tokens []Token, value Value) (Value, error) {
	if len(tokens) == 0 {
		return nil, types.NewError(STATE_PATH_INVALID, "cannot write with an empty token sequence")
	}
	return write(root, tokens, value, false)
}

// WriteStrict behaves like Write but refuses to discard existing data: if an
// intermediate step holds a value of the wrong kind (a scalar where a
// container is required, or a Mapping where a Sequence is required and vice
// versa), it fails with STATE_STRUCTURAL_CONFLICT instead of replacing it.
// Overwriting the leaf at the final token is still permitted.
func WriteStrict(root Value, tokens []Token, value Value) (Value, error) {
	if len(tokens) == 0 {
		return nil, types.NewError(STATE_PATH_INVALID, "cannot write with an empty token sequence")
	}
	return write(root, tokens, value, true)
}

func write(cur Value, tokens []Token, value Value, strict bool) (Value, error) {
	if len(tokens) == 0 {
		return value, nil
	}

	tok := tokens[0]
	switch tok.Kind {
	case TokenKey:
		m, ok := cur.(Mapping)
		if !ok {
			if strict && !IsNull(cur) {
				return nil, conflictError(tok, cur)
			}
			m = Mapping{}
		}
		child, err := write(m[tok.Key], tokens[1:], value, strict)
		if err != nil {
			return nil, err
		}
		m[tok.Key] = child
		return m, nil

	case TokenIndex:
		seq, ok := cur.(Sequence)
		if !ok {
			if strict && !IsNull(cur) {
				return nil, conflictError(tok, cur)
			}
			seq = Sequence{}
		}
		for len(seq) <= tok.Index {
			seq = append(seq, Mapping{})
		}
		child, err := write(seq[tok.Index], tokens[1:], value, strict)
		if err != nil {
			return nil, err
		}
		seq[tok.Index] = child
		return seq, nil

	default:
		return nil, types.NewError(STATE_PATH_INVALID, "unknown token kind")
	}
}

func conflictError(tok Token, existing Value) error {
	required := "mapping"
	if tok.Kind == TokenIndex {
		required = "sequence"
	}
	return types.NewError(STATE_STRUCTURAL_CONFLICT, fmt.Sprintf(
		"step %s requires a %s but found existing %s", tok, required, existing.Kind()))
}
