package state

// Get walks tokens from root and returns the value at the end of the path.
// Returns false if any step is missing, out of range, or applied to the
// wrong container kind. Get never mutates the tree.
func Get(root Value, tokens []Token) (Value, bool) {
	cur := root
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenKey:
			m, ok := cur.(Mapping)
			if !ok {
				return nil, false
			}
			child, exists := m[tok.Key]
			if !exists {
				return nil, false
			}
			cur = child
		case TokenIndex:
			seq, ok := cur.(Sequence)
			if !ok {
				return nil, false
			}
			if tok.Index >= len(seq) {
				return nil, false
			}
			cur = seq[tok.Index]
		}
	}
	return cur, true
}

// Lookup resolves a literal dotted, bracket-indexed path such as
// "era.history.events[0].name" against root. It is the read-side
// counterpart of Write and shares its token grammar.
func Lookup(root Value, path string) (Value, bool) {
	tokens, err := Tokenize(path)
	if err != nil {
		return nil, false
	}
	return Get(root, tokens)
}
