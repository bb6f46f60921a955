package recovery

import (
	"sync"
)

// Parser extracts a structured value from raw generated text. Parse always
// returns a Result; it never panics on malformed input.
type Parser interface {
	// Name is the registry key for this parser.
	Name() string

	// Parse attempts to recover a structured value from raw.
	Parse(raw string) Result
}

// Registry manages named parsers. It is an explicit, caller-constructed
// object rather than process-wide shared state, so independent pipelines can
// carry independent parser sets. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
}

// NewRegistry creates a registry pre-populated with the built-in parsers:
// "json" (the layered recovery strategy), "format" (key/value pattern
// fallback), and the field-specific "story" and "choice" parsers.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	for _, p := range []Parser{
		NewJSONParser(),
		NewFormatParser(),
		NewFieldParser("story"),
		NewFieldParser("choice"),
	} {
		r.parsers[p.Name()] = p
	}
	return r
}

// Register adds a parser under its name.
// Returns RECOVERY_PARSER_ALREADY_EXISTS if the name is taken.
func (r *Registry) Register(p Parser) error {
	if p == nil || p.Name() == "" {
		return NewInvalidParserError("parser must have a non-empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[p.Name()]; exists {
		return NewParserAlreadyExistsError(p.Name())
	}
	r.parsers[p.Name()] = p
	return nil
}

// Get retrieves a parser by name.
func (r *Registry) Get(name string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[name]
	if !ok {
		return nil, NewParserNotFoundError(name)
	}
	return p, nil
}

// Names lists the registered parser names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.parsers))
	for name := range r.parsers {
		names = append(names, name)
	}
	return names
}

// Recover runs the default layered strategy (the "json" parser) against raw.
// Raw generated text is untrusted free text, so this is the entry point most
// callers want.
func (r *Registry) Recover(raw string) Result {
	p, err := r.Get("json")
	if err != nil {
		return Failure(raw, "no default parser registered")
	}
	return p.Parse(raw)
}
