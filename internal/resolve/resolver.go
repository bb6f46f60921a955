// Package resolve expands {...} placeholder expressions embedded in template
// text against a state tree. Expressions may reference other expressions
// ({character.{identity_field}}), compute sequence indices from other fields
// ({skills[{idx}]}), or pull values out of external documents
// ({text;eras;eras[0].name}). Resolution never fails and never mutates the
// tree: unresolvable references degrade to a diagnostic marker in the output.
package resolve

import (
	"log/slog"
	"strings"

	"github.com/storyloom/loom/internal/state"
)

// DocumentLoader loads external documents referenced by the
// text;documentID;path placeholder form. Implementations decide where
// documents live (files, database, fixtures).
type DocumentLoader interface {
	// Load returns the document for the given ID, or false if it does not
	// exist. Loaded documents are read-only to the resolver.
	Load(documentID string) (state.Value, bool)
}

// DefaultMaxIterations bounds nesting and reference-chain depth during
// expansion. Twenty levels supports any realistic template while guarding
// against self-referential placeholder text.
const DefaultMaxIterations = 20

// externalSentinel marks an external document reference inside a placeholder.
const externalSentinel = "text;"

// DefaultPlaceholderValues are substituted for a small set of well-known keys
// when they are absent from the tree. Every other missing reference is left
// as an explicit "[not found: ...]" marker in the output.
var DefaultPlaceholderValues = map[string]string{
	"character.name": "the adventurer",
	"location":       "an unknown place",
	"style":          "a classic fantasy tone",
}

// Resolver expands placeholder expressions. The zero value is not usable;
// construct with NewResolver.
type Resolver struct {
	loader        DocumentLoader
	maxIterations int
	defaults      map[string]string
	logger        *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLoader installs the external document loader used for text;doc;path
// references. Without a loader those references resolve to a marker.
func WithLoader(l DocumentLoader) Option {
	return func(r *Resolver) { r.loader = l }
}

// WithMaxIterations overrides the expansion iteration cap.
func WithMaxIterations(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxIterations = n
		}
	}
}

// WithDefaults replaces the well-known-key default table.
func WithDefaults(defaults map[string]string) Option {
	return func(r *Resolver) { r.defaults = defaults }
}

// WithLogger installs a structured logger. Unresolved references and
// iteration-cap hits are reported at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver with the default iteration cap and
// well-known defaults table.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		maxIterations: DefaultMaxIterations,
		defaults:      DefaultPlaceholderValues,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve expands every placeholder expression in text against tree. Nested
// expressions are resolved inside out: the content of each {...} span is
// resolved before the span itself is looked up. Substituted values are
// inert: a mapping or sequence stringifies to JSON whose braces are never
// re-interpreted as placeholders. Text values looked up from the tree may
// themselves contain references and are expanded in turn, bounded by the
// iteration cap. The result may still contain unresolved text (as markers)
// but Resolve itself never fails.
func (r *Resolver) Resolve(text string, tree state.Value) string {
	return r.resolve(text, tree, 0)
}

// resolve walks text, expanding each balanced {...} span. depth counts
// nesting plus reference-chain hops against the iteration cap.
func (r *Resolver) resolve(text string, tree state.Value, depth int) string {
	if !strings.Contains(text, "{") {
		return text
	}
	if depth >= r.maxIterations {
		r.logger.Debug("placeholder resolution hit iteration cap",
			"cap", r.maxIterations, "text", text)
		return text
	}

	var b strings.Builder
	i := 0
	for i < len(text) {
		j := strings.IndexByte(text[i:], '{')
		if j < 0 {
			b.WriteString(text[i:])
			break
		}
		b.WriteString(text[i : i+j])
		i += j

		end := matchingBrace(text, i)
		if end < 0 {
			// Unbalanced braces stay as they are.
			b.WriteString(text[i:])
			break
		}

		content := r.resolve(text[i+1:end], tree, depth+1)
		b.WriteString(r.expand(content, tree, depth))
		i = end + 1
	}
	return b.String()
}

// matchingBrace returns the index of the brace closing text[open], or -1
// when the braces never balance.
func matchingBrace(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ResolveAll expands a list of template segments in order.
func (r *Resolver) ResolveAll(segments []string, tree state.Value) []string {
	out := make([]string, len(segments))
	for i, seg := range segments {
		out[i] = r.Resolve(seg, tree)
	}
	return out
}

// TokenizePath expands placeholder segments inside a path expression against
// tree (substituting the text value of each referenced field), then
// tokenizes the literal result. With the tree unchanged, two evaluations of
// the same expression yield the same token sequence.
func (r *Resolver) TokenizePath(pathExpr string, tree state.Value) ([]state.Token, error) {
	return state.Tokenize(r.Resolve(pathExpr, tree))
}

// expand resolves the already-resolved content of one placeholder span. A
// text value pulled from the tree may carry further references and is
// resolved one level deeper; container values substitute their canonical
// JSON form verbatim.
func (r *Resolver) expand(content string, tree state.Value, depth int) string {
	if strings.HasPrefix(content, externalSentinel) {
		return r.expandExternal(content)
	}

	if v, ok := state.Lookup(tree, content); ok {
		if v.Kind() == state.KindText {
			return r.resolve(v.String(), tree, depth+1)
		}
		return v.String()
	}

	if def, ok := r.defaults[content]; ok {
		return def
	}

	r.logger.Debug("placeholder not found", "reference", content)
	return notFoundMarker(content)
}

// expandExternal resolves a text;documentID;path reference through the
// document loader.
func (r *Resolver) expandExternal(content string) string {
	parts := strings.SplitN(content, ";", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return notFoundMarker(content)
	}
	docID, path := parts[1], parts[2]

	if r.loader == nil {
		r.logger.Debug("external reference without a document loader", "document", docID)
		return notFoundMarker(content)
	}

	doc, ok := r.loader.Load(docID)
	if !ok {
		r.logger.Debug("external document not found", "document", docID)
		return notFoundMarker(content)
	}

	v, ok := state.Lookup(doc, path)
	if !ok {
		r.logger.Debug("external path not found", "document", docID, "path", path)
		return notFoundMarker(content)
	}
	return v.String()
}

// notFoundMarker is the diagnostic substituted for an unresolvable
// reference. It contains no braces, so it can never re-trigger expansion.
func notFoundMarker(content string) string {
	return "[not found: " + content + "]"
}
