package recovery

import (
	"regexp"

	"github.com/storyloom/loom/internal/state"
)

// FieldParser extracts a single named field written as field="content",
// falling back to the generic key/value parser when the exact form is
// absent. The built-in "story" and "choice" parsers are FieldParsers.
type FieldParser struct {
	field    string
	pattern  *regexp.Regexp
	fallback *FormatParser
}

// NewFieldParser creates a parser for one named output field.
func NewFieldParser(field string) *FieldParser {
	return &FieldParser{
		field:    field,
		pattern:  regexp.MustCompile(regexp.QuoteMeta(field) + `\s*=\s*"([^"]*)"`),
		fallback: NewFormatParser(),
	}
}

// Name implements Parser.
func (p *FieldParser) Name() string { return p.field }

// Parse implements Parser.
func (p *FieldParser) Parse(raw string) Result {
	if m := p.pattern.FindStringSubmatch(raw); m != nil {
		return Success(state.Mapping{p.field: state.Text(m[1])})
	}
	return p.fallback.Parse(raw)
}
