package recovery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/storyloom/loom/internal/state"
)

// FormatParser scans free text for key=value and key:"value" style pairs and
// builds a mapping from every match. It is the permissive last resort before
// giving up: no structure is required beyond recognizable pairs.
type FormatParser struct{}

// NewFormatParser creates the key/value fallback parser.
func NewFormatParser() *FormatParser {
	return &FormatParser{}
}

// Name implements Parser.
func (p *FormatParser) Name() string { return "format" }

var (
	// quotedPair matches key="value" / 'key': 'value' forms where the value
	// is quoted; the key may or may not be. Keys are identifiers so that
	// surrounding prose is not swallowed into the key.
	quotedPair = regexp.MustCompile(`["']?([A-Za-z_][A-Za-z0-9_\-]*)["']?\s*[=:]\s*["']([^"']*)["']`)

	// scalarPair matches key=literal forms with an unquoted boolean, null,
	// or numeric value.
	scalarPair = regexp.MustCompile(`["']?([A-Za-z_][A-Za-z0-9_\-]*)["']?\s*[=:]\s*(true|false|null|-?\d+(?:\.\d+)?)\b`)
)

// Parse implements Parser.
func (p *FormatParser) Parse(raw string) Result {
	found := state.Mapping{}

	for _, m := range quotedPair.FindAllStringSubmatch(raw, -1) {
		key := strings.TrimSpace(m[1])
		if key == "" {
			continue
		}
		found[key] = coerceScalar(m[2])
	}

	for _, m := range scalarPair.FindAllStringSubmatch(raw, -1) {
		key := strings.TrimSpace(m[1])
		if _, exists := found[key]; exists {
			continue
		}
		found[key] = coerceScalar(m[2])
	}

	if len(found) == 0 {
		return Failure(raw, "no key/value pairs found")
	}
	return Success(found)
}

// coerceScalar converts pair-match text to a typed value using simple
// literal rules: booleans, null, and numbers keep their kind, everything
// else stays text.
func coerceScalar(s string) state.Value {
	trimmed := strings.TrimSpace(s)
	switch trimmed {
	case "true":
		return state.Bool(true)
	case "false":
		return state.Bool(false)
	case "null":
		return state.Null{}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return state.Number(f)
	}
	return state.Text(s)
}
