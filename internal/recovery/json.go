package recovery

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/storyloom/loom/internal/state"
)

// JSONParser recovers a structured value from noisy, possibly
// markdown-wrapped generated text. It layers strategies from strict to
// permissive, each attempted only when the previous one failed:
//
//  1. strip code fences and surrounding prose, strict parse
//  2. extract the first balanced bracketed span, strict parse
//  3. textual repair of the span (quote bare keys and values, drop
//     trailing commas), reparse
//  4. key/value pattern fallback over the whole text
//  5. explicit failure marker
type JSONParser struct {
	fallback *FormatParser
}

// NewJSONParser creates the layered parser.
func NewJSONParser() *JSONParser {
	return &JSONParser{fallback: NewFormatParser()}
}

// Name implements Parser.
func (p *JSONParser) Name() string { return "json" }

// codeFenceOpen matches an opening markdown fence with an optional language
// tag, codeFenceClose a closing fence on its own line or at end of text.
var (
	codeFenceOpen = regexp.MustCompile("```[a-zA-Z]*[ \t]*\n?")
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
	bareKey       = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_\-]*)\s*:`)
	bareWordValue = regexp.MustCompile(`:\s*([A-Za-z_][^",{}\[\]\n]*?)\s*([,}\]])`)
)

// Parse implements Parser.
func (p *JSONParser) Parse(raw string) Result {
	// Layer 1: clean and parse directly.
	if cleaned, ok := cleanOutput(raw); ok {
		if v, err := parseStrict(cleaned); err == nil {
			return Success(v)
		}
	}

	// Layer 2: extract the first balanced bracketed span anywhere in the text.
	span, found := extractSpan(raw)
	if found {
		if v, err := parseStrict(span); err == nil {
			return Success(v)
		}

		// Layer 3: repair the span and reparse.
		if v, err := parseStrict(repair(span)); err == nil {
			return Success(v)
		}
	}

	// Layer 4: key/value pattern fallback over the whole raw text.
	if fb := p.fallback.Parse(raw); fb.OK() {
		return fb
	}

	// Layer 5: explicit failure marker.
	return Failure(raw, "no structured content could be recovered")
}

// parseStrict attempts a strict structured parse of s. Only container
// results (mapping or sequence) count: a stray quoted word in prose must not
// masquerade as recovered data.
func parseStrict(s string) (state.Value, error) {
	var raw any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, err
	}
	v := state.FromAny(raw)
	if v.Kind() != state.KindMapping && v.Kind() != state.KindSequence {
		return nil, errors.New("parsed value is not a container")
	}
	return v, nil
}

// cleanOutput strips markdown code fences, then trims any prose before the
// first opening bracket and after the last closing bracket of the same
// family. Returns false when no bracket is present at all.
func cleanOutput(raw string) (string, bool) {
	s := codeFenceOpen.ReplaceAllString(raw, "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start, closer := firstBracket(s)
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// firstBracket finds the earliest '{' or '[' and reports the matching
// closing character.
func firstBracket(s string) (int, byte) {
	obj := strings.IndexByte(s, '{')
	arr := strings.IndexByte(s, '[')

	switch {
	case obj >= 0 && (arr < 0 || obj < arr):
		return obj, '}'
	case arr >= 0:
		return arr, ']'
	default:
		return -1, 0
	}
}

// extractSpan scans for the first balanced bracketed span in raw, tracking
// string literals and escapes so brackets inside quoted text do not count.
func extractSpan(raw string) (string, bool) {
	start, closer := firstBracket(raw)
	if start < 0 {
		return "", false
	}

	span := matchBracket(raw[start:], closer)
	if span == "" {
		return "", false
	}
	return span, true
}

// matchBracket returns the prefix of s up to the bracket matching s[0], or
// "" when the brackets never balance.
func matchBracket(s string, closer byte) string {
	if len(s) == 0 {
		return ""
	}

	opener := s[0]
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if c == opener {
			depth++
		} else if c == closer {
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}

// repair applies textual fixes for the malformations generated text most
// often exhibits: unquoted mapping keys, unquoted single-word values, and
// trailing separators before a closing bracket.
func repair(s string) string {
	s = bareKey.ReplaceAllString(s, `$1"$2":`)
	s = bareWordValue.ReplaceAllStringFunc(s, quoteBareValue)
	s = trailingComma.ReplaceAllString(s, "$1")
	return s
}

// quoteBareValue wraps an unquoted word value in quotes unless it is a JSON
// literal that parses as-is.
func quoteBareValue(match string) string {
	sub := bareWordValue.FindStringSubmatch(match)
	if sub == nil {
		return match
	}
	word, suffix := strings.TrimSpace(sub[1]), sub[2]

	switch word {
	case "true", "false", "null":
		return ": " + word + suffix
	}
	return `: "` + word + `"` + suffix
}
