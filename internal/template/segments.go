package template

import (
	"regexp"
	"strings"
)

// SegmentSet holds prompt segments classified by their wrapper characters.
type SegmentSet struct {
	// Info holds (...) background segments, unwrapped.
	Info []string

	// Content holds <...> output-content segments, unwrapped.
	Content []string

	// Format holds [...] output-format segments, unwrapped.
	Format []string

	// Pairs holds adjacent <content>[format] couples in their original
	// order. When present, each pair binds the format's fields to that
	// content description.
	Pairs []ContentFormat
}

// ContentFormat is one <content>[format] couple.
type ContentFormat struct {
	Content string
	Format  string
}

// fieldPattern extracts field names from a format segment such as
// "story=, mood=".
var fieldPattern = regexp.MustCompile(`([^=,\s]+)=`)

// ParseSegments classifies raw prompt segments by wrapper and pairs each
// <content> segment with the [format] segment immediately following it.
// Segments with no recognized wrapper are ignored.
func ParseSegments(segments []string) SegmentSet {
	var set SegmentSet

	for _, raw := range segments {
		seg := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(seg, "(") && strings.HasSuffix(seg, ")"):
			set.Info = append(set.Info, seg[1:len(seg)-1])
		case strings.HasPrefix(seg, "<") && strings.HasSuffix(seg, ">"):
			set.Content = append(set.Content, seg[1:len(seg)-1])
		case strings.HasPrefix(seg, "[") && strings.HasSuffix(seg, "]"):
			set.Format = append(set.Format, seg[1:len(seg)-1])
		}
	}

	for i := 0; i < len(segments)-1; i++ {
		cur := strings.TrimSpace(segments[i])
		next := strings.TrimSpace(segments[i+1])
		if strings.HasPrefix(cur, "<") && strings.HasSuffix(cur, ">") &&
			strings.HasPrefix(next, "[") && strings.HasSuffix(next, "]") {
			set.Pairs = append(set.Pairs, ContentFormat{
				Content: cur[1 : len(cur)-1],
				Format:  next[1 : len(next)-1],
			})
			i++
		}
	}

	return set
}

// Fields returns the output field names declared in a format segment, in
// order of appearance.
func Fields(format string) []string {
	var fields []string
	for _, m := range fieldPattern.FindAllStringSubmatch(format, -1) {
		fields = append(fields, m[1])
	}
	return fields
}

// fieldSpec couples an output field with the description shown in the JSON
// skeleton sent to the generation service.
type fieldSpec struct {
	name        string
	description string
}

// defaultPromptLayout is used when a template declares no custom layout.
const defaultPromptLayout = `Respond strictly in the following JSON format, with no additional content or explanation:

{json_format}

Make sure the output is valid JSON containing every listed field.
Information provided to you: {input_info}`

// BuildPrompt assembles the full prompt text for a set of already-resolved
// segments. Output fields come from <content>[format] pairs when present, or
// from the first lone format segment otherwise; they are rendered as a JSON
// skeleton the generation service is asked to fill in. A non-empty layout
// overrides the default one and may reference {background}, {content},
// {format}, {input_info}, and {json_format}.
func BuildPrompt(segments []string, layout string) string {
	set := ParseSegments(segments)

	var specs []fieldSpec
	switch {
	case len(set.Pairs) > 0:
		for _, pair := range set.Pairs {
			for _, field := range Fields(pair.Format) {
				specs = append(specs, fieldSpec{name: field, description: pair.Content})
			}
		}
	case len(set.Format) > 0:
		for _, field := range Fields(set.Format[0]) {
			desc := strings.ReplaceAll(field, "_", " ")
			specs = append(specs, fieldSpec{name: field, description: "the " + desc})
		}
	}

	jsonSkeleton := buildJSONSkeleton(specs)

	wrapped := make([]string, len(set.Info))
	for i, info := range set.Info {
		wrapped[i] = "(" + info + ")"
	}
	inputInfo := strings.Join(wrapped, " ")

	if layout != "" {
		contents := make([]string, len(set.Content))
		for i, c := range set.Content {
			contents[i] = "<" + c + ">"
		}
		return applyLayout(layout, map[string]string{
			"background":  strings.Join(wrapped, "\n"),
			"content":     strings.Join(contents, "\n"),
			"format":      jsonSkeleton,
			"input_info":  inputInfo,
			"json_format": jsonSkeleton,
		})
	}

	return applyLayout(defaultPromptLayout, map[string]string{
		"json_format": jsonSkeleton,
		"input_info":  inputInfo,
	})
}

// buildJSONSkeleton renders the fields as a fill-in JSON object.
func buildJSONSkeleton(specs []fieldSpec) string {
	if len(specs) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, spec := range specs {
		b.WriteString(`  "`)
		b.WriteString(spec.name)
		b.WriteString(`": "fill in here: `)
		b.WriteString(spec.description)
		b.WriteString(`"`)
		if i < len(specs)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// applyLayout substitutes {key} markers present in the layout. Unknown
// markers are left untouched; they may be placeholder expressions meant for
// the resolver.
func applyLayout(layout string, replacements map[string]string) string {
	out := layout
	for key, value := range replacements {
		marker := "{" + key + "}"
		if strings.Contains(out, marker) {
			out = strings.ReplaceAll(out, marker, value)
		}
	}
	return out
}
