package template

// Template describes one generation cycle: the prompt segments to expand and
// send, and where each recovered output field is written back into the state
// tree. Both the segments and the output-storage paths may contain {...}
// placeholder expressions resolved at run time.
type Template struct {
	// ID is the unique identifier for this template (required).
	ID string `json:"template_id" yaml:"template_id"`

	// Name is a human-readable name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description provides context about what this template produces.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Segments are the prompt fragments (required). Fragments wrapped in
	// (...) carry background information, <...> describe the content to
	// produce, and [...] declare the output fields, e.g. "[story=, mood=]".
	Segments []string `json:"prompt_segments" yaml:"prompt_segments"`

	// OutputStorage maps recovered output fields to path expressions in the
	// state tree, e.g. "story" -> "{temp_type}.history.events[0].description".
	OutputStorage map[string]string `json:"output_storage,omitempty" yaml:"output_storage,omitempty"`

	// NextTemplates maps a choice field (e.g. "choice1") to the template IDs
	// that may follow when the player picks it.
	NextTemplates map[string][]string `json:"next_templates,omitempty" yaml:"next_templates,omitempty"`

	// PromptTemplate optionally overrides the default prompt layout. It may
	// reference {background}, {content}, {format}, {input_info}, and
	// {json_format}.
	PromptTemplate string `json:"prompt_template,omitempty" yaml:"prompt_template,omitempty"`

	// Metadata stores arbitrary key-value pairs for extensibility.
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Validate checks that the template has all required fields.
// Returns a CoreError if validation fails.
func (t *Template) Validate() error {
	if t.ID == "" {
		return NewInvalidTemplateError("template_id cannot be empty")
	}
	if len(t.Segments) == 0 {
		return NewInvalidTemplateError("prompt_segments cannot be empty")
	}
	for field, path := range t.OutputStorage {
		if field == "" {
			return NewInvalidTemplateError("output_storage field name cannot be empty")
		}
		if path == "" {
			return NewInvalidTemplateError("output_storage path for field '" + field + "' cannot be empty")
		}
	}
	return nil
}
