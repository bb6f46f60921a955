// Package engine orchestrates one generation cycle: resolve the template's
// prompt segments against the state tree, call the generation client, recover
// a structured value from the raw reply, and write each mapped output field
// back into the tree.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/storyloom/loom/internal/llm"
	"github.com/storyloom/loom/internal/recovery"
	"github.com/storyloom/loom/internal/resolve"
	"github.com/storyloom/loom/internal/state"
	"github.com/storyloom/loom/internal/template"
)

const maxChoices = 9

// StoryChoice is one branch offered by a generated segment.
type StoryChoice struct {
	ID            string   `json:"id"`
	Text          string   `json:"text"`
	Outcome       string   `json:"outcome,omitempty"`
	NextTemplates []string `json:"next_templates,omitempty"`
}

// StorySegment is the outcome of one generation cycle.
type StorySegment struct {
	ID         string        `json:"id"`
	TemplateID string        `json:"template_id"`
	Content    string        `json:"content"`
	Choices    []StoryChoice `json:"choices,omitempty"`
	ParentID   string        `json:"parent_id,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`

	// Recovered is the full value the recovery layer produced, including
	// the failure payload when parsing degraded.
	Recovered state.Value `json:"-"`
}

// Failed reports whether the recovery layer could not produce a usable
// value for this segment.
func (s *StorySegment) Failed() bool {
	return recovery.IsFailureValue(s.Recovered)
}

// Engine runs generation cycles against a client.
type Engine struct {
	client     llm.Client
	resolver   *resolve.Resolver
	parsers    *recovery.Registry
	templates  *template.Registry
	logger     *slog.Logger
	maxRetries int
	backoff    time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithResolver replaces the default placeholder resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(e *Engine) { e.resolver = r }
}

// WithParsers replaces the default recovery parser registry.
func WithParsers(reg *recovery.Registry) Option {
	return func(e *Engine) { e.parsers = reg }
}

// WithTemplates sets the template registry.
func WithTemplates(reg *template.Registry) Option {
	return func(e *Engine) { e.templates = reg }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRetries configures the retry budget and backoff for retryable
// generation errors.
func WithRetries(maxRetries int, backoff time.Duration) Option {
	return func(e *Engine) {
		e.maxRetries = maxRetries
		e.backoff = backoff
	}
}

// NewEngine creates an engine around a generation client.
func NewEngine(client llm.Client, opts ...Option) *Engine {
	e := &Engine{
		client:     client,
		resolver:   resolve.NewResolver(),
		parsers:    recovery.NewRegistry(),
		templates:  template.NewRegistry(),
		logger:     slog.Default(),
		maxRetries: 3,
		backoff:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Templates exposes the engine's template registry.
func (e *Engine) Templates() *template.Registry {
	return e.templates
}

// RunTemplate executes one full cycle for the given template and returns the
// generated segment together with the updated tree. The returned tree may
// share structure with the input; callers must adopt it and stop using the
// input.
func (e *Engine) RunTemplate(ctx context.Context, templateID string, tree state.Value) (*StorySegment, state.Value, error) {
	tmpl, err := e.templates.Get(templateID)
	if err != nil {
		return nil, tree, err
	}
	return e.run(ctx, tmpl, tree, "")
}

func (e *Engine) run(ctx context.Context, tmpl *template.Template, tree state.Value, parentID string) (*StorySegment, state.Value, error) {
	expanded := e.resolver.ResolveAll(tmpl.Segments, tree)
	prompt := template.BuildPrompt(expanded, tmpl.PromptTemplate)

	e.logger.Debug("running template",
		"template_id", tmpl.ID,
		"segments", len(tmpl.Segments),
		"prompt_len", len(prompt))

	raw, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, tree, err
	}

	result := e.parsers.Recover(raw)
	if !result.OK() {
		e.logger.Warn("recovery degraded to failure value",
			"template_id", tmpl.ID,
			"reason", result.Reason)
	}

	segment := e.buildSegment(tmpl, result.Value, parentID)

	tree, err = e.applyStorage(tmpl, result.Value, segment.Content, tree)
	if err != nil {
		return nil, tree, err
	}

	return segment, tree, nil
}

// generate calls the client, retrying retryable failures with linear backoff
// until the budget is exhausted.
func (e *Engine) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt) * e.backoff
			e.logger.Debug("retrying generation", "attempt", attempt, "wait", wait)
			select {
			case <-ctx.Done():
				return "", llm.TranslateError(e.client.Name(), ctx.Err())
			case <-time.After(wait):
			}
		}

		raw, err := e.client.Generate(ctx, prompt)
		if err == nil {
			return raw, nil
		}

		lastErr = err
		if !llm.IsRetryable(err) {
			return "", err
		}
	}

	return "", NewGenerationExhaustedError(e.maxRetries+1, lastErr)
}

// buildSegment extracts the story content and numbered choices from the
// recovered value.
func (e *Engine) buildSegment(tmpl *template.Template, recovered state.Value, parentID string) *StorySegment {
	segment := &StorySegment{
		ID:         uuid.New().String(),
		TemplateID: tmpl.ID,
		ParentID:   parentID,
		CreatedAt:  time.Now().UTC(),
		Recovered:  recovered,
	}

	mapping, ok := recovered.(state.Mapping)
	if !ok {
		return segment
	}

	if content, ok := mapping["story"]; ok && !recovery.IsFailureValue(recovered) {
		segment.Content = content.String()
	}

	for i := 1; i <= maxChoices; i++ {
		choiceKey := "choice" + strconv.Itoa(i)
		text, ok := mapping[choiceKey]
		if !ok {
			break
		}

		choice := StoryChoice{
			ID:   choiceKey,
			Text: text.String(),
		}
		if outcome, ok := mapping["outcome"+strconv.Itoa(i)]; ok {
			choice.Outcome = outcome.String()
		}
		if tmpl.NextTemplates != nil {
			choice.NextTemplates = tmpl.NextTemplates[choiceKey]
		}
		segment.Choices = append(segment.Choices, choice)
	}

	return segment
}

// applyStorage writes each mapped output field into the tree. Fields absent
// from the recovered value are skipped; the special field "content" falls
// back to the segment's story content. Fields are applied in sorted order so
// overlapping paths resolve deterministically.
func (e *Engine) applyStorage(tmpl *template.Template, recovered state.Value, content string, tree state.Value) (state.Value, error) {
	if len(tmpl.OutputStorage) == 0 {
		return tree, nil
	}

	mapping, _ := recovered.(state.Mapping)

	fields := make([]string, 0, len(tmpl.OutputStorage))
	for field := range tmpl.OutputStorage {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value, ok := mapping[field]
		if !ok {
			if field != "content" {
				continue
			}
			value = state.Text(content)
		}

		pathExpr := tmpl.OutputStorage[field]
		tokens, err := e.resolver.TokenizePath(pathExpr, tree)
		if err != nil {
			return tree, NewWriteBackError(field, pathExpr, err)
		}

		tree, err = state.Write(tree, tokens, value)
		if err != nil {
			return tree, NewWriteBackError(field, pathExpr, err)
		}

		e.logger.Debug("stored output field", "field", field, "path", pathExpr)
	}

	return tree, nil
}
