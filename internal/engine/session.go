package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/storyloom/loom/internal/state"
)

// Session tracks one ongoing story: the evolving state tree and the chain of
// generated segments. A session serializes its cycles internally; one
// session must not be shared across concurrent stories.
type Session struct {
	ID string

	engine *Engine

	mu       sync.Mutex
	tree     state.Value
	segments map[string]*StorySegment
	current  *StorySegment
}

// NewSession starts a session over the given initial tree.
func (e *Engine) NewSession(tree state.Value) *Session {
	if tree == nil {
		tree = state.Mapping{}
	}
	return &Session{
		ID:       uuid.New().String(),
		engine:   e,
		tree:     tree,
		segments: make(map[string]*StorySegment),
	}
}

// Run generates a segment from templateID against the session tree and makes
// it the current segment.
func (s *Session) Run(ctx context.Context, templateID string) (*StorySegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runLocked(ctx, templateID)
}

func (s *Session) runLocked(ctx context.Context, templateID string) (*StorySegment, error) {
	tmpl, err := s.engine.templates.Get(templateID)
	if err != nil {
		return nil, err
	}

	parentID := ""
	if s.current != nil {
		parentID = s.current.ID
	}

	segment, tree, err := s.engine.run(ctx, tmpl, s.tree, parentID)
	if err != nil {
		return nil, err
	}

	s.tree = tree
	s.segments[segment.ID] = segment
	s.current = segment
	return segment, nil
}

// Choose picks a branch of the current segment and generates the follow-up
// segment from the choice's first declared template. The previous story,
// the chosen text, and the 1-based choice index are written into the tree
// before generation so follow-up templates can reference them.
func (s *Session) Choose(ctx context.Context, choiceIndex int) (*StorySegment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, NewNoCurrentSegmentError()
	}
	if choiceIndex < 0 || choiceIndex >= len(s.current.Choices) {
		return nil, NewInvalidChoiceError(choiceIndex, len(s.current.Choices))
	}

	choice := s.current.Choices[choiceIndex]
	if len(choice.NextTemplates) == 0 {
		return nil, NewNoNextTemplateError(choice.ID)
	}

	updates := map[string]state.Value{
		"previous_story":    state.Text(s.current.Content),
		"previous_choice":   state.Text(choice.Text),
		"last_choice_index": state.Number(float64(choiceIndex + 1)),
	}
	for key, value := range updates {
		tree, err := state.Write(s.tree, []state.Token{state.KeyToken(key)}, value)
		if err != nil {
			return nil, err
		}
		s.tree = tree
	}

	return s.runLocked(ctx, choice.NextTemplates[0])
}

// Choice returns a branch of the current segment without generating
// anything, so callers can inspect outcomes and follow-up templates first.
func (s *Session) Choice(index int) (StoryChoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return StoryChoice{}, NewNoCurrentSegmentError()
	}
	if index < 0 || index >= len(s.current.Choices) {
		return StoryChoice{}, NewInvalidChoiceError(index, len(s.current.Choices))
	}
	return s.current.Choices[index], nil
}

// Current returns the most recently generated segment, or nil.
func (s *Session) Current() *StorySegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Segment returns a previously generated segment by ID.
func (s *Session) Segment(id string) (*StorySegment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	segment, ok := s.segments[id]
	return segment, ok
}

// Tree returns the session's current state tree.
func (s *Session) Tree() state.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}
