package engine

import (
	"fmt"

	"github.com/storyloom/loom/internal/types"
)

// Engine error codes
const (
	ErrGenerationExhausted types.ErrorCode = "ENGINE_GENERATION_EXHAUSTED"
	ErrWriteBackFailed     types.ErrorCode = "ENGINE_WRITEBACK_FAILED"
	ErrNoCurrentSegment    types.ErrorCode = "ENGINE_NO_CURRENT_SEGMENT"
	ErrInvalidChoice       types.ErrorCode = "ENGINE_INVALID_CHOICE"
	ErrNoNextTemplate      types.ErrorCode = "ENGINE_NO_NEXT_TEMPLATE"
	ErrUnknownProvider     types.ErrorCode = "ENGINE_UNKNOWN_PROVIDER"
)

// NewGenerationExhaustedError wraps the final provider error after the retry
// budget is spent.
func NewGenerationExhaustedError(attempts int, cause error) error {
	return types.WrapError(ErrGenerationExhausted,
		fmt.Sprintf("generation failed after %d attempts", attempts), cause)
}

// NewWriteBackError wraps a failure to store a recovered field.
func NewWriteBackError(field, path string, cause error) error {
	return types.WrapError(ErrWriteBackFailed,
		fmt.Sprintf("failed to write field '%s' to path '%s'", field, path), cause)
}

// NewNoCurrentSegmentError signals a choice made before any segment exists.
func NewNoCurrentSegmentError() error {
	return types.NewError(ErrNoCurrentSegment, "session has no current segment")
}

// NewInvalidChoiceError signals an out-of-range choice index.
func NewInvalidChoiceError(index, count int) error {
	return types.NewError(ErrInvalidChoice,
		fmt.Sprintf("choice index %d out of range (segment has %d choices)", index, count))
}

// NewNoNextTemplateError signals a choice with no follow-up templates.
func NewNoNextTemplateError(choiceID string) error {
	return types.NewError(ErrNoNextTemplate,
		fmt.Sprintf("choice '%s' declares no follow-up templates", choiceID))
}
