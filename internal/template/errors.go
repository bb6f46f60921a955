package template

import (
	"fmt"

	"github.com/storyloom/loom/internal/types"
)

// Template error codes
const (
	ErrCodeTemplateNotFound      types.ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateAlreadyExists types.ErrorCode = "TEMPLATE_ALREADY_EXISTS"
	ErrCodeInvalidTemplate       types.ErrorCode = "TEMPLATE_INVALID"
	ErrCodeTemplateLoadFailed    types.ErrorCode = "TEMPLATE_LOAD_FAILED"
)

// NewTemplateNotFoundError creates an error for when a template is not found.
func NewTemplateNotFoundError(id string) error {
	return types.NewError(ErrCodeTemplateNotFound, fmt.Sprintf("template not found: %s", id))
}

// NewTemplateAlreadyExistsError creates an error for a duplicate template ID.
func NewTemplateAlreadyExistsError(id string) error {
	return types.NewError(ErrCodeTemplateAlreadyExists, fmt.Sprintf("template already exists: %s", id))
}

// NewInvalidTemplateError creates an error for invalid template definitions.
func NewInvalidTemplateError(reason string) error {
	return types.NewError(ErrCodeInvalidTemplate, fmt.Sprintf("invalid template: %s", reason))
}

// NewTemplateLoadError creates an error for template file loading failures.
func NewTemplateLoadError(path string, cause error) error {
	return types.WrapError(ErrCodeTemplateLoadFailed,
		fmt.Sprintf("failed to load templates from %s", path), cause)
}
