package recovery

import (
	"fmt"

	"github.com/storyloom/loom/internal/types"
)

// Recovery error codes
const (
	RECOVERY_PARSER_NOT_FOUND      types.ErrorCode = "RECOVERY_PARSER_NOT_FOUND"
	RECOVERY_PARSER_ALREADY_EXISTS types.ErrorCode = "RECOVERY_PARSER_ALREADY_EXISTS"
	RECOVERY_PARSER_INVALID        types.ErrorCode = "RECOVERY_PARSER_INVALID"
)

// NewParserNotFoundError creates an error for an unregistered parser name.
func NewParserNotFoundError(name string) error {
	return types.NewError(RECOVERY_PARSER_NOT_FOUND,
		fmt.Sprintf("parser not found: %s", name))
}

// NewParserAlreadyExistsError creates an error for a duplicate registration.
func NewParserAlreadyExistsError(name string) error {
	return types.NewError(RECOVERY_PARSER_ALREADY_EXISTS,
		fmt.Sprintf("parser already registered: %s", name))
}

// NewInvalidParserError creates an error for an unusable parser definition.
func NewInvalidParserError(reason string) error {
	return types.NewError(RECOVERY_PARSER_INVALID,
		fmt.Sprintf("invalid parser: %s", reason))
}
