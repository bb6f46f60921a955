package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/storyloom/loom/internal/types"
)

// LLM error codes
const (
	ErrAuthFailed       types.ErrorCode = "LLM_AUTH_FAILED"
	ErrRateLimited      types.ErrorCode = "LLM_RATE_LIMITED"
	ErrTimeout          types.ErrorCode = "LLM_TIMEOUT"
	ErrNetworkFailed    types.ErrorCode = "LLM_NETWORK_FAILED"
	ErrUnavailable      types.ErrorCode = "LLM_UNAVAILABLE"
	ErrInvalidRequest   types.ErrorCode = "LLM_INVALID_REQUEST"
	ErrGenerationFailed types.ErrorCode = "LLM_GENERATION_FAILED"
	ErrContextCanceled  types.ErrorCode = "LLM_CONTEXT_CANCELED"
)

// IsRetryable determines if a generation error is transient and may succeed
// on retry. The caller owns the retry loop; this is the classification it
// branches on.
func IsRetryable(err error) bool {
	var coreErr *types.CoreError
	if !errors.As(err, &coreErr) {
		return false
	}

	if coreErr.Retryable {
		return true
	}

	switch coreErr.Code {
	case ErrNetworkFailed, ErrTimeout, ErrRateLimited, ErrUnavailable:
		return true

	// Cancellation is user-initiated; auth and malformed requests will not
	// improve on retry.
	case ErrContextCanceled, ErrAuthFailed, ErrInvalidRequest:
		return false

	default:
		return false
	}
}

// NewAuthError creates a non-retryable authentication error.
func NewAuthError(provider string, cause error) error {
	return types.WrapError(ErrAuthFailed,
		fmt.Sprintf("provider '%s' authentication failed", provider), cause)
}

// NewRateLimitError creates a retryable rate-limit error.
func NewRateLimitError(provider string) error {
	return &types.CoreError{
		Code:      ErrRateLimited,
		Message:   "rate limit exceeded for provider: " + provider,
		Retryable: true,
	}
}

// NewTimeoutError creates a retryable timeout error.
func NewTimeoutError(message string) error {
	return &types.CoreError{
		Code:      ErrTimeout,
		Message:   message,
		Retryable: true,
	}
}

// NewNetworkError creates a retryable network error.
func NewNetworkError(message string, cause error) error {
	return &types.CoreError{
		Code:      ErrNetworkFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// NewUnavailableError creates a retryable error for a provider that is
// temporarily down.
func NewUnavailableError(provider string, cause error) error {
	return &types.CoreError{
		Code:      ErrUnavailable,
		Message:   "provider temporarily unavailable: " + provider,
		Retryable: true,
		Cause:     cause,
	}
}

// NewInvalidRequestError creates a non-retryable error for requests the
// provider rejected as malformed.
func NewInvalidRequestError(message string) error {
	return types.NewError(ErrInvalidRequest, message)
}

// TranslateError converts a provider error into a coded error based on the
// error chain and message content. Already-coded errors pass through.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var coreErr *types.CoreError
	if errors.As(err, &coreErr) {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return types.WrapError(ErrContextCanceled, "generation canceled", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &types.CoreError{
			Code:      ErrTimeout,
			Message:   "generation deadline exceeded",
			Retryable: true,
			Cause:     err,
		}
	}

	lowerMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lowerMsg, "unauthorized") ||
		strings.Contains(lowerMsg, "authentication") ||
		strings.Contains(lowerMsg, "api key"):
		return NewAuthError(provider, err)
	case strings.Contains(lowerMsg, "rate limit") ||
		strings.Contains(lowerMsg, "too many requests"):
		return NewRateLimitError(provider)
	case strings.Contains(lowerMsg, "timeout") ||
		strings.Contains(lowerMsg, "deadline"):
		return NewTimeoutError(err.Error())
	case strings.Contains(lowerMsg, "network") ||
		strings.Contains(lowerMsg, "connection"):
		return NewNetworkError(err.Error(), err)
	default:
		return NewUnavailableError(provider, err)
	}
}
