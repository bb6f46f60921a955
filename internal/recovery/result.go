package recovery

import (
	"github.com/storyloom/loom/internal/state"
)

// Result is the outcome of recovering structured data from raw generated
// text. It is always a returned value, never a panic or error control flow:
// a failed recovery still carries a well-formed Value so the pipeline can
// continue in a degraded but defined way.
type Result struct {
	// Value holds the recovered data on success. On failure it holds the
	// failure marker mapping {"error": reason, "raw_output": raw} so
	// downstream code can branch on it like any other value.
	Value state.Value

	// Failed reports whether every recovery layer was exhausted.
	Failed bool

	// Reason describes why recovery failed. Empty on success.
	Reason string

	// Raw is the original text handed to the parser. Preserved on failure
	// for diagnostics or manual fallback.
	Raw string
}

// OK reports whether the recovery produced usable data.
func (r Result) OK() bool { return !r.Failed }

// Success wraps a recovered value.
func Success(v state.Value) Result {
	return Result{Value: v}
}

// Failure builds the explicit failure marker for raw text that yielded no
// usable structure.
func Failure(raw, reason string) Result {
	return Result{
		Value: state.Mapping{
			"error":      state.Text(reason),
			"raw_output": state.Text(raw),
		},
		Failed: true,
		Reason: reason,
		Raw:    raw,
	}
}

// IsFailureValue reports whether v looks like a failure marker produced by
// Failure. Callers that only see the Value (for example after it was written
// into a tree) can use this to detect a degraded cycle.
func IsFailureValue(v state.Value) bool {
	m, ok := v.(state.Mapping)
	if !ok {
		return false
	}
	_, hasErr := m["error"]
	_, hasRaw := m["raw_output"]
	return hasErr && hasRaw
}
