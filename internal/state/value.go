package state

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindText
	KindSequence
	KindMapping
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is the tagged union all loom components operate on: the state tree
// is a single root Value, normally a Mapping. Components pattern-match over
// the finite set of kinds instead of relying on runtime type inspection.
type Value interface {
	// Kind reports which variant this value is.
	Kind() Kind

	// String returns the canonical textual form of the value. Scalars render
	// as their literal text; sequences and mappings render as compact JSON.
	String() string

	// Interface converts the value to its plain Go representation
	// (nil, bool, float64, string, []any, map[string]any).
	Interface() any
}

// Null is the absent/empty value.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "" }
func (Null) Interface() any { return nil }

// Bool is a boolean scalar.
type Bool bool

func (b Bool) Kind() Kind     { return KindBool }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Interface() any { return bool(b) }

// Number is a numeric scalar. All numbers are carried as float64, matching
// the generic structured-text formats the tree round-trips through.
type Number float64

func (n Number) Kind() Kind { return KindNumber }

// String renders integral numbers without a fractional part, so an index
// stored as 2 resolves to "2" rather than "2.000000".
func (n Number) String() string {
	f := float64(n)
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (n Number) Interface() any { return float64(n) }

// Text is a string scalar.
type Text string

func (t Text) Kind() Kind     { return KindText }
func (t Text) String() string { return string(t) }
func (t Text) Interface() any { return string(t) }

// Sequence is an ordered list of values.
type Sequence []Value

func (s Sequence) Kind() Kind { return KindSequence }

func (s Sequence) String() string { return marshalCanonical(s) }

func (s Sequence) Interface() any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v.Interface()
	}
	return out
}

// Mapping is a string-keyed collection of values.
type Mapping map[string]Value

func (m Mapping) Kind() Kind { return KindMapping }

func (m Mapping) String() string { return marshalCanonical(m) }

func (m Mapping) Interface() any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v.Interface()
	}
	return out
}

// marshalCanonical renders a container as compact JSON. encoding/json sorts
// mapping keys, which keeps the form stable across invocations.
func marshalCanonical(v Value) string {
	data, err := json.Marshal(v.Interface())
	if err != nil {
		return fmt.Sprintf("%v", v.Interface())
	}
	return string(data)
}

// FromAny converts a plain Go value (as produced by encoding/json or
// yaml.v3 decoding into any) to a Value. Unrecognized types degrade to
// their formatted text rather than failing.
func FromAny(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Value:
		return val
	case bool:
		return Bool(val)
	case float64:
		return Number(val)
	case float32:
		return Number(val)
	case int:
		return Number(val)
	case int64:
		return Number(val)
	case uint64:
		return Number(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return Text(val.String())
		}
		return Number(f)
	case string:
		return Text(val)
	case []any:
		seq := make(Sequence, len(val))
		for i, item := range val {
			seq[i] = FromAny(item)
		}
		return seq
	case map[string]any:
		m := make(Mapping, len(val))
		for k, item := range val {
			m[k] = FromAny(item)
		}
		return m
	case map[any]any:
		// Older YAML decoders produce interface-keyed maps.
		m := make(Mapping, len(val))
		for k, item := range val {
			m[fmt.Sprintf("%v", k)] = FromAny(item)
		}
		return m
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

// IsNull reports whether v is absent or the Null value.
func IsNull(v Value) bool {
	return v == nil || v.Kind() == KindNull
}
