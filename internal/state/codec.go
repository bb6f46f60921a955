package state

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// FromJSON decodes a JSON document into a Value tree.
func FromJSON(data []byte) (Value, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return FromAny(raw), nil
}

// ToJSON encodes a Value tree as JSON. All six value kinds survive a
// ToJSON/FromJSON round trip.
func ToJSON(v Value) ([]byte, error) {
	if v == nil {
		v = Null{}
	}
	return json.Marshal(v.Interface())
}

// FromYAML decodes a YAML document into a Value tree.
func FromYAML(data []byte) (Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return FromAny(raw), nil
}

// ToYAML encodes a Value tree as YAML.
func ToYAML(v Value) ([]byte, error) {
	if v == nil {
		v = Null{}
	}
	return yaml.Marshal(v.Interface())
}
