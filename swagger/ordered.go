package swagger

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Entry is one key/value pair of an OrderedMap.
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap is a string-keyed map that marshals its entries in insertion
// order, as a JSON object or a YAML mapping.
type OrderedMap[V any] []Entry[V]

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in order.
func (m OrderedMap[V]) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m OrderedMap[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, e := range m {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, err
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&value,
		)
	}

	return node, nil
}
