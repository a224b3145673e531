package sauce

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
	"gopkg.in/yaml.v3"
)

// serializeValue converts containers nested in v into plain Go values.
func serializeValue(v any) any {
	switch x := v.(type) {
	case *Vector:
		if x == nil {
			return nil
		}
		return x.Serialize()
	case *String:
		if x == nil {
			return nil
		}
		return x.value
	}
	if o := asObject(v); o != nil {
		return o.Serialize()
	}
	return v
}

// ============================================================================
// JSON
// ============================================================================

// MarshalJSON encodes the Vector as a JSON array.
func (v *Vector) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	if v.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.items)
}

// MarshalJSON encodes the Object as a JSON object in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range o.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *ImmutableObject) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.inner.MarshalJSON()
}

func (o *AwareObject) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.inner.MarshalJSON()
}

// MarshalJSON encodes the String as a JSON string.
func (s *String) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON decodes any JSON value into the Vector, as NewVector would
// treat the decoded value.
func (v *Vector) UnmarshalJSON(data []byte) error {
	value, err := decodeJSON(data)
	if err != nil {
		return err
	}
	v.items = NewVector(value).items
	v.cursor = 0
	return nil
}

// UnmarshalJSON decodes any JSON value into the Object, as NewObject would
// treat the decoded value. Key order is preserved.
func (o *Object) UnmarshalJSON(data []byte) error {
	value, err := decodeJSON(data)
	if err != nil {
		return err
	}
	o.storage = NewObject(value).storage
	return nil
}

// UnmarshalJSON decodes a JSON string into the String.
func (s *String) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return serrors.NewFormat("json", err)
	}
	s.value = text
	return nil
}

// decodeJSON decodes a single JSON document. Objects become *Object, arrays
// *Vector, integral numbers int64 and other numbers float64.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, serrors.NewFormat("json", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, serrors.NewFormat("json", errors.New("unexpected data after top-level value"))
	}
	return value, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject(nil)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			vec := &Vector{items: []any{}}
			for dec.More() {
				value, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				vec.items = append(vec.items, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return vec, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// ============================================================================
// YAML
// ============================================================================

// MarshalYAML encodes the Vector as a YAML sequence.
func (v *Vector) MarshalYAML() (any, error) {
	return toYAMLNode(v)
}

// MarshalYAML encodes the Object as a YAML mapping in insertion order.
func (o *Object) MarshalYAML() (any, error) {
	return toYAMLNode(o)
}

func (o *ImmutableObject) MarshalYAML() (any, error) {
	return toYAMLNode(o.inner)
}

func (o *AwareObject) MarshalYAML() (any, error) {
	return toYAMLNode(o.inner)
}

// MarshalYAML encodes the String as a YAML string.
func (s *String) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML decodes any YAML node into the Vector.
func (v *Vector) UnmarshalYAML(node *yaml.Node) error {
	value, err := fromYAMLNode(node)
	if err != nil {
		return serrors.NewFormat("yaml", err)
	}
	v.items = NewVector(value).items
	v.cursor = 0
	return nil
}

// UnmarshalYAML decodes any YAML node into the Object, keeping mapping
// order.
func (o *Object) UnmarshalYAML(node *yaml.Node) error {
	value, err := fromYAMLNode(node)
	if err != nil {
		return serrors.NewFormat("yaml", err)
	}
	o.storage = NewObject(value).storage
	return nil
}

// UnmarshalYAML decodes a YAML scalar into the String.
func (s *String) UnmarshalYAML(node *yaml.Node) error {
	var text string
	if err := node.Decode(&text); err != nil {
		return serrors.NewFormat("yaml", err)
	}
	s.value = text
	return nil
}

func toYAMLNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case *Vector:
		if x == nil {
			return nullNode(), nil
		}
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range x.items {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Object:
		if x == nil {
			return nullNode(), nil
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, val := range x.All() {
			child, err := toYAMLNode(val)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
			node.Content = append(node.Content, key, child)
		}
		return node, nil
	case *ImmutableObject, *AwareObject:
		return toYAMLNode(asObject(x))
	case *String:
		if x == nil {
			return nullNode(), nil
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: x.value}, nil
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, err
	}
	return node, nil
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// fromYAMLNode converts a node tree into containers. Mappings become
// *Object, sequences *Vector and integers int64.
func fromYAMLNode(node *yaml.Node) (any, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(node.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(node.Alias)
	case yaml.MappingNode:
		obj := NewObject(nil)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var key any
			if err := node.Content[i].Decode(&key); err != nil {
				return nil, err
			}
			value, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(key, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		vec := &Vector{items: make([]any, 0, len(node.Content))}
		for _, child := range node.Content {
			value, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			vec.items = append(vec.items, value)
		}
		return vec, nil
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		if i, ok := value.(int); ok {
			return int64(i), nil
		}
		return value, nil
	}
	return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
}

// ============================================================================
// Documents
// ============================================================================

// Decode parses a JSON or YAML document into containers. format is "json",
// "yaml" or "auto"; auto picks JSON when the document starts with '{' or
// '['. Empty input decodes to nil.
func Decode(data []byte, format string) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch strings.ToLower(format) {
	case "auto", "":
		if trimmed[0] == '{' || trimmed[0] == '[' {
			return decodeJSON(trimmed)
		}
		return decodeYAML(trimmed)
	case "json":
		return decodeJSON(trimmed)
	case "yaml", "yml":
		return decodeYAML(trimmed)
	}
	return nil, serrors.New("FMT-0002", map[string]any{"Format": format})
}

func decodeYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, serrors.NewFormat("yaml", err)
	}
	value, err := fromYAMLNode(&node)
	if err != nil {
		return nil, serrors.NewFormat("yaml", err)
	}
	return value, nil
}

// Encode renders v as indented JSON or as YAML.
func Encode(v any, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json", "auto", "":
		return json.MarshalIndent(v, "", "  ")
	case "yaml", "yml":
		node, err := toYAMLNode(v)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, serrors.New("FMT-0002", map[string]any{"Format": format})
}
