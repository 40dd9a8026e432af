// Package loader reads an OpenAPI document from disk into a generic tree of
// insertion-ordered mappings, sequences and scalars, and eagerly inlines local
// $ref nodes so downstream modelling operates on a self-contained tree.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/speakeasy-api/clientgen/sequencedmap"
	"gopkg.in/yaml.v3"
)

const (
	// ErrNotFound is returned when the document path does not exist.
	ErrNotFound = errors.Error("not found")
	// ErrInvalidFormat is returned when the document is neither valid JSON nor valid YAML.
	ErrInvalidFormat = errors.Error("invalid format")
	// ErrUnresolvedReference is returned when a $ref target cannot be resolved locally.
	ErrUnresolvedReference = errors.Error("unresolved reference")
)

// RefKey is the mapping key that marks a node as a reference to another subtree.
const RefKey = "$ref"

// Load reads the document at path and parses it into a generic tree. Mappings are
// represented as *sequencedmap.Map[string, any], sequences as []any and scalars as
// string, int64, float64, bool or nil.
func Load(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound.Wrap(fmt.Errorf("document %s does not exist", path))
		}
		return nil, err
	}

	return Parse(data)
}

// Parse parses document bytes into a generic tree. A strict JSON parse is attempted
// first, falling back to YAML which accepts JSON-like supersets.
func Parse(data []byte) (any, error) {
	tree, jsonErr := parseJSON(data)
	if jsonErr == nil {
		return tree, nil
	}

	tree, yamlErr := parseYAML(data)
	if yamlErr == nil {
		return tree, nil
	}

	return nil, ErrInvalidFormat.Wrap(fmt.Errorf("document is not valid JSON (%v) or YAML (%v)", jsonErr, yamlErr))
}

func parseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing content after JSON document")
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
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case json.Number:
		if i, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

func decodeJSONObject(dec *json.Decoder) (*sequencedmap.Map[string, any], error) {
	m := sequencedmap.New[string, any]()

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

		m.Set(key, value)
	}

	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return m, nil
}

func decodeJSONArray(dec *json.Decoder) ([]any, error) {
	s := []any{}

	for dec.More() {
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		s = append(s, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return s, nil
}

func parseYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	return yamlNodeToTree(root.Content[0])
}

func yamlNodeToTree(node *yaml.Node) (any, error) {
	node = resolveAlias(node)
	if node == nil {
		return nil, errors.New("unresolvable yaml alias")
	}

	switch node.Kind {
	case yaml.MappingNode:
		m := sequencedmap.New[string, any]()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := resolveAlias(node.Content[i])
			if keyNode == nil {
				return nil, errors.New("unresolvable yaml alias in mapping key")
			}

			value, err := yamlNodeToTree(node.Content[i+1])
			if err != nil {
				return nil, err
			}

			m.Set(keyNode.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		s := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := yamlNodeToTree(item)
			if err != nil {
				return nil, err
			}
			s = append(s, value)
		}
		return s, nil
	case yaml.ScalarNode:
		return yamlScalarValue(node)
	default:
		return nil, fmt.Errorf("unexpected yaml node kind %v at line %d", node.Kind, node.Line)
	}
}

func yamlScalarValue(node *yaml.Node) (any, error) {
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}

	// Normalize integral types so JSON and YAML documents produce identical trees.
	// Values above MaxInt64 become float64, matching the JSON path where ParseInt
	// fails and the number falls back to Float64.
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return float64(t), nil
		}
		return int64(t), nil
	default:
		return v, nil
	}
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}

	if node.Kind == yaml.AliasNode {
		return resolveAlias(node.Alias)
	}
	return node
}
