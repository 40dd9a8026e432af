// Package jsonpointer provides evaluation of RFC6901-style JSON Pointers against the
// generic document tree produced by the loader package (insertion-ordered mappings,
// sequences and scalars).
package jsonpointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/speakeasy-api/clientgen/sequencedmap"
)

const (
	// ErrNotFound is returned when the target is not found.
	ErrNotFound = errors.Error("not found")
	// ErrInvalidPath is returned when the path is invalid.
	ErrInvalidPath = errors.Error("invalid path")
)

// JSONPointer represents a JSON Pointer value, for example "/components/schemas/User".
// Reference tokens are "~0"/"~1" unescaped during navigation but never URL-decoded.
type JSONPointer string

// Validate will check the JSONPointer is well formed.
func (j JSONPointer) Validate() error {
	_, err := j.parts()
	return err
}

// GetTarget evaluates the JSONPointer against the source tree and returns the target node.
func GetTarget(source any, pointer JSONPointer) (any, error) {
	parts, err := pointer.parts()
	if err != nil {
		return nil, err
	}

	current := source
	currentPath := ""

	for _, part := range parts {
		currentPath += "/" + part

		switch node := current.(type) {
		case *sequencedmap.Map[string, any]:
			value, ok := node.Get(unescape(part))
			if !ok {
				return nil, ErrNotFound.Wrap(fmt.Errorf("key %q not found at %s", unescape(part), currentPath))
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil {
				return nil, ErrInvalidPath.Wrap(fmt.Errorf("expected index, got %q at %s", part, currentPath))
			}
			if index < 0 || index >= len(node) {
				return nil, ErrNotFound.Wrap(fmt.Errorf("index %d out of range for sequence of length %d at %s", index, len(node), currentPath))
			}
			current = node[index]
		default:
			return nil, ErrInvalidPath.Wrap(fmt.Errorf("expected mapping or sequence, got %T at %s", current, currentPath))
		}
	}

	return current, nil
}

func (j JSONPointer) parts() ([]string, error) {
	if len(j) == 0 {
		return nil, ErrInvalidPath.Wrap(errors.New("jsonpointer must not be empty"))
	}

	if len(j) == 1 && j[0] == '/' {
		return nil, nil
	}

	if !strings.HasPrefix(string(j), "/") {
		return nil, ErrInvalidPath.Wrap(fmt.Errorf("jsonpointer must start with /: %s", string(j)))
	}

	parts := strings.Split(strings.TrimPrefix(string(j), "/"), "/")

	for _, part := range parts {
		if len(part) == 0 {
			return nil, ErrInvalidPath.Wrap(fmt.Errorf("jsonpointer part must not be empty: %s", string(j)))
		}
	}

	return parts, nil
}

// EscapeToken escapes a string for use as a reference token in a JSON pointer,
// replacing "~" with "~0" and "/" with "~1".
func EscapeToken(part string) string {
	return strings.ReplaceAll(strings.ReplaceAll(part, "~", "~0"), "/", "~1")
}

func unescape(part string) string {
	part = strings.ReplaceAll(part, "~1", "/")
	return strings.ReplaceAll(part, "~0", "~")
}
