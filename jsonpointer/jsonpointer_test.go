package jsonpointer_test

import (
	"testing"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/speakeasy-api/clientgen/jsonpointer"
	"github.com/speakeasy-api/clientgen/sequencedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() *sequencedmap.Map[string, any] {
	user := sequencedmap.New[string, any]()
	user.Set("type", "object")

	schemas := sequencedmap.New[string, any]()
	schemas.Set("User", user)
	schemas.Set("a/b", "slash value")

	components := sequencedmap.New[string, any]()
	components.Set("schemas", schemas)

	root := sequencedmap.New[string, any]()
	root.Set("openapi", "3.0.0")
	root.Set("components", components)
	root.Set("tags", []any{"one", "two"})

	return root
}

func TestGetTarget_Success(t *testing.T) {
	t.Parallel()

	root := testTree()

	tests := []struct {
		name     string
		pointer  jsonpointer.JSONPointer
		expected any
	}{
		{
			name:     "scalar",
			pointer:  "/openapi",
			expected: "3.0.0",
		},
		{
			name:     "nested mapping value",
			pointer:  "/components/schemas/User/type",
			expected: "object",
		},
		{
			name:     "sequence index",
			pointer:  "/tags/1",
			expected: "two",
		},
		{
			name:     "escaped slash in key",
			pointer:  "/components/schemas/a~1b",
			expected: "slash value",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target, err := jsonpointer.GetTarget(root, tt.pointer)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, target)
		})
	}
}

func TestGetTarget_Errors(t *testing.T) {
	t.Parallel()

	root := testTree()

	tests := []struct {
		name    string
		pointer jsonpointer.JSONPointer
		wantErr error
	}{
		{
			name:    "missing key",
			pointer: "/components/schemas/Missing",
			wantErr: jsonpointer.ErrNotFound,
		},
		{
			name:    "index out of range",
			pointer: "/tags/5",
			wantErr: jsonpointer.ErrNotFound,
		},
		{
			name:    "index into scalar",
			pointer: "/openapi/nested",
			wantErr: jsonpointer.ErrInvalidPath,
		},
		{
			name:    "non index into sequence",
			pointer: "/tags/first",
			wantErr: jsonpointer.ErrInvalidPath,
		},
		{
			name:    "missing leading slash",
			pointer: "components/schemas",
			wantErr: jsonpointer.ErrInvalidPath,
		},
		{
			name:    "empty pointer",
			pointer: "",
			wantErr: jsonpointer.ErrInvalidPath,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := jsonpointer.GetTarget(root, tt.pointer)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestJSONPointer_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, jsonpointer.JSONPointer("/a/b").Validate())
	assert.NoError(t, jsonpointer.JSONPointer("/").Validate())
	assert.Error(t, jsonpointer.JSONPointer("a/b").Validate())
	assert.Error(t, jsonpointer.JSONPointer("").Validate())
	assert.Error(t, jsonpointer.JSONPointer("/a//b").Validate())
}
