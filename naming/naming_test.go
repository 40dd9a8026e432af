package naming_test

import (
	"testing"

	"github.com/speakeasy-api/clientgen/naming"
	"github.com/stretchr/testify/assert"
)

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "camel case",
			input:    "getUserById",
			expected: "get_user_by_id",
		},
		{
			name:     "pascal case",
			input:    "HelloWorld",
			expected: "hello_world",
		},
		{
			name:     "acronym prefix",
			input:    "HTTPResponse",
			expected: "http_response",
		},
		{
			name:     "acronym suffix",
			input:    "APIClient",
			expected: "api_client",
		},
		{
			name:     "kebab case",
			input:    "user-id",
			expected: "user_id",
		},
		{
			name:     "spaces",
			input:    "My Pet Store",
			expected: "my_pet_store",
		},
		{
			name:     "digits before upper",
			input:    "v2Endpoint",
			expected: "v2_endpoint",
		},
		{
			name:     "already snake case",
			input:    "already_snake",
			expected: "already_snake",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, naming.ToSnakeCase(tt.input))
		})
	}
}
