package openapi_test

import (
	"testing"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/speakeasy-api/clientgen/loader"
	"github.com/speakeasy-api/clientgen/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseDoc parses document bytes through the full pipeline: generic tree, reference
// resolution, typed graph.
func parseDoc(t *testing.T, doc string) *openapi.Document {
	t.Helper()

	tree, err := loader.Parse([]byte(doc))
	require.NoError(t, err)

	resolved, err := loader.ResolveReferences(tree)
	require.NoError(t, err)

	parsed, err := openapi.ParseDocument(resolved)
	require.NoError(t, err)
	return parsed
}

const userStoreDoc = `{
	"openapi": "3.0.0",
	"info": {"title": "User Store", "version": "1.0.0"},
	"paths": {
		"/users/{userId}": {
			"get": {
				"operationId": "getUserById",
				"parameters": [
					{"name": "userId", "in": "path", "required": true, "schema": {"type": "integer"}}
				],
				"responses": {
					"200": {
						"description": "A user",
						"content": {
							"application/json": {"schema": {"$ref": "#/components/schemas/User"}}
						}
					}
				}
			}
		},
		"/users": {
			"post": {
				"operationId": "createUser",
				"requestBody": {
					"content": {
						"application/json": {"schema": {"$ref": "#/components/schemas/User"}}
					}
				},
				"responses": {
					"201": {
						"description": "Created user",
						"content": {
							"application/json": {"schema": {"$ref": "#/components/schemas/User"}}
						}
					}
				}
			}
		}
	},
	"components": {
		"schemas": {
			"User": {
				"type": "object",
				"properties": {
					"id": {"type": "integer"},
					"name": {"type": "string"},
					"email": {"type": "string"}
				},
				"required": ["id", "name", "email"]
			}
		}
	}
}`

func TestParseDocument_Success(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, userStoreDoc)

	assert.Equal(t, "3.0.0", doc.OpenAPI)
	require.NotNil(t, doc.Info)
	assert.Equal(t, "User Store", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)

	assert.Equal(t, 2, doc.Paths.Len())

	item, ok := doc.Paths.Get("/users/{userId}")
	require.True(t, ok)
	require.NotNil(t, item.Get)
	assert.Equal(t, "getUserById", item.Get.GetOperationID())
	require.Len(t, item.Get.Parameters, 1)
	assert.Equal(t, "userId", item.Get.Parameters[0].Name)
	assert.Equal(t, openapi.ParameterLocationPath, item.Get.Parameters[0].In)
	assert.True(t, item.Get.Parameters[0].Required)

	require.NotNil(t, doc.Components)
	user, ok := doc.Components.Schemas.Get("User")
	require.True(t, ok)
	require.False(t, user.IsReference())
	assert.Equal(t, []string{"id", "name", "email"}, user.Schema.Required)
	assert.Equal(t, 3, user.Schema.Properties.Len())
}

func TestParseDocument_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		doc         string
		wantMessage string
	}{
		{
			name:        "missing info",
			doc:         `{"openapi": "3.0.0", "paths": {}}`,
			wantMessage: "info is required",
		},
		{
			name:        "missing info title",
			doc:         `{"openapi": "3.0.0", "info": {"version": "1.0.0"}, "paths": {}}`,
			wantMessage: "info.title is required",
		},
		{
			name:        "missing paths",
			doc:         `{"openapi": "3.0.0", "info": {"title": "T", "version": "1.0.0"}}`,
			wantMessage: "paths is required",
		},
		{
			name:        "missing openapi version",
			doc:         `{"info": {"title": "T", "version": "1.0.0"}, "paths": {}}`,
			wantMessage: "$.openapi is required",
		},
		{
			name: "invalid parameter location",
			doc: `{"openapi": "3.0.0", "info": {"title": "T", "version": "1.0.0"}, "paths": {
				"/a": {"get": {"parameters": [{"name": "x", "in": "body"}], "responses": {"200": {"description": "ok"}}}}
			}}`,
			wantMessage: "paths./a.get.parameters[0].in must be one of",
		},
		{
			name: "missing response description",
			doc: `{"openapi": "3.0.0", "info": {"title": "T", "version": "1.0.0"}, "paths": {
				"/a": {"get": {"responses": {"200": {}}}}
			}}`,
			wantMessage: "paths./a.get.responses.200.description is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree, err := loader.Parse([]byte(tt.doc))
			require.NoError(t, err)

			_, err = openapi.ParseDocument(tree)
			require.Error(t, err)
			assert.True(t, errors.Is(err, openapi.ErrValidation))
			assert.Contains(t, err.Error(), tt.wantMessage)
		})
	}
}

func TestParseDocument_ResidualReferenceBecomesUnion(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "T", "version": "1.0.0"},
		"paths": {},
		"components": {
			"schemas": {
				"Node": {
					"type": "object",
					"properties": {
						"value": {"type": "string"},
						"next": {"$ref": "#/components/schemas/Node"}
					}
				}
			}
		}
	}`)

	node, ok := doc.Components.Schemas.Get("Node")
	require.True(t, ok)
	require.False(t, node.IsReference())

	// The self-reference was inlined one level; the nested occurrence survives as a
	// tagged reference named after the definition.
	next, ok := node.Schema.Properties.Get("next")
	require.True(t, ok)
	require.False(t, next.IsReference())

	inner, ok := next.Schema.Properties.Get("next")
	require.True(t, ok)
	require.True(t, inner.IsReference())
	assert.Equal(t, "Node", inner.Reference.Name())
}

func TestParse_Determinism(t *testing.T) {
	t.Parallel()

	first := parseDoc(t, userStoreDoc)
	second := parseDoc(t, userStoreDoc)

	assert.Equal(t, first.Operations(), second.Operations())
	assert.Equal(t, first.Models(), second.Models())
}
