package openapi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeHint_Primitives(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "T", "version": "1.0.0"},
		"paths": {},
		"components": {
			"schemas": {
				"Sample": {
					"type": "object",
					"properties": {
						"a": {"type": "string"},
						"b": {"type": "number"},
						"c": {"type": "integer"},
						"d": {"type": "boolean"},
						"e": {"type": "array", "items": {"type": "string"}},
						"f": {"type": "array"},
						"g": {"type": "object"},
						"h": {}
					}
				}
			}
		}
	}`)

	sample, ok := doc.Components.Schemas.Get("Sample")
	require.True(t, ok)

	want := map[string]string{
		"a": "string",
		"b": "number",
		"c": "integer",
		"d": "boolean",
		"e": "array-of<string>",
		"f": "array-of<any>",
		"g": "map<string, any>",
		"h": "any",
	}
	for name, hint := range want {
		prop, ok := sample.Schema.Properties.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, hint, doc.TypeHint(prop), name)
	}
}

// An inlined object whose property names exactly match a reusable definition is
// reported as that definition, even when the object declares no type at all.
func TestTypeHint_MatchesModelWithoutDeclaredType(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "T", "version": "1.0.0"},
		"paths": {
			"/thing": {
				"get": {
					"operationId": "getThing",
					"responses": {
						"200": {
							"description": "ok",
							"content": {
								"application/json": {
									"schema": {
										"properties": {
											"id": {"type": "integer"},
											"name": {"type": "string"}
										}
									}
								}
							}
						}
					}
				}
			}
		},
		"components": {
			"schemas": {
				"ReferenceWithoutType": {
					"properties": {
						"id": {"type": "integer"},
						"name": {"type": "string"}
					}
				}
			}
		}
	}`)

	ops := doc.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "ReferenceWithoutType", ops[0].ReturnType)
}

func TestTypeHint_FirstDefinitionWinsOnEqualPropertySets(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "T", "version": "1.0.0"},
		"paths": {
			"/pet": {
				"get": {
					"operationId": "getPet",
					"responses": {
						"200": {
							"description": "ok",
							"content": {
								"application/json": {
									"schema": {
										"type": "object",
										"properties": {"name": {"type": "string"}}
									}
								}
							}
						}
					}
				}
			}
		},
		"components": {
			"schemas": {
				"Cat": {"type": "object", "properties": {"name": {"type": "string"}}},
				"Dog": {"type": "object", "properties": {"name": {"type": "string"}}}
			}
		}
	}`)

	ops := doc.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "Cat", ops[0].ReturnType)
}

func TestTypeHint_ObjectMatchingNoModelIsGeneric(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{
		"openapi": "3.0.0",
		"info": {"title": "T", "version": "1.0.0"},
		"paths": {
			"/misc": {
				"get": {
					"operationId": "getMisc",
					"responses": {
						"200": {
							"description": "ok",
							"content": {
								"application/json": {
									"schema": {
										"type": "object",
										"properties": {"unmatched": {"type": "string"}}
									}
								}
							}
						}
					}
				}
			}
		},
		"components": {
			"schemas": {
				"User": {"type": "object", "properties": {"id": {"type": "integer"}}}
			}
		}
	}`)

	ops := doc.Operations()
	require.Len(t, ops, 1)
	assert.Equal(t, "map<string, any>", ops[0].ReturnType)
}

func TestTypeHint_NilSchema(t *testing.T) {
	t.Parallel()

	doc := parseDoc(t, `{"openapi": "3.0.0", "info": {"title": "T", "version": "1.0.0"}, "paths": {}}`)

	assert.Equal(t, "any", doc.TypeHint(nil))
}
