// Package openapi models an OpenAPI v3 document as a typed entity graph and derives
// the two views consumed by code generation: a flattened list of operations and a
// dependency-ordered map of named model definitions.
package openapi

import (
	"strings"

	"github.com/speakeasy-api/clientgen/sequencedmap"
)

// SchemaType is the declared kind of a schema.
type SchemaType string

const (
	SchemaTypeString  SchemaType = "string"
	SchemaTypeNumber  SchemaType = "number"
	SchemaTypeInteger SchemaType = "integer"
	SchemaTypeBoolean SchemaType = "boolean"
	SchemaTypeArray   SchemaType = "array"
	SchemaTypeObject  SchemaType = "object"
)

// ParameterLocation is the location of a parameter.
type ParameterLocation string

const (
	ParameterLocationQuery  ParameterLocation = "query"
	ParameterLocationHeader ParameterLocation = "header"
	ParameterLocationPath   ParameterLocation = "path"
	ParameterLocationCookie ParameterLocation = "cookie"
)

// Document is the root of a parsed OpenAPI document. It is constructed once by
// ParseDocument and read-only afterwards.
type Document struct {
	// OpenAPI is the version of the OpenAPI specification the document conforms to.
	OpenAPI string
	// Info provides metadata about the API.
	Info *Info
	// Servers is the list of servers the API is available on.
	Servers []*Server
	// Paths holds the available paths and their operations, in document order.
	Paths *sequencedmap.Map[string, *PathItem]
	// Components holds the reusable objects for the document.
	Components *Components
}

// Info provides metadata about the API.
type Info struct {
	// Title is the title of the API.
	Title string
	// Version is the version of the API document.
	Version string
	// Description is a description of the API.
	Description *string
	// TermsOfService is a URI to the terms of service for the API.
	TermsOfService *string
	// Contact is the contact information for the API.
	Contact *Contact
	// License is the license information for the API.
	License *License
}

// Contact information for the documented API.
type Contact struct {
	Name  *string
	URL   *string
	Email *string
}

// License information for the documented API.
type License struct {
	Name string
	URL  *string
}

// Server describes a single server the API is available on.
type Server struct {
	// URL is a URL to the target host.
	URL string
	// Description describes the host designated by the URL.
	Description *string
}

// PathItem describes the operations available on a single path.
type PathItem struct {
	Summary     *string
	Description *string

	Get     *Operation
	Put     *Operation
	Post    *Operation
	Delete  *Operation
	Options *Operation
	Head    *Operation
	Patch   *Operation
	Trace   *Operation

	// Parameters apply to all operations under this path.
	Parameters []*Parameter
}

// httpMethods is the fixed order operations are derived in.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

// operation returns the operation for the given lowercase HTTP method, or nil.
func (p *PathItem) operation(method string) *Operation {
	if p == nil {
		return nil
	}

	switch method {
	case "get":
		return p.Get
	case "put":
		return p.Put
	case "post":
		return p.Post
	case "delete":
		return p.Delete
	case "options":
		return p.Options
	case "head":
		return p.Head
	case "patch":
		return p.Patch
	case "trace":
		return p.Trace
	default:
		return nil
	}
}

// Operation describes a single API operation on a path.
type Operation struct {
	// OperationID is a unique identifier for the operation. Optional; absence
	// triggers the fallback generated method name.
	OperationID *string
	// Summary is a short summary of what the operation does.
	Summary *string
	// Description is a verbose explanation of the operation behavior.
	Description *string
	// Deprecated declares this operation to be deprecated.
	Deprecated bool
	// Parameters is the ordered list of parameters for the operation.
	Parameters []*Parameter
	// RequestBody is the request body applicable for this operation.
	RequestBody *RequestBody
	// Responses maps status-code strings to the expected responses, in document order.
	Responses *sequencedmap.Map[string, *Response]
}

// GetOperationID returns the operation identifier or empty string if not set.
func (o *Operation) GetOperationID() string {
	if o == nil || o.OperationID == nil {
		return ""
	}
	return *o.OperationID
}

// Parameter describes a single operation parameter.
type Parameter struct {
	// Name is the name of the parameter as it appears in the document.
	Name string
	// In is the location of the parameter.
	In ParameterLocation
	// Description is a brief description of the parameter.
	Description *string
	// Required determines whether this parameter is mandatory.
	Required bool
	// Deprecated declares this parameter to be deprecated.
	Deprecated bool
	// Schema is the schema defining the type used for the parameter.
	Schema *SchemaOrReference
}

// RequestBody describes a single request body.
type RequestBody struct {
	Description *string
	Required    bool
	// Content maps media-type strings to their definitions, in document order.
	Content *sequencedmap.Map[string, *MediaType]
}

// Response describes a single response from an API operation.
type Response struct {
	Description string
	// Content maps media-type strings to their definitions, in document order.
	Content *sequencedmap.Map[string, *MediaType]
}

// MediaType provides the schema for a media type.
type MediaType struct {
	Schema *SchemaOrReference
}

// Components holds the reusable objects for the document.
type Components struct {
	// Schemas is the global reusable-definitions table, keyed by name in document order.
	Schemas *sequencedmap.Map[string, *SchemaOrReference]
}

// Reference is a local pointer to another subtree of the same document. After
// reference resolution these only remain where a reference cycle prevented inlining.
type Reference struct {
	// Ref is the local path expression, e.g. "#/components/schemas/User".
	Ref string
}

// Name returns the referenced definition name, taken as the last path segment.
func (r *Reference) Name() string {
	if r == nil {
		return ""
	}

	parts := strings.Split(r.Ref, "/")
	return parts[len(parts)-1]
}

// SchemaOrReference is the tagged union held by every schema slot: exactly one of
// Schema or Reference is set.
type SchemaOrReference struct {
	Schema    *Schema
	Reference *Reference
}

// IsReference reports whether the union holds a reference.
func (s *SchemaOrReference) IsReference() bool {
	return s != nil && s.Reference != nil
}

// Schema describes the shape of a value: primitive, array or object-with-properties.
type Schema struct {
	// Type is the declared kind of the schema. A schema with Properties set but no
	// declared type is treated as an object.
	Type *SchemaType
	// Format further refines the declared kind.
	Format *string
	// Title of the schema.
	Title *string
	// Description of the schema.
	Description *string
	// Default value for the schema.
	Default any
	// Nullable permits a null value.
	Nullable bool
	// Required lists the property names that must be present.
	Required []string
	// Enum restricts the value to a fixed set.
	Enum []any
	// Items is the element schema for array kinds.
	Items *SchemaOrReference
	// Properties is the ordered property table for object kinds.
	Properties *sequencedmap.Map[string, *SchemaOrReference]

	// Numeric constraints.
	Minimum    *float64
	Maximum    *float64
	MultipleOf *float64

	// String constraints.
	MinLength *int64
	MaxLength *int64
	Pattern   *string
}

// GetDescription returns the schema description or empty string if not set.
func (s *Schema) GetDescription() string {
	if s == nil || s.Description == nil {
		return ""
	}
	return *s.Description
}

// hasProperties reports whether the schema declares at least one property.
func (s *Schema) hasProperties() bool {
	return s != nil && s.Properties.Len() > 0
}
