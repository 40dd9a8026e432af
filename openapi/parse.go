package openapi

import (
	"fmt"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/speakeasy-api/clientgen/loader"
	"github.com/speakeasy-api/clientgen/pointer"
	"github.com/speakeasy-api/clientgen/sequencedmap"
)

// ErrValidation is returned when the document does not satisfy the required shape of
// the typed entity graph. The wrapped error carries the offending field path.
const ErrValidation = errors.Error("validation error")

// Parse loads the document at path, resolves its local references and builds the
// typed entity graph. Each invocation is independent and produces an independent
// graph instance.
func Parse(path string) (*Document, error) {
	tree, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	resolved, err := loader.ResolveReferences(tree)
	if err != nil {
		return nil, err
	}

	return ParseDocument(resolved)
}

// ParseDocument builds the typed entity graph from a reference-resolved generic tree.
func ParseDocument(root any) (*Document, error) {
	m, err := asMapping(root, "$")
	if err != nil {
		return nil, err
	}

	doc := &Document{}

	if doc.OpenAPI, err = requiredString(m, "openapi", "$"); err != nil {
		return nil, err
	}

	infoNode, ok := m.Get("info")
	if !ok {
		return nil, ErrValidation.Wrap(errors.New("info is required"))
	}
	if doc.Info, err = parseInfo(infoNode, "info"); err != nil {
		return nil, err
	}

	pathsNode, ok := m.Get("paths")
	if !ok {
		return nil, ErrValidation.Wrap(errors.New("paths is required"))
	}
	if doc.Paths, err = parsePaths(pathsNode, "paths"); err != nil {
		return nil, err
	}

	if serversNode, ok := m.Get("servers"); ok {
		if doc.Servers, err = parseServers(serversNode, "servers"); err != nil {
			return nil, err
		}
	}

	if componentsNode, ok := m.Get("components"); ok {
		if doc.Components, err = parseComponents(componentsNode, "components"); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func parseInfo(node any, path string) (*Info, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	info := &Info{}

	if info.Title, err = requiredString(m, "title", path); err != nil {
		return nil, err
	}
	if info.Version, err = requiredString(m, "version", path); err != nil {
		return nil, err
	}
	if info.Description, err = optionalString(m, "description", path); err != nil {
		return nil, err
	}
	if info.TermsOfService, err = optionalString(m, "termsOfService", path); err != nil {
		return nil, err
	}

	if contactNode, ok := m.Get("contact"); ok {
		contactPath := path + ".contact"
		cm, err := asMapping(contactNode, contactPath)
		if err != nil {
			return nil, err
		}

		contact := &Contact{}
		if contact.Name, err = optionalString(cm, "name", contactPath); err != nil {
			return nil, err
		}
		if contact.URL, err = optionalString(cm, "url", contactPath); err != nil {
			return nil, err
		}
		if contact.Email, err = optionalString(cm, "email", contactPath); err != nil {
			return nil, err
		}
		info.Contact = contact
	}

	if licenseNode, ok := m.Get("license"); ok {
		licensePath := path + ".license"
		lm, err := asMapping(licenseNode, licensePath)
		if err != nil {
			return nil, err
		}

		license := &License{}
		if license.Name, err = requiredString(lm, "name", licensePath); err != nil {
			return nil, err
		}
		if license.URL, err = optionalString(lm, "url", licensePath); err != nil {
			return nil, err
		}
		info.License = license
	}

	return info, nil
}

func parseServers(node any, path string) ([]*Server, error) {
	seq, ok := node.([]any)
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s must be a sequence, got %T", path, node))
	}

	servers := make([]*Server, 0, len(seq))
	for i, item := range seq {
		itemPath := fmt.Sprintf("%s[%d]", path, i)
		m, err := asMapping(item, itemPath)
		if err != nil {
			return nil, err
		}

		server := &Server{}
		if server.URL, err = requiredString(m, "url", itemPath); err != nil {
			return nil, err
		}
		if server.Description, err = optionalString(m, "description", itemPath); err != nil {
			return nil, err
		}
		servers = append(servers, server)
	}

	return servers, nil
}

func parsePaths(node any, path string) (*sequencedmap.Map[string, *PathItem], error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	paths := sequencedmap.New[string, *PathItem]()

	for key, value := range m.All() {
		item, err := parsePathItem(value, path+"."+key)
		if err != nil {
			return nil, err
		}
		paths.Set(key, item)
	}

	return paths, nil
}

func parsePathItem(node any, path string) (*PathItem, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	item := &PathItem{}

	if item.Summary, err = optionalString(m, "summary", path); err != nil {
		return nil, err
	}
	if item.Description, err = optionalString(m, "description", path); err != nil {
		return nil, err
	}

	if parametersNode, ok := m.Get("parameters"); ok {
		if item.Parameters, err = parseParameters(parametersNode, path+".parameters"); err != nil {
			return nil, err
		}
	}

	for _, method := range httpMethods {
		opNode, ok := m.Get(method)
		if !ok {
			continue
		}

		op, err := parseOperation(opNode, path+"."+method)
		if err != nil {
			return nil, err
		}

		switch method {
		case "get":
			item.Get = op
		case "put":
			item.Put = op
		case "post":
			item.Post = op
		case "delete":
			item.Delete = op
		case "options":
			item.Options = op
		case "head":
			item.Head = op
		case "patch":
			item.Patch = op
		case "trace":
			item.Trace = op
		}
	}

	return item, nil
}

func parseOperation(node any, path string) (*Operation, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	op := &Operation{}

	if op.OperationID, err = optionalString(m, "operationId", path); err != nil {
		return nil, err
	}
	if op.Summary, err = optionalString(m, "summary", path); err != nil {
		return nil, err
	}
	if op.Description, err = optionalString(m, "description", path); err != nil {
		return nil, err
	}
	if op.Deprecated, err = optionalBool(m, "deprecated", path); err != nil {
		return nil, err
	}

	if parametersNode, ok := m.Get("parameters"); ok {
		if op.Parameters, err = parseParameters(parametersNode, path+".parameters"); err != nil {
			return nil, err
		}
	}

	if bodyNode, ok := m.Get("requestBody"); ok {
		if op.RequestBody, err = parseRequestBody(bodyNode, path+".requestBody"); err != nil {
			return nil, err
		}
	}

	responsesNode, ok := m.Get("responses")
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s.responses is required", path))
	}

	rm, err := asMapping(responsesNode, path+".responses")
	if err != nil {
		return nil, err
	}

	op.Responses = sequencedmap.New[string, *Response]()
	for code, responseNode := range rm.All() {
		response, err := parseResponse(responseNode, path+".responses."+code)
		if err != nil {
			return nil, err
		}
		op.Responses.Set(code, response)
	}

	return op, nil
}

func parseParameters(node any, path string) ([]*Parameter, error) {
	seq, ok := node.([]any)
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s must be a sequence, got %T", path, node))
	}

	parameters := make([]*Parameter, 0, len(seq))
	for i, item := range seq {
		param, err := parseParameter(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		parameters = append(parameters, param)
	}

	return parameters, nil
}

func parseParameter(node any, path string) (*Parameter, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	param := &Parameter{}

	if param.Name, err = requiredString(m, "name", path); err != nil {
		return nil, err
	}

	in, err := requiredString(m, "in", path)
	if err != nil {
		return nil, err
	}
	switch ParameterLocation(in) {
	case ParameterLocationQuery, ParameterLocationHeader, ParameterLocationPath, ParameterLocationCookie:
		param.In = ParameterLocation(in)
	default:
		return nil, ErrValidation.Wrap(fmt.Errorf("%s.in must be one of query, header, path, cookie, got %q", path, in))
	}

	if param.Description, err = optionalString(m, "description", path); err != nil {
		return nil, err
	}
	if param.Required, err = optionalBool(m, "required", path); err != nil {
		return nil, err
	}
	if param.Deprecated, err = optionalBool(m, "deprecated", path); err != nil {
		return nil, err
	}

	if schemaNode, ok := m.Get("schema"); ok {
		if param.Schema, err = parseSchemaOrReference(schemaNode, path+".schema"); err != nil {
			return nil, err
		}
	}

	return param, nil
}

func parseRequestBody(node any, path string) (*RequestBody, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	body := &RequestBody{}

	if body.Description, err = optionalString(m, "description", path); err != nil {
		return nil, err
	}
	if body.Required, err = optionalBool(m, "required", path); err != nil {
		return nil, err
	}

	contentNode, ok := m.Get("content")
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s.content is required", path))
	}

	if body.Content, err = parseContent(contentNode, path+".content"); err != nil {
		return nil, err
	}

	return body, nil
}

func parseResponse(node any, path string) (*Response, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	response := &Response{}

	if response.Description, err = requiredString(m, "description", path); err != nil {
		return nil, err
	}

	if contentNode, ok := m.Get("content"); ok {
		if response.Content, err = parseContent(contentNode, path+".content"); err != nil {
			return nil, err
		}
	}

	return response, nil
}

func parseContent(node any, path string) (*sequencedmap.Map[string, *MediaType], error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	content := sequencedmap.New[string, *MediaType]()

	for contentType, mediaNode := range m.All() {
		mediaPath := path + "." + contentType
		mm, err := asMapping(mediaNode, mediaPath)
		if err != nil {
			return nil, err
		}

		media := &MediaType{}
		if schemaNode, ok := mm.Get("schema"); ok {
			if media.Schema, err = parseSchemaOrReference(schemaNode, mediaPath+".schema"); err != nil {
				return nil, err
			}
		}

		content.Set(contentType, media)
	}

	return content, nil
}

func parseComponents(node any, path string) (*Components, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	components := &Components{
		Schemas: sequencedmap.New[string, *SchemaOrReference](),
	}

	schemasNode, ok := m.Get("schemas")
	if !ok {
		return components, nil
	}

	sm, err := asMapping(schemasNode, path+".schemas")
	if err != nil {
		return nil, err
	}

	for name, schemaNode := range sm.All() {
		schema, err := parseSchemaOrReference(schemaNode, path+".schemas."+name)
		if err != nil {
			return nil, err
		}
		components.Schemas.Set(name, schema)
	}

	return components, nil
}

// parseSchemaOrReference discriminates the schema/reference union on the presence of
// the reference marker key, so downstream code never attribute-probes.
func parseSchemaOrReference(node any, path string) (*SchemaOrReference, error) {
	m, err := asMapping(node, path)
	if err != nil {
		return nil, err
	}

	if refNode, ok := m.Get(loader.RefKey); ok {
		ref, ok := refNode.(string)
		if !ok {
			return nil, ErrValidation.Wrap(fmt.Errorf("%s.%s must be a string, got %T", path, loader.RefKey, refNode))
		}
		return &SchemaOrReference{Reference: &Reference{Ref: ref}}, nil
	}

	schema, err := parseSchema(m, path)
	if err != nil {
		return nil, err
	}

	return &SchemaOrReference{Schema: schema}, nil
}

func parseSchema(m *sequencedmap.Map[string, any], path string) (*Schema, error) {
	schema := &Schema{}

	var err error

	if typeNode, ok := m.Get("type"); ok {
		ts, ok := typeNode.(string)
		if !ok {
			return nil, ErrValidation.Wrap(fmt.Errorf("%s.type must be a string, got %T", path, typeNode))
		}

		switch SchemaType(ts) {
		case SchemaTypeString, SchemaTypeNumber, SchemaTypeInteger, SchemaTypeBoolean, SchemaTypeArray, SchemaTypeObject:
			schema.Type = pointer.From(SchemaType(ts))
		default:
			return nil, ErrValidation.Wrap(fmt.Errorf("%s.type must be one of string, number, integer, boolean, array, object, got %q", path, ts))
		}
	}

	if schema.Format, err = optionalString(m, "format", path); err != nil {
		return nil, err
	}
	if schema.Title, err = optionalString(m, "title", path); err != nil {
		return nil, err
	}
	if schema.Description, err = optionalString(m, "description", path); err != nil {
		return nil, err
	}
	if schema.Nullable, err = optionalBool(m, "nullable", path); err != nil {
		return nil, err
	}
	if schema.Pattern, err = optionalString(m, "pattern", path); err != nil {
		return nil, err
	}

	if defaultNode, ok := m.Get("default"); ok {
		schema.Default = defaultNode
	}

	if requiredNode, ok := m.Get("required"); ok {
		seq, ok := requiredNode.([]any)
		if !ok {
			return nil, ErrValidation.Wrap(fmt.Errorf("%s.required must be a sequence, got %T", path, requiredNode))
		}
		for i, item := range seq {
			name, ok := item.(string)
			if !ok {
				return nil, ErrValidation.Wrap(fmt.Errorf("%s.required[%d] must be a string, got %T", path, i, item))
			}
			schema.Required = append(schema.Required, name)
		}
	}

	if enumNode, ok := m.Get("enum"); ok {
		seq, ok := enumNode.([]any)
		if !ok {
			return nil, ErrValidation.Wrap(fmt.Errorf("%s.enum must be a sequence, got %T", path, enumNode))
		}
		schema.Enum = seq
	}

	if itemsNode, ok := m.Get("items"); ok {
		if schema.Items, err = parseSchemaOrReference(itemsNode, path+".items"); err != nil {
			return nil, err
		}
	}

	if propertiesNode, ok := m.Get("properties"); ok {
		pm, err := asMapping(propertiesNode, path+".properties")
		if err != nil {
			return nil, err
		}

		schema.Properties = sequencedmap.New[string, *SchemaOrReference]()
		for name, propNode := range pm.All() {
			prop, err := parseSchemaOrReference(propNode, path+".properties."+name)
			if err != nil {
				return nil, err
			}
			schema.Properties.Set(name, prop)
		}
	}

	if schema.Minimum, err = optionalNumber(m, "minimum", path); err != nil {
		return nil, err
	}
	if schema.Maximum, err = optionalNumber(m, "maximum", path); err != nil {
		return nil, err
	}
	if schema.MultipleOf, err = optionalNumber(m, "multipleOf", path); err != nil {
		return nil, err
	}
	if schema.MinLength, err = optionalInteger(m, "minLength", path); err != nil {
		return nil, err
	}
	if schema.MaxLength, err = optionalInteger(m, "maxLength", path); err != nil {
		return nil, err
	}

	return schema, nil
}

func asMapping(node any, path string) (*sequencedmap.Map[string, any], error) {
	m, ok := node.(*sequencedmap.Map[string, any])
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s must be a mapping, got %T", path, node))
	}
	return m, nil
}

func requiredString(m *sequencedmap.Map[string, any], key, path string) (string, error) {
	node, ok := m.Get(key)
	if !ok {
		return "", ErrValidation.Wrap(fmt.Errorf("%s.%s is required", path, key))
	}

	s, ok := node.(string)
	if !ok {
		return "", ErrValidation.Wrap(fmt.Errorf("%s.%s must be a string, got %T", path, key, node))
	}

	return s, nil
}

func optionalString(m *sequencedmap.Map[string, any], key, path string) (*string, error) {
	node, ok := m.Get(key)
	if !ok || node == nil {
		return nil, nil
	}

	s, ok := node.(string)
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s.%s must be a string, got %T", path, key, node))
	}

	return pointer.From(s), nil
}

func optionalBool(m *sequencedmap.Map[string, any], key, path string) (bool, error) {
	node, ok := m.Get(key)
	if !ok || node == nil {
		return false, nil
	}

	b, ok := node.(bool)
	if !ok {
		return false, ErrValidation.Wrap(fmt.Errorf("%s.%s must be a boolean, got %T", path, key, node))
	}

	return b, nil
}

func optionalNumber(m *sequencedmap.Map[string, any], key, path string) (*float64, error) {
	node, ok := m.Get(key)
	if !ok || node == nil {
		return nil, nil
	}

	switch n := node.(type) {
	case int64:
		return pointer.From(float64(n)), nil
	case float64:
		return pointer.From(n), nil
	default:
		return nil, ErrValidation.Wrap(fmt.Errorf("%s.%s must be a number, got %T", path, key, node))
	}
}

func optionalInteger(m *sequencedmap.Map[string, any], key, path string) (*int64, error) {
	node, ok := m.Get(key)
	if !ok || node == nil {
		return nil, nil
	}

	i, ok := node.(int64)
	if !ok {
		return nil, ErrValidation.Wrap(fmt.Errorf("%s.%s must be an integer, got %T", path, key, node))
	}

	return pointer.From(i), nil
}
