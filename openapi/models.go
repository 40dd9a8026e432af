package openapi

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/speakeasy-api/clientgen/sequencedmap"
)

// ModelInfo is the derived view of one named model definition.
type ModelInfo struct {
	// Description of the model, falling back to its name when the definition
	// carries none.
	Description string
	// Properties maps property names to their derived info, in document order.
	Properties *sequencedmap.Map[string, *PropertyInfo]
}

// PropertyInfo is the derived view of one model property.
type PropertyInfo struct {
	// TypeHint is the canonical type-hint for the property value.
	TypeHint string
	// FieldArgs is the presentation-arguments string governing how an emitter
	// renders the field constructor.
	FieldArgs string
}

// Models derives the named model definitions in dependency order: every entry in
// the reusable-definitions table that declares properties, arranged so a model's
// dependencies precede it except where a reference cycle makes strict precedence
// impossible.
//
// Ordering is a depth-first post-order traversal of the dependency graph. A model
// revisited while its own visit is still in progress indicates a cycle and is
// treated as already satisfied, so cyclic definition sets order completely without
// error.
func (d *Document) Models() *sequencedmap.Map[string, *ModelInfo] {
	models := sequencedmap.New[string, *ModelInfo]()
	if d == nil || d.Components == nil {
		return models
	}

	// Phase 1: collect every definition with properties.
	names := map[string]struct{}{}
	for name, sr := range d.Components.Schemas.All() {
		if sr.IsReference() || !sr.Schema.hasProperties() {
			continue
		}

		models.Set(name, d.modelInfo(name, sr.Schema))
		names[name] = struct{}{}
	}

	// Phase 2: extract dependencies from the derived type-hint strings.
	dependencies := map[string][]string{}
	for name, model := range models.All() {
		seen := map[string]struct{}{}
		for prop := range model.Properties.Values() {
			hintDependencies(prop.TypeHint, names, func(dep string) {
				if _, ok := seen[dep]; ok {
					return
				}
				seen[dep] = struct{}{}
				dependencies[name] = append(dependencies[name], dep)
			})
		}
	}

	// Phase 3: post-order traversal; each model is appended after its dependencies
	// have completed.
	ordered := []string{}
	visited := map[string]struct{}{}
	visiting := map[string]struct{}{}

	var visit func(name string)
	visit = func(name string) {
		if _, ok := visiting[name]; ok {
			// Cycle: treat the in-progress model as satisfied.
			return
		}
		if _, ok := visited[name]; ok {
			return
		}

		visiting[name] = struct{}{}
		for _, dep := range dependencies[name] {
			visit(dep)
		}
		delete(visiting, name)

		visited[name] = struct{}{}
		ordered = append(ordered, name)
	}

	for name := range models.Keys() {
		visit(name)
	}

	result := sequencedmap.New[string, *ModelInfo]()
	for _, name := range ordered {
		result.Set(name, models.GetOrZero(name))
	}

	return result
}

func (d *Document) modelInfo(name string, schema *Schema) *ModelInfo {
	model := &ModelInfo{
		Description: schema.GetDescription(),
		Properties:  sequencedmap.New[string, *PropertyInfo](),
	}
	if model.Description == "" {
		model.Description = name
	}

	for propName, prop := range schema.Properties.All() {
		model.Properties.Set(propName, &PropertyInfo{
			TypeHint:  d.TypeHint(prop),
			FieldArgs: fieldArgs(prop),
		})
	}

	return model
}

// fieldArgs derives the presentation-arguments string for a property. The value
// directive is one of a literal default, a null default for nullable properties, or
// the required marker; a description directive is appended independently.
func fieldArgs(prop *SchemaOrReference) string {
	if prop.IsReference() {
		return "required"
	}

	schema := prop.Schema
	args := []string{}

	switch {
	case schema.Default != nil:
		args = append(args, "default="+defaultLiteral(schema.Default))
	case schema.Nullable:
		args = append(args, "default=null")
	default:
		args = append(args, "required")
	}

	if description := schema.GetDescription(); description != "" {
		args = append(args, fmt.Sprintf("description=%q", description))
	}

	return strings.Join(args, ", ")
}

// defaultLiteral renders a default value as a JSON literal.
func defaultLiteral(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
