package openapi

import (
	"iter"
	"strings"
)

// Canonical type-hint strings. These are the language-independent encoding shared
// with the code emission layer; emitters map them to concrete target types.
const (
	HintString  = "string"
	HintNumber  = "number"
	HintInteger = "integer"
	HintBoolean = "boolean"
	HintAny     = "any"
	// HintGenericObject is the fallback for object shapes that match no named model.
	HintGenericObject = "map<string, any>"
)

// ArrayOf wraps a type-hint in the array wrapper.
func ArrayOf(hint string) string {
	return "array-of<" + hint + ">"
}

// OptionalOf wraps a type-hint in the optional wrapper.
func OptionalOf(hint string) string {
	return "optional<" + hint + ">"
}

// TypeHint derives the canonical type-hint string for a value position. The
// document provides the reusable-definitions table for the named-model matching
// heuristic, so derivation never discovers context implicitly.
func (d *Document) TypeHint(sr *SchemaOrReference) string {
	if sr == nil {
		return HintAny
	}

	if sr.IsReference() {
		return sr.Reference.Name()
	}

	return d.schemaTypeHint(sr.Schema)
}

func (d *Document) schemaTypeHint(s *Schema) string {
	if s == nil {
		return HintAny
	}

	if s.Type != nil {
		switch *s.Type {
		case SchemaTypeString:
			return HintString
		case SchemaTypeNumber:
			return HintNumber
		case SchemaTypeInteger:
			return HintInteger
		case SchemaTypeBoolean:
			return HintBoolean
		case SchemaTypeArray:
			if s.Items == nil {
				return ArrayOf(HintAny)
			}
			return ArrayOf(d.TypeHint(s.Items))
		case SchemaTypeObject:
			return d.objectTypeHint(s)
		}
	}

	// A schema with properties but no declared type is an object by convention.
	if s.hasProperties() {
		return d.objectTypeHint(s)
	}

	return HintAny
}

// objectTypeHint recovers a named model for an inlined object where possible.
// Reference resolution inlines subtrees the document author expressed as named-type
// references, so an object whose property-name set exactly matches a definition in
// the reusable table is reported as that definition. Two distinct definitions
// sharing a property set can mis-match; that is an accepted limitation of the
// heuristic, with the first definition in table order winning.
func (d *Document) objectTypeHint(s *Schema) string {
	if !s.hasProperties() {
		return HintGenericObject
	}

	if name, ok := d.findModelForSchema(s); ok {
		return name
	}

	return HintGenericObject
}

// findModelForSchema searches the reusable-definitions table for a definition whose
// property-name set is exactly equal to the given schema's.
func (d *Document) findModelForSchema(s *Schema) (string, bool) {
	if d == nil || d.Components == nil || !s.hasProperties() {
		return "", false
	}

	for name, candidate := range d.Components.Schemas.All() {
		if candidate.IsReference() || !candidate.Schema.hasProperties() {
			continue
		}

		if samePropertyNames(s.Properties.Keys(), candidate.Schema.Properties.Keys()) {
			return name, true
		}
	}

	return "", false
}

func samePropertyNames(a, b iter.Seq[string]) bool {
	aSet := map[string]struct{}{}
	for name := range a {
		aSet[name] = struct{}{}
	}

	bSet := map[string]struct{}{}
	for name := range b {
		bSet[name] = struct{}{}
	}

	if len(aSet) != len(bSet) {
		return false
	}

	for name := range aSet {
		if _, ok := bSet[name]; !ok {
			return false
		}
	}

	return true
}

// hintDependencies extracts the named-model dependencies embedded in a type-hint
// string, recognizing the bare, array, optional and union wrapper shapes (applied
// recursively, so nested combinations like optional<array-of<Name>> are covered).
func hintDependencies(hint string, models map[string]struct{}, add func(string)) {
	if _, ok := models[hint]; ok {
		add(hint)
		return
	}

	switch {
	case strings.HasPrefix(hint, "array-of<") && strings.HasSuffix(hint, ">"):
		hintDependencies(hint[len("array-of<"):len(hint)-1], models, add)
	case strings.HasPrefix(hint, "optional<") && strings.HasSuffix(hint, ">"):
		hintDependencies(hint[len("optional<"):len(hint)-1], models, add)
	case strings.HasPrefix(hint, "union<") && strings.HasSuffix(hint, ">"):
		for _, member := range splitUnionMembers(hint[len("union<") : len(hint)-1]) {
			hintDependencies(member, models, add)
		}
	}
}

// splitUnionMembers splits union member hints on top-level commas, ignoring commas
// nested inside wrapper brackets.
func splitUnionMembers(inner string) []string {
	members := []string{}
	depth := 0
	start := 0

	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				members = append(members, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	if start < len(inner) {
		members = append(members, strings.TrimSpace(inner[start:]))
	}

	return members
}
