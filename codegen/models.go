package codegen

import (
	"bytes"
	"fmt"

	"github.com/speakeasy-api/clientgen/openapi"
)

// emitModelsFile renders the ordered model map as a Go source file of struct
// declarations. Models arrive already dependency-ordered and with their type-hints
// derived; emission maps hints to Go types and nothing more.
func emitModelsFile(doc *openapi.Document, pkg string) []byte {
	var buf bytes.Buffer

	writeFileHeader(&buf, doc, pkg)

	for name, model := range doc.Models().All() {
		fmt.Fprintf(&buf, "// %s is %s.\n", identifier(name), model.Description)
		fmt.Fprintf(&buf, "type %s struct {\n", identifier(name))

		for propName, prop := range model.Properties.All() {
			fmt.Fprintf(&buf, "\t%s %s `json:%q`", exportedName(propName), goType(prop.TypeHint), propName)
			if prop.FieldArgs != "" {
				fmt.Fprintf(&buf, " // %s", prop.FieldArgs)
			}
			buf.WriteString("\n")
		}

		buf.WriteString("}\n\n")
	}

	return buf.Bytes()
}

// writeFileHeader writes the generated-code marker and package clause shared by
// every emitted file.
func writeFileHeader(buf *bytes.Buffer, doc *openapi.Document, pkg string) {
	buf.WriteString("// Code generated by clientgen. DO NOT EDIT.\n\n")
	if doc.Info != nil && doc.Info.Title != "" {
		fmt.Fprintf(buf, "// Package %s is a generated client for %s.\n", pkg, doc.Info.Title)
	}
	fmt.Fprintf(buf, "package %s\n\n", pkg)
}
