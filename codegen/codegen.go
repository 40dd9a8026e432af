// Package codegen renders a parsed API description into Go client source. It
// consumes the derived operation and model views as-is and never re-derives
// type-hints or re-orders models.
package codegen

import (
	"context"
	"strings"

	"github.com/speakeasy-api/clientgen/errors"
	"github.com/speakeasy-api/clientgen/openapi"
)

// ErrConfig is returned when generation is invoked with an unusable configuration.
const ErrConfig = errors.Error("invalid generator configuration")

// Flavor selects the transport style of the generated client.
type Flavor string

const (
	// FlavorHTTP generates a synchronous net/http client.
	FlavorHTTP Flavor = "http"
	// FlavorContextHTTP generates a net/http client that threads context.Context
	// through every request.
	FlavorContextHTTP Flavor = "ctxhttp"
)

// FlavorFromName returns the flavor with the given name.
func FlavorFromName(name string) (Flavor, error) {
	switch Flavor(name) {
	case FlavorHTTP:
		return FlavorHTTP, nil
	case FlavorContextHTTP:
		return FlavorContextHTTP, nil
	default:
		return "", ErrConfig.Wrap(errors.New("unknown flavor: " + name))
	}
}

// Config holds the configuration for client generation.
type Config struct {
	// Sink receives the generated files. Required.
	Sink OutputSink

	// PackageName overrides the generated package name. When empty the name is
	// derived from the document title.
	PackageName string

	// Flavor selects the transport style. Defaults to FlavorHTTP.
	Flavor Flavor

	// SkipModels suppresses the models file.
	SkipModels bool
}

// Generate renders the document as a Go client package. Files are written under a
// directory named after the package, mirroring the generated package's import path.
func Generate(ctx context.Context, doc *openapi.Document, cfg Config) error {
	if cfg.Sink == nil {
		return ErrConfig.Wrap(errors.New("sink is required"))
	}
	if doc == nil {
		return ErrConfig.Wrap(errors.New("document is required"))
	}

	flavor := cfg.Flavor
	if flavor == "" {
		flavor = FlavorHTTP
	}

	pkg := cfg.PackageName
	if pkg == "" {
		pkg = PackageName(doc)
	}

	if err := cfg.Sink.WriteFile(ctx, pkg+"/client.go", emitClientFile(doc, pkg, flavor)); err != nil {
		return err
	}

	if !cfg.SkipModels {
		if err := cfg.Sink.WriteFile(ctx, pkg+"/models.go", emitModelsFile(doc, pkg)); err != nil {
			return err
		}
	}

	return nil
}

// PackageName derives the generated package name from the document title:
// lower-cased, with spaces and hyphens replaced by underscores.
func PackageName(doc *openapi.Document) string {
	title := ""
	if doc != nil && doc.Info != nil {
		title = doc.Info.Title
	}
	if title == "" {
		return "client"
	}

	name := strings.ToLower(title)
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return name
}
