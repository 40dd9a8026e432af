package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/speakeasy-api/clientgen/codegen"
	"github.com/speakeasy-api/clientgen/openapi"
)

var version = "dev"

func getVersion() string {
	if version != "dev" {
		return version
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != "(devel)" {
		return buildInfo.Main.Version
	}
	return version
}

var rootCmd = &cobra.Command{
	Use:   "clientgen",
	Short: "Generate API clients from OpenAPI documents",
	Long: `clientgen parses an OpenAPI document (JSON or YAML), resolves its local
references and generates a Go client package for the described API.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate <openapi-document>",
	Short: "Generate a client package from an OpenAPI document",
	Long: `Generate a Go client package from an OpenAPI document.

The document may be JSON or YAML; the format is detected automatically. Local
references are resolved before generation, so the generated models match the
document's reusable schema definitions.

Two transport flavors are available:
- http: a synchronous net/http client (default)
- ctxhttp: a net/http client that takes a context.Context on every call`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

var (
	outputDir   string
	packageName string
	flavorName  string
	noModels    bool
)

func init() {
	generateCmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "directory the generated package is written under")
	generateCmd.Flags().StringVarP(&packageName, "package-name", "p", "", "generated package name (default: derived from the document title)")
	generateCmd.Flags().StringVar(&flavorName, "flavor", "http", "transport flavor of the generated client (http, ctxhttp)")
	generateCmd.Flags().BoolVar(&noModels, "no-models", false, "skip generating the models file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.Version = getVersion()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	flavor, err := codegen.FlavorFromName(flavorName)
	if err != nil {
		return err
	}

	doc, err := openapi.Parse(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	cfg := codegen.Config{
		Sink:        codegen.NewFilesystemSink(outputDir),
		PackageName: packageName,
		Flavor:      flavor,
		SkipModels:  noModels,
	}
	if err := codegen.Generate(ctx, doc, cfg); err != nil {
		return fmt.Errorf("failed to generate client: %w", err)
	}

	pkg := cfg.PackageName
	if pkg == "" {
		pkg = codegen.PackageName(doc)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generated %s client in %s/%s\n", flavor, outputDir, pkg)

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
