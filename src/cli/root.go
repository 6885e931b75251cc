// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/enterpriseng/angular-patterns-mcp/src/internal/helper/posix"
	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/enterpriseng/angular-patterns-mcp/src/logger"
	"github.com/enterpriseng/angular-patterns-mcp/src/mcp-server/templates"
	"github.com/spf13/cobra"
)

var (
	inputFile    string
	outputFile   string
	codeType     string
	artifactName string
	tableFormat  bool
	catalogFile  string
)

// OperationPerformed indicates whether a subcommand actually ran.
// It stays false when cobra only printed help or version text.
var OperationPerformed bool

// OperationPerformedSuccessfully indicates whether the subcommand completed
// without validation or generation errors.
var OperationPerformedSuccessfully bool

// Execute runs the root command with validate and generate subcommands.
//
// Parameters:
//   - ctx: Context for cancellation, wired into every subcommand
//   - version: Version string shown by --version
//   - log: Destination for user-facing output
//
// Returns:
//   - error: Any error from command execution; cobra has already printed it
func Execute(ctx context.Context, version string, log logger.Logger) error {
	rootCmd := &cobra.Command{
		Use:     posix.GetExecutableName(),
		Short:   "Enterprise Angular pattern validation and scaffolding",
		Long:    "Validates Angular source against the enterprise pattern catalog and generates compliant component, service, and guard skeletons.",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output to OUTPUT_FILE (default: stdout)")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate Angular source against the pattern catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execValidate(cmd.Context(), log)
		},
	}
	validateCmd.Flags().StringVarP(&inputFile, "file", "f", "", "input source file to validate")
	validateCmd.Flags().StringVarP(&codeType, "type", "t", "component", "artifact type: component, service, guard, or routing")
	validateCmd.Flags().BoolVar(&tableFormat, "table", false, "render issues as a markdown table")
	if err := validateCmd.MarkFlagRequired("file"); err != nil {
		return err
	}

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pattern-compliant Angular artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execGenerate(cmd.Context(), log)
		},
	}
	generateCmd.Flags().StringVarP(&codeType, "type", "t", "", "artifact type: component, service, or guard")
	generateCmd.Flags().StringVarP(&artifactName, "name", "n", "", "artifact name, e.g. 'UserList'")
	// Only generate reads the catalog, so the override flag lives here
	generateCmd.Flags().StringVar(&catalogFile, "catalog", "", "rules override file merged over the built-in catalog (JSON or YAML)")
	if err := generateCmd.MarkFlagRequired("type"); err != nil {
		return err
	}
	if err := generateCmd.MarkFlagRequired("name"); err != nil {
		return err
	}

	rootCmd.AddCommand(validateCmd, generateCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		return err
	}
	return nil
}

// loadCatalog builds the pattern catalog, applying the optional override file.
func loadCatalog() (*patterns.Catalog, error) {
	catalog, err := patterns.NewCatalog(templates.MagicEmbed)
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern catalog: %w", err)
	}

	if catalogFile != "" {
		override, err := patterns.LoadOverride(catalogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog override: %w", err)
		}
		catalog.ApplyOverride(override)
	}

	return catalog, nil
}

// writeResult writes text to the output file when set, otherwise logs it.
func writeResult(log logger.Logger, text string) error {
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(text+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	log.Println(text)
	return nil
}

// execValidate reads the input source file and reports pattern issues.
// The exit status stays zero even when issues are found; the report itself
// is the result, matching the MCP tool behavior.
func execValidate(ctx context.Context, log logger.Logger) error {
	OperationPerformed = true

	if err := ctx.Err(); err != nil {
		return err
	}

	code, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	issues := patterns.Validate(string(code), patterns.CodeType(codeType))

	var report string
	if tableFormat {
		report = patterns.FormatIssuesTable(issues)
	} else {
		report = patterns.FormatIssues(issues)
	}

	if err := writeResult(log, report); err != nil {
		return err
	}

	OperationPerformedSuccessfully = true
	return nil
}

// execGenerate renders the catalog template for the requested artifact type.
func execGenerate(ctx context.Context, log logger.Logger) error {
	OperationPerformed = true

	if err := ctx.Err(); err != nil {
		return err
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	tmpl, ok := catalog.TemplateFor(codeType)
	if !ok {
		return fmt.Errorf("unknown template type: %s (expected component, service, or guard)", codeType)
	}

	if err := writeResult(log, tmpl.Render(artifactName)); err != nil {
		return err
	}

	OperationPerformedSuccessfully = true
	return nil
}
