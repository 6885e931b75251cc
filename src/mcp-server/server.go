// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/enterpriseng/angular-patterns-mcp/src/mcp-server/templates"
	"github.com/enterpriseng/angular-patterns-mcp/src/version"
	"github.com/mark3labs/mcp-go/server"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server.
//
// GetVersion provides access to the server's version string, which is set
// during server initialization via the Run function. This allows other
// components to access the version information for logging, user-agent
// strings, or API responses.
//
// Returns:
//   - string: The current server version (e.g., "1.0.0")
//
// The version is initially set to the default from the version package,
// but can be overridden when calling Run() with a specific version string.
func GetVersion() string {
	return appVersion
}

// Run starts the MCP server with the Angular enterprise pattern tools.
//
// Run initializes and starts the MCP server exposing the pattern catalog
// resources, code validation, and template generation over stdio. The server
// supports graceful shutdown on SIGINT and SIGTERM.
//
// Parameters:
//   - version: Version string to set for the server (e.g., "1.0.0")
//
// Returns:
//   - error: Server startup or runtime error, or graceful shutdown signal
//
// Configuration:
//   - Loads config from MCP_PATTERNS_CONFIG_FILE environment variable
//   - Falls back to default config if environment variable not set
//   - An optional catalog override file (catalog.file) is merged over the built-in rules
//
// Features:
//   - Pattern rules, templates, and validation checklist resources
//   - Code validation against the enterprise checks
//   - Template generation with name placeholder substitution
//   - Optional AI-powered pattern analysis and resource monitoring (config gated)
//   - Guided prompts for component review and feature scaffolding
//
// Server Lifecycle:
//  1. Load configuration from environment
//  2. Build the pattern catalog from embedded templates, applying any override
//  3. Set up signal handling for graceful shutdown
//  4. Build MCP server using ServerBuilder pattern
//  5. Start stdio server with context cancellation support
//  6. Wait for either server error or shutdown signal
//
// Graceful Shutdown:
//   - Responds to SIGINT (Ctrl+C) and SIGTERM signals
//   - Cancels context to stop the stdio listener
//   - Returns context.Canceled error on signal-based shutdown
//
// Error Handling:
//   - Configuration errors: Wrapped with "failed to load config" prefix
//   - Catalog errors: Wrapped with "failed to build pattern catalog" prefix
//   - Server build errors: Wrapped with "failed to build server" prefix
//   - Shutdown errors: Wrapped with "server shutdown" prefix
func Run(version string) error {
	// Set the version for GetVersion
	appVersion = version

	// Load configuration
	config, err := loadConfig(os.Getenv("MCP_PATTERNS_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Build the pattern catalog once; it is immutable afterwards
	catalog, err := patterns.NewCatalog(templates.MagicEmbed)
	if err != nil {
		return fmt.Errorf("failed to build pattern catalog: %w", err)
	}

	// Merge a rules override file over the built-in catalog if configured
	if config.Catalog.File != "" {
		override, err := patterns.LoadOverride(config.Catalog.File)
		if err != nil {
			return fmt.Errorf("failed to load catalog override: %w", err)
		}
		catalog.ApplyOverride(override)
	}

	// Create tools (called once and reused)
	tools, toolsWithConfig := createTools(catalog, config, DefaultCodeValidator{})

	// Load server instructions with tool information
	//
	// This approach is better as it uses dynamic content generation based on tools,
	// instead of hardcoded values
	instructions, err := loadInstructions(tools, toolsWithConfig)
	if err != nil {
		return fmt.Errorf("failed to load instructions: %w", err)
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Create MCP server using ServerBuilder for better testability
	s, err := NewServerBuilder().
		WithConfig(config).
		WithEmbed(templates.MagicEmbed).
		WithVersion(version).
		WithCatalog(catalog).
		WithValidator(DefaultCodeValidator{}).
		WithSampling(NewDefaultSamplingHandler(config, version)).
		WithTools(tools...).
		WithToolsWithConfig(toolsWithConfig...).
		WithResources(createResources(catalog)...).
		WithPrompts(createPrompts()...).
		WithInstructions(instructions).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	// Create stdio server to connect with our context
	stdioServer := server.NewStdioServer(s)

	// Start server with graceful shutdown support
	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
