// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package templates provides embedded filesystem access for MCP server template files.
// It offers a reusable abstraction for accessing the embedded markdown assets used
// throughout the MCP server: the Angular code templates served by the pattern
// catalog, prompt workflow templates, the AI analysis system prompt, and the
// server instructions template.
//
// The package provides thread-safe access to embedded files through the [EmbedFS]
// interface, with [MagicEmbed] serving as the default implementation for
// convenient template access. This enables efficient reuse of template files
// across different MCP server components while maintaining clean separation of
// concerns and centralized template management.
//
// Example usage:
//
//	import "github.com/enterpriseng/angular-patterns-mcp/src/mcp-server/templates"
//
//	// Read the component code template
//	content, err := templates.MagicEmbed.ReadFile("component.tmpl.md")
//	if err != nil {
//		return fmt.Errorf("failed to read component template: %w", err)
//	}
//
//	// List all available template files
//	entries, err := templates.MagicEmbed.ReadDir(".")
//	if err != nil {
//		return fmt.Errorf("failed to list templates: %w", err)
//	}
package templates
