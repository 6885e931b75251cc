// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// createResources creates all MCP resources backed by the pattern catalog.
//
// Parameters:
//   - catalog: The pattern catalog providing rules, validation checklist, and templates
//
// Returns:
//   - []server.ServerResource: The three pattern resources with their handlers
//
// The server exposes exactly three resources:
//   - patterns://angular/rules: The enterprise architecture rules as JSON
//   - patterns://angular/templates: All code templates as plain text
//   - patterns://angular/validation: The validation checklist as JSON
func createResources(catalog *patterns.Catalog) []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(
				"patterns://angular/rules",
				"Angular Enterprise Rules",
				mcp.WithResourceDescription("Angular enterprise architecture rules and best practices"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: makeRulesResourceHandler(catalog),
		},
		{
			Resource: mcp.NewResource(
				"patterns://angular/templates",
				"Angular Code Templates",
				mcp.WithResourceDescription("Angular code generation templates following enterprise patterns"),
				mcp.WithMIMEType("text/plain"),
			),
			Handler: makeTemplatesResourceHandler(catalog),
		},
		{
			Resource: mcp.NewResource(
				"patterns://angular/validation",
				"Angular Validation Checklist",
				mcp.WithResourceDescription("Validation rules for checking Angular code compliance"),
				mcp.WithMIMEType("application/json"),
			),
			Handler: makeValidationResourceHandler(catalog),
		},
	}
}
