// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// createPrompts creates and returns all MCP prompt definitions with their handlers
func createPrompts() []server.ServerPrompt {
	return []server.ServerPrompt{
		{
			Prompt: mcp.NewPrompt("component-review",
				mcp.WithPromptDescription("Review an Angular component against the enterprise pattern checklist"),
				mcp.WithArgument("target",
					mcp.ArgumentDescription("Component file path or name to review"),
				),
			),
			Handler: handleComponentReviewPrompt,
		},
		{
			Prompt: mcp.NewPrompt("scaffold-feature",
				mcp.WithPromptDescription("Scaffold a new lazy-loaded feature with components, services, and routes"),
				mcp.WithArgument("feature_name",
					mcp.ArgumentDescription("Name of the new feature, e.g. 'OrderHistory'"),
				),
			),
			Handler: handleScaffoldFeaturePrompt,
		},
	}
}
