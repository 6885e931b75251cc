// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/mark3labs/mcp-go/mcp"
)

// createTools creates and returns all MCP tool definitions with their handlers.
// It organizes tools into two categories: those that don't require configuration
// and those that need access to the server configuration (e.g., for AI integration or timeouts).
//
// Parameters:
//   - catalog: The pattern catalog backing template generation
//   - config: Server configuration; its Extras gates decide whether optional tools are exposed
//   - validator: The validator backing the validation tool; nil selects DefaultCodeValidator
//
// Returns:
//   - A slice of ToolDefinition for tools without config dependencies
//   - A slice of ToolDefinitionWithConfig for tools that require server configuration
//
// The function always defines the core tools:
//   - validate-angular-code: Validates code snippets against the enterprise pattern checks
//   - generate-angular-template: Renders a code template with a project-specific name
//
// Optional tools are appended only when enabled in config.Extras:
//   - analyze_patterns_with_ai: AI-powered architecture review (extras.aiTools)
//   - get_resource_usage: Server resource usage statistics (extras.diagnostics)
//
// Each tool includes proper parameter definitions, descriptions, and default values
// as required by the MCP specification.
func createTools(catalog *patterns.Catalog, config *Config, validator CodeValidator) ([]ToolDefinition, []ToolDefinitionWithConfig) {
	if validator == nil {
		validator = DefaultCodeValidator{}
	}

	// The configured default report format flows into both the tool schema
	// and the handler fallback so clients see the same default they get
	defaultFormat := "list"
	if config != nil && config.Defaults.Format != "" {
		defaultFormat = config.Defaults.Format
	}

	// Tools that don't need config
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool("validate-angular-code",
				mcp.WithDescription("Validate Angular code against enterprise patterns"),
				mcp.WithString("code",
					mcp.Required(),
					mcp.Description("The Angular code to validate"),
				),
				mcp.WithString("type",
					mcp.Required(),
					mcp.Description("Type of code: 'component', 'service', 'guard', or 'routing'"),
				),
				mcp.WithString("format",
					mcp.Description("Result format: 'list' or 'table' (default: "+defaultFormat+")"),
					mcp.DefaultString(defaultFormat),
				),
			),
			Handler: makeValidateCodeHandler(validator, defaultFormat),
			Role:    "codeValidator",
		},
		{
			Tool: mcp.NewTool("generate-angular-template",
				mcp.WithDescription("Generate Angular code following enterprise patterns"),
				mcp.WithString("type",
					mcp.Required(),
					mcp.Description("Template type: 'component', 'service', or 'guard'"),
				),
				mcp.WithString("name",
					mcp.Required(),
					mcp.Description("Name for the generated artifact (e.g., 'UserList')"),
				),
			),
			Handler: makeGenerateTemplateHandler(catalog),
			Role:    "templateGenerator",
		},
	}

	if config != nil && config.Extras.Diagnostics {
		tools = append(tools, ToolDefinition{
			Tool: mcp.NewTool("get_resource_usage",
				mcp.WithDescription("Get current resource usage statistics including memory, GC, and CPU information"),
				mcp.WithBoolean("detailed",
					mcp.Description("Include detailed memory breakdown (default: false)"),
					mcp.DefaultBool(false),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'json' or 'markdown' (default: 'json')"),
					mcp.DefaultString("json"),
				),
			),
			Handler: handleGetResourceUsage,
			Role:    "resourceMonitor",
		})
	}

	// Tools that need config
	var toolsWithConfig []ToolDefinitionWithConfig

	if config != nil && config.Extras.AITools {
		toolsWithConfig = append(toolsWithConfig, ToolDefinitionWithConfig{
			Tool: mcp.NewTool("analyze_patterns_with_ai",
				mcp.WithDescription("Analyze Angular code architecture using AI collaboration (requires bidirectional communication)"),
				mcp.WithString("code",
					mcp.Required(),
					mcp.Description("The Angular code to analyze"),
				),
				mcp.WithString("analysis_type",
					mcp.Required(),
					mcp.Description("Type of analysis (required): 'architecture', 'migration', 'general'"),
				),
			),
			Handler: handleAnalyzePatternsWithAI,
			Role:    "aiAnalyzer",
		})
	}

	return tools, toolsWithConfig
}
