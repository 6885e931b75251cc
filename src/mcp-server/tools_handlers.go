// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/enterpriseng/angular-patterns-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// makeValidateCodeHandler returns the handler for the validate-angular-code tool.
// It runs the ordered checks of the supplied validator and formats the result.
//
// Parameters:
//   - validator: The validator implementation running the pattern checks
//   - defaultFormat: Report format used when the request omits the format argument
//
// Returns:
//   - ToolHandler: Handler producing the validation report
//
// Validation is idempotent: the same code and type always produce the same
// issue list in the same order. Types without registered checks (guard,
// routing) validate clean. The "table" format renders issues as a markdown
// table instead of a bulleted list.
func makeValidateCodeHandler(validator CodeValidator, defaultFormat string) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Extract arguments
		code, err := request.RequireString("code")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("code parameter required: %v", err)), nil
		}

		typ, err := request.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("type parameter required: %v", err)), nil
		}

		format := request.GetString("format", defaultFormat)

		issues := validator.Validate(code, patterns.CodeType(typ))

		var result string
		switch format {
		case "table":
			result = patterns.FormatIssuesTable(issues)
		default: // list
			result = patterns.FormatIssues(issues)
		}

		return mcp.NewToolResultText(result), nil
	}
}

// makeGenerateTemplateHandler returns the handler for the generate-angular-template tool.
// It renders a catalog template with the supplied artifact name.
//
// Parameters:
//   - catalog: The pattern catalog holding the parsed code templates
//
// Returns:
//   - ToolHandler: Handler producing the rendered template text
//
// Every {name} placeholder in the template becomes the kebab-cased form of the
// supplied name and every {Name} placeholder the PascalCase form. An unknown
// template type produces a tool error result whose text starts with
// "Template not found".
func makeGenerateTemplateHandler(catalog *patterns.Catalog) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Extract arguments
		typ, err := request.RequireString("type")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("type parameter required: %v", err)), nil
		}

		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("name parameter required: %v", err)), nil
		}

		tmpl, ok := catalog.TemplateFor(typ)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Template not found: %s", typ)), nil
		}

		return mcp.NewToolResultText(tmpl.Render(name)), nil
	}
}

// handleAnalyzePatternsWithAI analyzes Angular code architecture using AI collaboration through sampling.
// It first runs the deterministic pattern checks, then builds a code context and sends it to the
// configured AI endpoint for an architecture-level review.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing the code and analysis type
//   - config: Server configuration containing AI API settings and defaults
//
// Returns:
//   - The tool execution result containing AI-powered pattern analysis
//   - An error if code processing or AI analysis fails
//
// The function supports general, architecture, and migration analysis types. If no AI API key
// is configured, it returns a helpful message with the prepared analysis context.
// When AI is available, it uses the embedded system prompt and streaming responses.
func handleAnalyzePatternsWithAI(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error) {
	code, err := request.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("code parameter required: %v", err)), nil
	}

	analysisType := request.GetString("analysis_type", "general")

	// Run the deterministic checks first so the AI review builds on them
	var knownIssues []string
	for _, typ := range []patterns.CodeType{patterns.TypeComponent, patterns.TypeService} {
		for _, issue := range patterns.Validate(code, typ) {
			knownIssues = append(knownIssues, fmt.Sprintf("[%s] %s", typ, issue))
		}
	}

	// Build comprehensive code context for AI analysis including known issues
	codeContext := buildPatternContext(code, knownIssues, analysisType)

	// Use context engineering as the primary prompt for AI analysis
	analysisPrompt := codeContext + "\n\n" + getAnalysisInstruction(analysisType)

	// Try to get AI analysis if API key is configured
	if config.AI.APIKey != "" {
		// Read system prompt from embedded template
		systemPromptBytes, err := templates.MagicEmbed.ReadFile("pattern-analysis-system-prompt.md")
		systemPrompt := ""
		if err == nil {
			systemPrompt = string(systemPromptBytes)
		} else {
			// Fallback system prompt if file cannot be read
			systemPrompt = "You are an Angular enterprise architecture reviewer. Follow these exact instructions for analyzing Angular code."
		}

		// Create sampling handler for this request
		samplingHandler := &DefaultSamplingHandler{
			apiKey:   config.AI.APIKey,
			endpoint: config.AI.Endpoint,
			model:    config.AI.Model,
			timeout:  time.Duration(config.AI.Timeout) * time.Second,
			client:   &http.Client{Timeout: time.Duration(config.AI.Timeout) * time.Second},
		}

		// Prepare sampling request with system prompt
		samplingRequest := mcp.CreateMessageRequest{
			CreateMessageParams: mcp.CreateMessageParams{
				Messages: []mcp.SamplingMessage{
					{
						Role:    mcp.RoleUser,
						Content: mcp.TextContent{Text: analysisPrompt},
					},
				},
				SystemPrompt: systemPrompt,
				MaxTokens:    config.AI.MaxTokens,
				Temperature:  config.AI.Temperature,
			},
		}

		// Bound the whole analysis with the configured operation timeout
		analysisCtx, cancel := context.WithTimeout(ctx, time.Duration(config.Defaults.Timeout)*time.Second)
		defer cancel()

		// Call the AI API
		samplingResult, err := samplingHandler.CreateMessage(analysisCtx, samplingRequest)
		if err != nil {
			// If sampling fails, return only the error
			result := fmt.Sprintf("AI Analysis Request Failed: %v", err)
			return mcp.NewToolResultText(result), nil
		}

		// Return the AI's analysis
		result := fmt.Sprintf("🤖 AI-Powered Pattern Analysis (%s)\n\n", analysisType)
		result += "Analysis provided by AI assistant:\n\n"
		if textContent, ok := samplingResult.SamplingMessage.Content.(mcp.TextContent); ok {
			result += textContent.Text
		} else {
			result += "AI provided analysis (content format not supported for display)"
		}
		result += fmt.Sprintf("\n\n---\n*AI Model: %s*", samplingResult.Model)

		return mcp.NewToolResultText(result), nil
	}

	// Fallback: Show what would be sent to AI (no API key configured)
	result := fmt.Sprintf("AI Collaborative Analysis (%s)\n\n", analysisType)
	result += "⚠️  No AI API key configured. To enable real AI analysis:\n"
	result += "   1. Set PATTERNS_AI_APIKEY environment variable, or\n"
	result += "   2. Configure 'ai.apiKey' in your config file\n\n"
	result += "📋 Code Context Prepared for AI Analysis:\n"
	result += codeContext
	result += fmt.Sprintf("\n\n💭 Analysis Prompt Ready:\n%s", analysisPrompt)
	result += "\n\n🔄 With API key configured, this would send the context to AI for intelligent analysis."

	return mcp.NewToolResultText(result), nil
}

// handleGetResourceUsage handles requests for current resource usage statistics including memory and GC metrics.
// It collects comprehensive system and application resource data and formats it according to the requested output format.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: MCP tool call request containing format and detail level parameters
//
// Returns:
//   - The tool execution result containing formatted resource usage data
//   - An error if resource collection or formatting fails
//
// The function supports both JSON and Markdown output formats, with optional detailed metrics
// including memory breakdown and system information.
func handleGetResourceUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detailed := request.GetBool("detailed", false)
	format := request.GetString("format", "json")

	// Collect resource usage data
	data := CollectResourceUsage(detailed)

	// Format output based on format parameter
	switch format {
	case "markdown":
		markdown := FormatResourceUsageAsMarkdown(data)
		return mcp.NewToolResultText(markdown), nil
	case "json":
		fallthrough
	default:
		jsonData, err := FormatResourceUsageAsJSON(data)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format resource usage: %v", err)), nil
		}

		// Parse the JSON string back to a map for structured content
		var structuredData map[string]any
		if err := json.Unmarshal([]byte(jsonData), &structuredData); err != nil {
			// Fallback to text if parsing fails
			return mcp.NewToolResultText(jsonData), nil
		}

		// Return structured JSON content for programmatic access
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.NewTextContent(jsonData),
			},
			StructuredContent: structuredData,
			IsError:           false,
		}, nil
	}
}

// buildPatternContext creates comprehensive context information about a code snippet for AI analysis.
// It combines the raw source with the results of the deterministic pattern checks so the AI
// review can go beyond them instead of repeating them.
//
// Parameters:
//   - code: Raw source text under review
//   - knownIssues: Issues already found by the deterministic checks, tagged by code type
//   - analysisType: Type of analysis (general, architecture, migration)
//
// Returns:
//   - A formatted string containing the code context for AI-powered review
func buildPatternContext(code string, knownIssues []string, analysisType string) string {
	var context strings.Builder

	fmt.Fprintf(&context, "Analysis Type: %s\n", analysisType)
	fmt.Fprintf(&context, "Code Length: %d characters, %d lines\n\n", len(code), strings.Count(code, "\n")+1)

	context.WriteString("DETERMINISTIC CHECK RESULTS:\n")
	context.WriteString("Methodology: Ordered substring checks mirroring the enterprise review checklist.\n")
	if len(knownIssues) == 0 {
		context.WriteString("No issues found by the deterministic checks.\n")
	} else {
		for _, issue := range knownIssues {
			fmt.Fprintf(&context, "- %s\n", issue)
		}
	}
	context.WriteString("\n=== CODE UNDER REVIEW ===\n")
	context.WriteString(code)
	context.WriteString("\n=== END CODE ===\n")

	appendArchitectureContext(&context)

	return context.String()
}

// appendArchitectureContext adds the enterprise architecture conventions to the context builder.
// It summarizes the rules the AI review should measure the code against.
//
// Parameters:
//   - context: String builder to append architecture context information to
func appendArchitectureContext(context *strings.Builder) {
	context.WriteString("\n=== ARCHITECTURE CONTEXT ===\n")
	context.WriteString("Enterprise Angular Conventions:\n")
	context.WriteString("- Standalone components only; NgModules are legacy\n")
	context.WriteString("- signal() and computed() for reactive state; no state library by default\n")
	context.WriteString("- inject() function instead of constructor injection\n")
	context.WriteString("- providedIn: 'root' for singleton services\n")
	context.WriteString("- OnPush change detection on every component\n")
	context.WriteString("- Functional guards (CanActivateFn) instead of class guards\n")
	context.WriteString("- Features lazy loaded via loadChildren; dependencies point inward (features -> shared -> core)\n")
	context.WriteString("- Bootstrap 5 utilities first; component-level custom CSS is a review flag\n")
}

// getAnalysisInstruction returns tailored analysis instructions for AI pattern assessment based on the requested analysis type.
// It provides specific prompts for general, architecture, and migration analysis types.
//
// Parameters:
//   - analysisType: The type of analysis requested ("general", "architecture", or "migration")
//
// Returns:
//   - A formatted string containing detailed analysis instructions for the AI
//
// The function uses structured prompts that guide the AI to focus on relevant aspects
// of the review, including layering, reactivity, and migration paths with specific
// severity levels and recommendations.
func getAnalysisInstruction(analysisType string) string {
	switch analysisType {
	case "architecture":
		return `
ARCHITECTURE ANALYSIS REQUEST:
Based on the code above, provide a comprehensive architecture assessment focusing on:
1. Layer placement: does this code belong in core, features, shared, or layouts?
2. Dependency direction violations and coupling concerns
3. Component responsibility and size
4. State ownership: signals usage, readonly exposure, mutation paths
5. Recommendations for restructuring
6. Severity assessment (Critical/High/Medium/Low) with specific findings

Be specific about any structural concerns found in the code organization or dependencies.`

	case "migration":
		return `
MIGRATION ANALYSIS REQUEST:
Based on the code above, assess the migration path to current Angular idioms:
1. NgModule to standalone component migration steps
2. Decorator-based @Input/@Output to input()/output() functions
3. Constructor injection to inject() function
4. RxJS state to signals where appropriate
5. Class guards to functional guards
6. Ordered migration plan with effort estimates per step

Identify legacy constructs and provide a concrete, incremental migration sequence.`

	default: // general
		return `
GENERAL PATTERN ANALYSIS REQUEST:
Based on the code above, provide a comprehensive review covering:
1. Compliance with the enterprise conventions listed in the architecture context
2. Reactivity and change detection posture
3. Dependency injection style and service design
4. Template and styling conventions
5. Readability and maintainability observations
6. Any notable characteristics or potential concerns

Provide actionable insights beyond the deterministic check results.`
	}
}
