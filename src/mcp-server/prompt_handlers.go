// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/enterpriseng/angular-patterns-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/mcp"
)

// promptTemplateData holds the data used to populate prompt templates.
type promptTemplateData struct {
	Target      string
	FeatureName string
}

// parsePromptTemplate parses a prompt template file and converts it to MCP messages.
//
// This function reads a template file from the embedded filesystem, executes
// it with the provided data, and converts the structured content into MCP prompt messages.
// The template-based approach enables dynamic content generation instead of hardcoded values,
// making prompts more maintainable and flexible.
//
// Parameters:
//   - templateName: Name of the template file (without .md extension)
//   - data: Template data to populate placeholders
//
// Returns:
//   - []mcp.PromptMessage: Parsed MCP messages
//   - error: Any error during template execution or parsing
func parsePromptTemplate(templateName string, data promptTemplateData) ([]mcp.PromptMessage, error) {
	// Read the template file
	templateContent, err := templates.MagicEmbed.ReadFile(templateName + ".md")
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", templateName, err)
	}

	// Parse the template
	tmpl, err := template.New(templateName).Parse(string(templateContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	// Execute the template
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	content := buf.String()

	// Parse the executed content into MCP messages
	var messages []mcp.PromptMessage
	lines := strings.Split(content, "\n")
	var currentRole mcp.Role
	var currentContent strings.Builder

	for _, line := range lines {
		line = strings.TrimSpace(line)

		// Check for role markers first (before skipping headers)
		if strings.HasPrefix(line, "### Assistant:") || strings.HasPrefix(line, "##### Assistant:") {
			// Save previous message if any
			if currentContent.Len() > 0 {
				messages = append(messages, mcp.NewPromptMessage(
					currentRole,
					mcp.NewTextContent(strings.TrimSpace(currentContent.String())),
				))
				currentContent.Reset()
			}
			currentRole = mcp.RoleAssistant
			continue
		}

		if strings.HasPrefix(line, "### User:") || strings.HasPrefix(line, "##### User:") {
			// Save previous message if any
			if currentContent.Len() > 0 {
				messages = append(messages, mcp.NewPromptMessage(
					currentRole,
					mcp.NewTextContent(strings.TrimSpace(currentContent.String())),
				))
				currentContent.Reset()
			}
			currentRole = mcp.RoleUser
			continue
		}

		// Skip empty lines and headers
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Add line to current content if we have a role
		if currentRole != "" {
			if currentContent.Len() > 0 {
				currentContent.WriteString("\n")
			}
			currentContent.WriteString(line)
		}
	}

	// Add final message if any
	if currentContent.Len() > 0 {
		messages = append(messages, mcp.NewPromptMessage(
			currentRole,
			mcp.NewTextContent(strings.TrimSpace(currentContent.String())),
		))
	}

	return messages, nil
}

// handleComponentReviewPrompt handles the component review workflow prompt.
//
// This function implements the component-review prompt, which walks a client
// through reviewing an Angular component against the enterprise pattern
// checklist: loading the rules resource, running the validation tool, and
// explaining each finding.
//
// Parameters:
//   - ctx: Context for the request, used for cancellation and timeouts
//   - request: The MCP get prompt request containing arguments
//
// Returns:
//   - *mcp.GetPromptResult: The prompt result with review workflow messages
//   - error: Any error that occurred during prompt handling
//
// Expected arguments in request.Params.Arguments:
//   - target: Component file path or name to review (optional)
func handleComponentReviewPrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	target := request.Params.Arguments["target"]

	messages, err := parsePromptTemplate("component-review-prompt", promptTemplateData{
		Target: target,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse component review template: %w", err)
	}

	return mcp.NewGetPromptResult(
		"Component Review Workflow",
		messages,
	), nil
}

// handleScaffoldFeaturePrompt handles the feature scaffolding prompt.
//
// This function implements the scaffold-feature prompt, which guides a client
// through creating a new lazy-loaded feature: generating the component,
// service, and guard from the catalog templates and wiring the routes.
//
// Parameters:
//   - ctx: Context for the request, used for cancellation and timeouts
//   - request: The MCP get prompt request containing arguments
//
// Returns:
//   - *mcp.GetPromptResult: The prompt result with scaffolding workflow messages
//   - error: Any error that occurred during prompt handling
//
// Expected arguments in request.Params.Arguments:
//   - feature_name: Name of the new feature, e.g. "OrderHistory"
func handleScaffoldFeaturePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	featureName := request.Params.Arguments["feature_name"]
	if featureName == "" {
		featureName = "NewFeature"
	}

	messages, err := parsePromptTemplate("scaffold-feature-prompt", promptTemplateData{
		FeatureName: featureName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse scaffold feature template: %w", err)
	}

	return mcp.NewGetPromptResult(
		"Feature Scaffolding Workflow",
		messages,
	), nil
}
