// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/enterpriseng/angular-patterns-mcp/src/internal/helper/gc"
	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/enterpriseng/angular-patterns-mcp/src/mcp-server/templates"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// serverName is the MCP server name advertised during initialization.
const serverName = "Angular Enterprise Patterns"

// CodeValidator defines the interface for pattern validation over raw source text.
// It decouples the MCP handlers from the catalog package so validation can be
// swapped out in tests or extended integrations.
//
// Methods:
//   - Validate: Runs the ordered pattern checks for a code type and returns issue messages
type CodeValidator interface {
	Validate(code string, typ patterns.CodeType) []string
}

// DefaultCodeValidator implements CodeValidator using the patterns package checks.
// It is used when no custom validator is provided to the server builder.
type DefaultCodeValidator struct{}

// Validate runs the ordered substring checks from the patterns package.
//
// Parameters:
//   - code: Raw source text to inspect
//   - typ: Artifact kind selecting the check list
//
// Returns:
//   - []string: Issue messages in check-declaration order; empty when clean
func (DefaultCodeValidator) Validate(code string, typ patterns.CodeType) []string {
	return patterns.Validate(code, typ)
}

// ToolHandler defines the signature for tool handlers that matches [MCP] server expectations.
// It processes tool calls and returns results.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP tool call request containing arguments and metadata
//
// Returns:
//   - The tool execution result or an error if the tool failed
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig defines tool handlers that require access to server configuration.
// It extends ToolHandler to include a Config parameter for tools that need configuration data.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP tool call request containing arguments and metadata
//   - config: Pointer to the server configuration containing AI settings and other options
//
// Returns:
//   - The tool execution result or an error if the tool failed
//
// This type is used for tools that need access to configuration like AI API keys or timeouts.
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error)

// ResourceHandler defines the signature for resource handlers that provide static or dynamic resources.
// It processes resource read requests and returns the resource contents.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP resource read request containing the resource URI
//
// Returns:
//   - A slice of resource contents or an error if the resource cannot be read
type ResourceHandler = func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// PromptHandler defines the signature for prompt handlers that provide predefined prompts.
// It processes prompt requests and returns prompt content with optional arguments.
//
// Parameters:
//   - ctx: Context for cancellation and timeout handling
//   - request: The MCP prompt request containing the prompt name and arguments
//
// Returns:
//   - The prompt result containing messages and description, or an error if the prompt is not found
type PromptHandler = func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error)

// ToolDefinition holds a tool definition and its handler.
// It pairs an MCP tool specification with its implementation function.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic
//   - Role: Stable role identifier used by the instructions template to reference the tool
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	Role    string
}

// ToolDefinitionWithConfig holds a tool definition that requires configuration access.
// It pairs an MCP tool specification with a handler that receives server configuration.
//
// Fields:
//   - Tool: The MCP tool definition containing name, description, and input schema
//   - Handler: The function that implements the tool's logic with config access
//   - Role: Stable role identifier used by the instructions template to reference the tool
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
	Role    string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
// It consolidates all required components for server initialization using the builder pattern.
//
// Fields:
//   - Config: Server configuration containing AI settings and feature gates
//   - Embed: Embedded filesystem for templates and documentation
//   - Version: Server version string for User-Agent headers and identification
//   - Catalog: The immutable pattern catalog backing resources and tools
//   - Validator: Interface for pattern validation over raw source text
//   - Tools: List of tool definitions without configuration requirements
//   - ToolsWithConfig: List of tool definitions that need configuration access
//   - Resources: List of static resources provided by the server
//   - Prompts: List of predefined prompts for guided workflows
//   - Instructions: Rendered instruction text sent to clients during initialization
//   - SamplingHandler: Handler for bidirectional AI communication and streaming responses
//
// This struct is used internally by ServerBuilder and should not be instantiated directly.
type ServerDependencies struct {
	Config          *Config
	Embed           templates.EmbedFS
	Version         string
	Catalog         *patterns.Catalog
	Validator       CodeValidator
	Tools           []ToolDefinition
	ToolsWithConfig []ToolDefinitionWithConfig
	Resources       []server.ServerResource
	Prompts         []server.ServerPrompt
	Instructions    string
	SamplingHandler client.SamplingHandler
}

// ServerBuilder helps construct the [MCP] server with proper dependencies using a fluent interface.
// It implements the builder pattern to configure and create MCP servers with all required components.
//
// The builder allows chaining configuration methods and provides default implementations
// for common dependencies. Use NewServerBuilder() to create an instance, chain configuration
// methods, and call Build() to create the server.
//
// Example:
//
//	builder := NewServerBuilder().
//	    WithConfig(config).
//	    WithVersion("1.0.0").
//	    WithDefaultTools().
//	    WithSampling(samplingHandler)
//	server, err := builder.Build()
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type ServerBuilder struct {
	deps        ServerDependencies
	useDefaults bool
}

// NewServerBuilder creates a new server builder with default empty dependencies.
//
// Returns:
//   - A pointer to a new ServerBuilder instance ready for configuration
//
// The returned builder has no dependencies configured and should be chained with
// configuration methods before calling Build().
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration containing AI settings and feature gates.
//
// Parameters:
//   - config: Pointer to the server configuration (can be nil for basic functionality)
//
// Returns:
//   - The ServerBuilder instance for method chaining
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithEmbed sets the embedded filesystem for templates and documentation.
//
// Parameters:
//   - embed: The embedded filesystem (typically templates.MagicEmbed)
//
// Returns:
//   - The ServerBuilder instance for method chaining
func (b *ServerBuilder) WithEmbed(embed templates.EmbedFS) *ServerBuilder {
	b.deps.Embed = embed
	return b
}

// WithVersion sets the server version string used for identification and User-Agent headers.
//
// Parameters:
//   - version: The server version string (e.g., "1.0.0" or "v1.2.3")
//
// Returns:
//   - The ServerBuilder instance for method chaining
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithCatalog sets the pattern catalog backing resources and template generation.
//
// Parameters:
//   - catalog: The immutable pattern catalog built at startup
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// If not set, Build constructs the canonical catalog from the embedded templates.
func (b *ServerBuilder) WithCatalog(catalog *patterns.Catalog) *ServerBuilder {
	b.deps.Catalog = catalog
	return b
}

// WithValidator sets the code validator used by the validation tool.
//
// Parameters:
//   - v: The validator implementation (must implement CodeValidator)
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// If not set, DefaultCodeValidator is used.
func (b *ServerBuilder) WithValidator(v CodeValidator) *ServerBuilder {
	b.deps.Validator = v
	return b
}

// WithTools adds tool definitions to the server that don't require configuration access.
//
// Parameters:
//   - tools: Variable number of ToolDefinition structs containing tool specs and handlers
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// Use WithToolsWithConfig for tools that need configuration access.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithConfig adds tool definitions that require configuration access to the server.
//
// Parameters:
//   - tools: Variable number of ToolDefinitionWithConfig structs containing tool specs and handlers
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// Tools added with this method receive access to server configuration like AI API keys.
func (b *ServerBuilder) WithToolsWithConfig(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, tools...)
	return b
}

// WithResources adds static resources to the MCP server.
//
// Parameters:
//   - resources: Variable number of server.ServerResource structs containing resource specs and handlers
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// Clients access resources using URIs like "patterns://angular/rules".
func (b *ServerBuilder) WithResources(resources ...server.ServerResource) *ServerBuilder {
	b.deps.Resources = append(b.deps.Resources, resources...)
	return b
}

// WithPrompts adds predefined prompts to the MCP server for guided workflows.
//
// Parameters:
//   - prompts: Variable number of server.ServerPrompt structs containing prompt specs and handlers
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// Prompts are used for workflows like component reviews or feature scaffolding,
// providing clients with predefined conversation starters and argument schemas.
func (b *ServerBuilder) WithPrompts(prompts ...server.ServerPrompt) *ServerBuilder {
	b.deps.Prompts = append(b.deps.Prompts, prompts...)
	return b
}

// WithInstructions sets the rendered instruction text sent to clients during initialization.
//
// Parameters:
//   - instructions: Instruction text describing server capabilities and tool usage
//
// Returns:
//   - The ServerBuilder instance for method chaining
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// WithSampling adds a sampling handler for bidirectional AI communication.
//
// Parameters:
//   - handler: The sampling handler implementation for AI API integration
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// The sampling handler enables AI-assisted pattern analysis with streaming responses.
// If not set, AI-powered features will return static guidance messages.
func (b *ServerBuilder) WithSampling(handler client.SamplingHandler) *ServerBuilder {
	b.deps.SamplingHandler = handler
	return b
}

// WithDefaultTools registers the default pattern tools, resources, and prompts
// during Build using the configured catalog and config.
//
// Returns:
//   - The ServerBuilder instance for method chaining
//
// This is the convenience path used by transport integrations; the stdio server
// entry point registers everything explicitly instead.
func (b *ServerBuilder) WithDefaultTools() *ServerBuilder {
	b.useDefaults = true
	return b
}

// Build creates the [MCP] server with all configured dependencies.
// It validates the configuration and constructs a fully configured MCP server instance.
//
// Returns:
//   - A pointer to the configured MCPServer instance
//   - An error if the configuration is invalid or server creation fails
//
// The method builds the canonical catalog from the embedded templates when none
// was supplied, registers all tools, resources, and prompts, and returns a
// ready-to-use server.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.deps.Embed == nil {
		b.deps.Embed = templates.MagicEmbed
	}
	if b.deps.Validator == nil {
		b.deps.Validator = DefaultCodeValidator{}
	}
	if b.deps.Catalog == nil {
		catalog, err := patterns.NewCatalog(b.deps.Embed)
		if err != nil {
			return nil, fmt.Errorf("failed to build pattern catalog: %w", err)
		}
		b.deps.Catalog = catalog
	}

	if b.useDefaults {
		tools, toolsWithConfig := createTools(b.deps.Catalog, b.deps.Config, b.deps.Validator)
		b.deps.Tools = append(b.deps.Tools, tools...)
		b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, toolsWithConfig...)
		b.deps.Resources = append(b.deps.Resources, createResources(b.deps.Catalog)...)
		b.deps.Prompts = append(b.deps.Prompts, createPrompts()...)
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	}
	if b.deps.Instructions != "" {
		opts = append(opts, server.WithInstructions(b.deps.Instructions))
	}

	s := server.NewMCPServer(serverName, b.deps.Version, opts...)

	// Enable sampling for bidirectional AI communication if handler provided
	if b.deps.SamplingHandler != nil {
		s.EnableSampling()
	}

	// Add tools
	for _, tool := range b.deps.Tools {
		s.AddTool(tool.Tool, tool.Handler)
	}

	// Add tools that need config (wrap the handler)
	for _, tool := range b.deps.ToolsWithConfig {
		handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return tool.Handler(ctx, request, b.deps.Config)
		}
		s.AddTool(tool.Tool, handler)
	}

	// Add resources
	for _, resource := range b.deps.Resources {
		s.AddResource(resource.Resource, resource.Handler)
	}

	// Add prompts
	for _, prompt := range b.deps.Prompts {
		s.AddPrompt(prompt.Prompt, prompt.Handler)
	}

	return s, nil
}

// DefaultSamplingHandler provides configurable AI API integration for bidirectional communication
type DefaultSamplingHandler struct {
	apiKey        string
	endpoint      string
	model         string
	timeout       time.Duration
	client        *http.Client
	version       string
	TokenCallback func(string) // Callback for streaming tokens
}

// NewDefaultSamplingHandler creates a new sampling handler with configurable AI settings
func NewDefaultSamplingHandler(config *Config, version string) *DefaultSamplingHandler {
	return &DefaultSamplingHandler{
		apiKey:   config.AI.APIKey,
		endpoint: config.AI.Endpoint,
		model:    config.AI.Model,
		version:  version,
		timeout:  time.Duration(config.AI.Timeout) * time.Second,
		client:   &http.Client{Timeout: time.Duration(config.AI.Timeout) * time.Second},
	}
}

// CreateMessage handles sampling requests by calling the configured AI API
func (h *DefaultSamplingHandler) CreateMessage(ctx context.Context, request mcp.CreateMessageRequest) (*mcp.CreateMessageResult, error) {
	// Get buffer from pool for efficient memory usage
	// Note: Buffer is primarily used for error response reading.
	// During successful streaming, it remains allocated but unused until the function returns.
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// If no API key, return guidance for enabling AI integration
	if h.apiKey == "" {
		return h.handleNoAPIKey()
	}

	// Convert MCP messages to OpenAI-compatible format
	messages := h.convertMessages(request.Messages)

	// Prepare API request
	model := h.selectModel(request.ModelPreferences)
	requestMessages := h.prepareMessages(messages, request.SystemPrompt)
	apiRequest := h.buildAPIRequest(model, requestMessages, request)

	// Create and send HTTP request
	resp, err := h.sendAPIRequest(ctx, apiRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Check response status
	if resp.StatusCode != http.StatusOK {
		return nil, h.handleAPIError(resp, buf)
	}

	// Handle streaming response
	content, modelName, stopReason, err := h.parseStreamingResponse(resp.Body, model)
	if err != nil {
		return nil, fmt.Errorf("error reading streaming response: %w", err)
	}

	return h.buildSamplingResult(content, modelName, stopReason), nil
}

// handleNoAPIKey returns a helpful message when no API key is configured
func (h *DefaultSamplingHandler) handleNoAPIKey() (*mcp.CreateMessageResult, error) {
	response := "AI API key not configured. Set PATTERNS_AI_APIKEY or configure the ai.apiKey field in the config file to enable AI pattern analysis. " +
		"Until then, the server will return static validation results only."

	return &mcp.CreateMessageResult{
		SamplingMessage: mcp.SamplingMessage{
			Role:    mcp.RoleAssistant,
			Content: mcp.NewTextContent(response),
		},
		Model:      "not-configured",
		StopReason: "end",
	}, nil
}

// convertMessages converts MCP messages to OpenAI-compatible format
func (h *DefaultSamplingHandler) convertMessages(mcpMessages []mcp.SamplingMessage) []map[string]any {
	var messages []map[string]any
	for _, msg := range mcpMessages {
		message := map[string]any{
			"role": string(msg.Role),
		}

		// Handle different content types
		if textContent, ok := msg.Content.(mcp.TextContent); ok {
			message["content"] = textContent.Text
		} else {
			// For other content types, convert to string representation
			message["content"] = fmt.Sprintf("%v", msg.Content)
		}

		messages = append(messages, message)
	}
	return messages
}

// selectModel chooses the appropriate model based on preferences
func (h *DefaultSamplingHandler) selectModel(preferences *mcp.ModelPreferences) string {
	model := h.model // Use configured default model
	if preferences != nil && len(preferences.Hints) > 0 {
		// Use the first model hint if available
		model = preferences.Hints[0].Name
	}
	return model
}

// prepareMessages adds system prompt if provided
func (h *DefaultSamplingHandler) prepareMessages(messages []map[string]any, systemPrompt string) []map[string]any {
	if systemPrompt == "" {
		return messages
	}

	systemMessage := map[string]any{
		"role":    "system",
		"content": systemPrompt,
	}
	return append([]map[string]any{systemMessage}, messages...)
}

// buildAPIRequest creates the API request payload
func (h *DefaultSamplingHandler) buildAPIRequest(model string, messages []map[string]any, request mcp.CreateMessageRequest) map[string]any {
	apiRequest := map[string]any{
		"model":       model,
		"messages":    messages,
		"max_tokens":  request.MaxTokens,
		"temperature": request.Temperature,
		"stream":      true, // Streaming keeps long reviews responsive
	}

	// Add stop sequences if provided
	if len(request.StopSequences) > 0 {
		apiRequest["stop"] = request.StopSequences
	}

	return apiRequest
}

// sendAPIRequest creates and sends the HTTP request
func (h *DefaultSamplingHandler) sendAPIRequest(ctx context.Context, apiRequest map[string]any) (*http.Response, error) {
	// Marshal request to JSON
	reqBody, err := json.Marshal(apiRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal API request: %w", err)
	}

	// Create HTTP request using bytes.Reader for request body
	req, err := http.NewRequestWithContext(ctx, "POST", h.endpoint+"/v1/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("User-Agent", "Angular-Enterprise-Patterns-MCP/"+h.version+" (+https://github.com/enterpriseng/angular-patterns-mcp)")

	// Make the request
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call AI API: %w", err)
	}

	return resp, nil
}

// handleAPIError processes API error responses
func (h *DefaultSamplingHandler) handleAPIError(resp *http.Response, buf gc.Buffer) error {
	// Read error response body using buffer pool
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return fmt.Errorf("AI API error (status %d): failed to read error response: %w", resp.StatusCode, err)
	}
	return fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(buf.Bytes()))
}

// parseStreamingResponse handles the streaming response parsing
func (h *DefaultSamplingHandler) parseStreamingResponse(body io.Reader, defaultModel string) (string, string, string, error) {
	var fullContent strings.Builder
	modelName := defaultModel
	stopReason := "stop"

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		// Parse Server-Sent Events format
		if data, found := strings.CutPrefix(line, "data: "); found {
			// Handle end of stream
			if data == "[DONE]" {
				break
			}

			// Parse JSON chunk
			var chunk map[string]any
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				continue // Skip malformed chunks
			}

			// Extract model name if available
			if modelFromChunk, ok := chunk["model"].(string); ok && modelName == defaultModel {
				modelName = modelFromChunk
			}

			// Process choices
			if choices, ok := chunk["choices"].([]any); ok && len(choices) > 0 {
				if choice, ok := choices[0].(map[string]any); ok {
					// Extract delta content
					if delta, ok := choice["delta"].(map[string]any); ok {
						if content, ok := delta["content"].(string); ok {
							fullContent.WriteString(content)
							// Stream token via callback if configured
							if h.TokenCallback != nil {
								h.TokenCallback(content)
							}
						}
					}

					// Check for finish reason
					if finishReason, ok := choice["finish_reason"].(string); ok && finishReason != "" {
						stopReason = finishReason
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return "", "", "", err
	}

	return fullContent.String(), modelName, stopReason, nil
}

// buildSamplingResult creates the final sampling result
func (h *DefaultSamplingHandler) buildSamplingResult(content, modelName, stopReason string) *mcp.CreateMessageResult {
	return &mcp.CreateMessageResult{
		SamplingMessage: mcp.SamplingMessage{
			Role:    mcp.RoleAssistant,
			Content: mcp.NewTextContent(content),
		},
		Model:      modelName,
		StopReason: stopReason,
	}
}
