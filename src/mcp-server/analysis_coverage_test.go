// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func analyzeRequest(code string) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "analyze_patterns_with_ai",
			Arguments: map[string]any{
				"code":          code,
				"analysis_type": "architecture",
			},
		},
	}
}

func TestHandleAnalyzePatternsWithAI_NoAPIKey(t *testing.T) {
	// Without an API key the handler must still succeed and return the
	// prepared analysis context instead of calling out
	config := &Config{}
	config.Defaults.Timeout = 10
	config.AI.APIKey = ""

	result, err := handleAnalyzePatternsWithAI(context.Background(), analyzeRequest(bareComponent), config)
	if err != nil {
		t.Fatalf("handleAnalyzePatternsWithAI returned error: %v", err)
	}

	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content result")
	}

	if !strings.Contains(content.Text, "No AI API key") {
		t.Error("expected no API key warning")
	}

	// The deterministic findings must be part of the prepared context
	if !strings.Contains(content.Text, "Code Context Prepared") {
		t.Error("expected prepared code context section")
	}
	if !strings.Contains(content.Text, "Component must be standalone") {
		t.Error("expected deterministic check findings in the context")
	}
}

func TestHandleAnalyzePatternsWithAI_Streaming(t *testing.T) {
	// Mock an OpenAI-compatible endpoint answering with SSE chunks
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected request path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %s", got)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"model\":\"grok-test\",\"choices\":[{\"delta\":{\"content\":\"Move the HTTP call \"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive comment lines are skipped\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"into a core service.\"},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer ts.Close()

	config := &Config{}
	config.Defaults.Timeout = 10
	config.AI.APIKey = "test-key"
	config.AI.Endpoint = ts.URL
	config.AI.Model = "grok-test"
	config.AI.Timeout = 5
	config.AI.MaxTokens = 256
	config.AI.Temperature = 0.3

	result, err := handleAnalyzePatternsWithAI(context.Background(), analyzeRequest(bareComponent), config)
	if err != nil {
		t.Fatalf("handleAnalyzePatternsWithAI returned error: %v", err)
	}

	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content result")
	}

	if !strings.Contains(content.Text, "🤖 AI-Powered Pattern Analysis (architecture)") {
		t.Error("expected AI analysis header")
	}

	// Chunk deltas must be concatenated in stream order
	if !strings.Contains(content.Text, "Move the HTTP call into a core service.") {
		t.Errorf("expected assembled streaming content, got: %s", content.Text)
	}

	if !strings.Contains(content.Text, "*AI Model: grok-test*") {
		t.Error("expected model name footer from streamed chunk")
	}
}

func TestHandleAnalyzePatternsWithAI_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"insufficient quota"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	config := &Config{}
	config.Defaults.Timeout = 10
	config.AI.APIKey = "test-key"
	config.AI.Endpoint = ts.URL
	config.AI.Timeout = 5

	result, err := handleAnalyzePatternsWithAI(context.Background(), analyzeRequest(bareComponent), config)

	// API failures surface as a tool result, not a Go error
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content")
	}

	if !strings.Contains(content.Text, "AI Analysis Request Failed") {
		t.Errorf("expected failure message, got: %s", content.Text)
	}
	if !strings.Contains(content.Text, "status 429") {
		t.Errorf("expected API status in failure message, got: %s", content.Text)
	}
}

func TestHandleAnalyzePatternsWithAI_UnreachableEndpoint(t *testing.T) {
	// Config with unreachable endpoint (Test-Net-1, reserved)
	config := &Config{}
	config.Defaults.Timeout = 10
	config.AI.APIKey = "test-key"
	config.AI.Endpoint = "http://192.0.2.1:12345"
	config.AI.Timeout = 1

	result, err := handleAnalyzePatternsWithAI(context.Background(), analyzeRequest(bareComponent), config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content")
	}

	if !strings.Contains(content.Text, "AI Analysis Request Failed") {
		t.Errorf("expected failure message, got: %s", content.Text)
	}
}

func TestDefaultSamplingHandler_NoAPIKeyFallback(t *testing.T) {
	config := &Config{}
	handler := NewDefaultSamplingHandler(config, "1.3.3.7-testing")

	result, err := handler.CreateMessage(context.Background(), mcp.CreateMessageRequest{
		CreateMessageParams: mcp.CreateMessageParams{
			Messages: []mcp.SamplingMessage{
				{Role: mcp.RoleUser, Content: mcp.TextContent{Text: "review this"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("CreateMessage returned error: %v", err)
	}

	if result.Model != "not-configured" {
		t.Errorf("expected not-configured model, got %s", result.Model)
	}

	text, ok := result.SamplingMessage.Content.(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content")
	}
	if !strings.Contains(text.Text, "PATTERNS_AI_APIKEY") {
		t.Error("expected guidance naming the API key environment variable")
	}
}
