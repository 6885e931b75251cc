// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/enterpriseng/angular-patterns-mcp/src/internal/helper/gc"
	"github.com/enterpriseng/angular-patterns-mcp/src/internal/patterns"
	"github.com/mark3labs/mcp-go/mcp"
)

// makeRulesResourceHandler returns the handler for the patterns://angular/rules resource.
// It serves the enterprise architecture rules as an indented JSON document.
//
// Parameters:
//   - catalog: The pattern catalog holding the rule set
//
// Returns:
//   - ResourceHandler: Handler producing the rules JSON
//
// The catalog is immutable after startup, so repeated reads always return
// byte-identical content.
func makeRulesResourceHandler(catalog *patterns.Catalog) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := catalog.RulesJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize pattern rules: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "patterns://angular/rules",
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}

// makeTemplatesResourceHandler returns the handler for the patterns://angular/templates resource.
// It concatenates every code template into one plain-text document.
//
// Parameters:
//   - catalog: The pattern catalog holding the parsed templates
//
// Returns:
//   - ResourceHandler: Handler producing the combined template text
//
// Each template is rendered as a "Label:" line followed by its raw text with
// placeholders intact, separated by blank lines, in catalog declaration order.
func makeTemplatesResourceHandler(catalog *patterns.Catalog) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		// Assemble the document in a pooled buffer to avoid per-read allocations
		buf := gc.Default.Get()
		defer func() {
			buf.Reset()
			gc.Default.Put(buf)
		}()

		for i, tmpl := range catalog.Templates {
			if i > 0 {
				buf.WriteString("\n\n")
			}
			buf.WriteString(tmpl.Label)
			buf.WriteString(":\n")
			buf.WriteString(tmpl.Text)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "patterns://angular/templates",
				MIMEType: "text/plain",
				Text:     string(buf.Bytes()),
			},
		}, nil
	}
}

// makeValidationResourceHandler returns the handler for the patterns://angular/validation resource.
// It serves the validation checklist as an indented JSON array.
//
// Parameters:
//   - catalog: The pattern catalog holding the validation-rule descriptions
//
// Returns:
//   - ResourceHandler: Handler producing the checklist JSON
//
// The checklist order matches the order the validation tool reports issues in.
func makeValidationResourceHandler(catalog *patterns.Catalog) ResourceHandler {
	return func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		text, err := catalog.ValidationJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to serialize validation checklist: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "patterns://angular/validation",
				MIMEType: "application/json",
				Text:     text,
			},
		}, nil
	}
}
