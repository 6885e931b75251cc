// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package mcpserver provides the [MCP] server framework for [Angular] enterprise patterns.
// It implements the Model Context Protocol ([MCP]) server with resources for the pattern
// catalog, tools for code validation and template generation, and optional AI-powered
// pattern analysis. The package uses a builder pattern for server construction and
// supports bidirectional AI communication.
//
// [Angular]: https://angular.dev
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
package mcpserver
