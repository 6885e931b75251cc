// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the command-line interface for the Angular enterprise
// pattern tooling. It implements a Cobra-based CLI with one-shot validate and
// generate subcommands that reuse the same pattern catalog and validation code
// paths as the MCP server, supporting list and markdown table output formats,
// an optional catalog override file, and output redirection to a file.
// The package handles file I/O, context cancellation, and integrates with the
// logger package for user-facing output and error reporting.
package cli
