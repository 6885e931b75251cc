// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package patterns holds the enterprise [Angular] pattern catalog and the pure
// operations defined over it: substring-based code validation, code-template
// rendering with name substitution, and serialization of the catalog branches
// served as MCP resources.
//
// The catalog is immutable after construction. All operations are pure
// functions over in-memory data and are safe for concurrent use.
//
// [Angular]: https://angular.dev
package patterns
