// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// ng-patterns is the short-name alias of the angular-patterns command-line
// tool. Both binaries share the same subcommands and flags; see
// cmd/angular-patterns for the full usage documentation.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/enterpriseng/angular-patterns-mcp/cmd/ng-patterns@latest
//
// # Examples
//
//	ng-patterns validate -f user-list.component.ts -t component
//	ng-patterns generate -t component -n UserList
package main
