// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// angular-patterns is a command-line tool for validating Angular source
// against the enterprise pattern catalog and generating compliant artifacts.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/enterpriseng/angular-patterns-mcp/cmd/angular-patterns@latest
//
// # Usage
//
//	angular-patterns validate -f INPUT_FILE [FLAGS]
//	angular-patterns generate -t TYPE -n NAME [FLAGS]
//
// # Flags
//
//	validate:
//	  -f, --file    Input source file to validate [required]
//	  -t, --type    Artifact type: component, service, guard, or routing (default: component)
//	      --table   Render issues as a markdown table
//
//	generate:
//	  -t, --type    Artifact type: component, service, or guard [required]
//	  -n, --name    Artifact name, e.g. 'UserList' [required]
//	      --catalog Rules override file merged over the built-in catalog
//
//	global:
//	  -o, --output  Destination file (default: stdout)
//
// # Examples
//
// Validate a component against the pattern catalog:
//
//	angular-patterns validate -f user-list.component.ts -t component
//
// Render the issue report as a markdown table:
//
//	angular-patterns validate -f user.service.ts -t service --table
//
// Generate a compliant component skeleton:
//
//	angular-patterns generate -t component -n UserList -o user-list.component.ts
//
// Apply an enterprise rules override:
//
//	angular-patterns generate -t service -n Billing --catalog team-rules.yaml
package main
