// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package patterns

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// CodeType identifies the kind of Angular artifact being validated.
type CodeType string

// Known code types accepted by Validate. Types without registered checks
// (guard, routing) always validate clean.
const (
	TypeComponent CodeType = "component"
	TypeService   CodeType = "service"
	TypeGuard     CodeType = "guard"
	TypeRouting   CodeType = "routing"
)

// ValidationSuccess is the text returned when no check is triggered.
const ValidationSuccess = "✅ Code follows all Angular enterprise patterns!"

// check is a single ordered validation predicate. Triggered reports whether
// the code violates the pattern; Message is the issue added when it does.
type check struct {
	Message   string
	Triggered func(code string) bool
}

// bootstrapUtilities are the class names accepted as "Bootstrap usage" by the
// custom-CSS heuristic.
var bootstrapUtilities = []string{"container-fluid", "btn", "card"}

// checksFor returns the ordered check list for a code type. The order is the
// declaration order of the enterprise validation rules and determines issue
// ordering in the output.
func checksFor(typ CodeType) []check {
	switch typ {
	case TypeComponent:
		return []check{
			{
				Message:   "Component must be standalone",
				Triggered: func(code string) bool { return !strings.Contains(code, "standalone: true") },
			},
			{
				Message:   "Use signals for reactive state",
				Triggered: func(code string) bool { return !strings.Contains(code, "signal(") },
			},
			{
				Message: "Use Bootstrap classes instead of custom CSS",
				Triggered: func(code string) bool {
					if !strings.Contains(code, "class=") {
						return false
					}
					for _, util := range bootstrapUtilities {
						if strings.Contains(code, util) {
							return false
						}
					}
					return true
				},
			},
		}
	case TypeService:
		return []check{
			{
				Message:   "Service must use providedIn: root",
				Triggered: func(code string) bool { return !strings.Contains(code, "providedIn: 'root'") },
			},
			{
				Message:   "Use inject() function for dependency injection",
				Triggered: func(code string) bool { return !strings.Contains(code, "inject(") },
			},
		}
	default:
		return nil
	}
}

// Validate runs the ordered substring checks for the given code type.
//
// This is intentionally shallow pattern matching over the raw source text,
// not static analysis; it mirrors the checks reviewers apply first.
//
// Parameters:
//   - code: Raw source text to inspect
//   - typ: Artifact kind selecting the check list
//
// Returns:
//   - []string: Issue messages in check-declaration order; empty when clean
func Validate(code string, typ CodeType) []string {
	var issues []string
	for _, c := range checksFor(typ) {
		if c.Triggered(code) {
			issues = append(issues, c.Message)
		}
	}
	return issues
}

// FormatIssues renders a validation result as a single text block: the fixed
// success string when issues is empty, otherwise a bulleted list preserving
// issue order.
func FormatIssues(issues []string) string {
	if len(issues) == 0 {
		return ValidationSuccess
	}

	var b strings.Builder
	b.WriteString("⚠️ Pattern issues found:\n")
	for _, issue := range issues {
		b.WriteString("- ")
		b.WriteString(issue)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatIssuesTable renders a validation result as a markdown table, one row
// per issue. An empty issue list renders the success string instead.
func FormatIssuesTable(issues []string) string {
	if len(issues) == 0 {
		return ValidationSuccess
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"🔢 #", "⚠️ Issue"})

	var rows [][]string
	for i, issue := range issues {
		rows = append(rows, []string{strconv.Itoa(i + 1), issue})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}
