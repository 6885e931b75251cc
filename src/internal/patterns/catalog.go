// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package patterns

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Rules is the "rules" branch of the pattern catalog: the enterprise
// conventions served as the patterns://angular/rules resource.
//
// Field order is the declaration order of the original rule documents and is
// preserved in the serialized JSON.
type Rules struct {
	MandatoryStructure StructureRules  `json:"mandatoryStructure" yaml:"mandatoryStructure"`
	DependencyRules    DependencyRules `json:"dependencyRules" yaml:"dependencyRules"`
	RequiredPatterns   RequiredPattern `json:"requiredPatterns" yaml:"requiredPatterns"`
	NamingConventions  NamingRules     `json:"namingConventions" yaml:"namingConventions"`
	Styling            StylingRules    `json:"styling" yaml:"styling"`
}

// StructureRules describes the mandatory top-level folder layout.
type StructureRules struct {
	Root        string            `json:"root" yaml:"root"`
	Folders     map[string]string `json:"folders" yaml:"folders"`
	FeatureSub  []string          `json:"featureSubfolders" yaml:"featureSubfolders"`
	Description string            `json:"description" yaml:"description"`
}

// DependencyRules describes which layers may import which.
type DependencyRules struct {
	Allowed     []DependencyEdge `json:"allowed" yaml:"allowed"`
	Forbidden   []DependencyEdge `json:"forbidden" yaml:"forbidden"`
	Description string           `json:"description" yaml:"description"`
}

// DependencyEdge is a single allowed or forbidden import edge between layers.
type DependencyEdge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// RequiredPattern lists the coding patterns every feature must follow.
type RequiredPattern struct {
	Components []string `json:"components" yaml:"components"`
	Services   []string `json:"services" yaml:"services"`
	Routing    []string `json:"routing" yaml:"routing"`
	State      []string `json:"state" yaml:"state"`
}

// NamingRules maps artifact kinds to their file-name suffix conventions.
type NamingRules struct {
	Files     map[string]string `json:"files" yaml:"files"`
	Selectors string            `json:"selectors" yaml:"selectors"`
	Classes   string            `json:"classes" yaml:"classes"`
}

// StylingRules captures the Bootstrap-first styling policy.
type StylingRules struct {
	Framework   string   `json:"framework" yaml:"framework"`
	Utilities   []string `json:"preferUtilities" yaml:"preferUtilities"`
	CustomScss  string   `json:"customScss" yaml:"customScss"`
	Description string   `json:"description" yaml:"description"`
}

// Catalog is the process-wide immutable pattern catalog. Construct it once at
// startup with [NewCatalog] and treat it as read-only afterwards.
type Catalog struct {
	Rules           Rules
	ValidationRules []string
	Templates       []Template
}

// defaultRules returns the canonical enterprise rule set.
func defaultRules() Rules {
	return Rules{
		MandatoryStructure: StructureRules{
			Root: "src/app",
			Folders: map[string]string{
				"core":     "Singleton services, interceptors, guards, app-wide configuration",
				"features": "One folder per business domain, lazy-loaded via routes",
				"shared":   "Reusable standalone components, pipes, directives with zero business logic",
				"layouts":  "Shell components composing header, footer, and router outlets",
			},
			FeatureSub:  []string{"components", "services", "models", "pages", "routes"},
			Description: "Every application uses the same four top-level folders under src/app; features own their routes and are lazy loaded",
		},
		DependencyRules: DependencyRules{
			Allowed: []DependencyEdge{
				{From: "features", To: "shared"},
				{From: "features", To: "core"},
				{From: "layouts", To: "shared"},
				{From: "layouts", To: "core"},
				{From: "shared", To: "core"},
			},
			Forbidden: []DependencyEdge{
				{From: "features", To: "features"},
				{From: "shared", To: "features"},
				{From: "core", To: "features"},
				{From: "core", To: "shared"},
			},
			Description: "Dependencies only point inward: features and layouts may use shared and core; feature-to-feature imports go through core abstractions",
		},
		RequiredPatterns: RequiredPattern{
			Components: []string{
				"standalone: true on every component",
				"changeDetection: ChangeDetectionStrategy.OnPush",
				"signal() and computed() for local reactive state",
				"input()/output() functions instead of decorators",
			},
			Services: []string{
				"providedIn: 'root' for singletons",
				"inject() function instead of constructor injection",
				"Expose state as readonly signals, mutate through methods",
			},
			Routing: []string{
				"loadChildren with dynamic import for every feature",
				"Functional guards (CanActivateFn) instead of class guards",
				"Route-level providers for feature-scoped services",
			},
			State: []string{
				"Signals for component and feature state",
				"No state libraries unless a feature outgrows signals",
			},
		},
		NamingConventions: NamingRules{
			Files: map[string]string{
				"component": "*.component.ts",
				"service":   "*.service.ts",
				"guard":     "*.guard.ts",
				"routes":    "*.routes.ts",
				"model":     "*.model.ts",
			},
			Selectors: "app-<kebab-case-name>",
			Classes:   "PascalCase with artifact suffix, e.g. UserListComponent",
		},
		Styling: StylingRules{
			Framework: "Bootstrap 5",
			Utilities: []string{"container-fluid", "row", "col", "btn", "card", "table"},
			CustomScss: "Only in styles/ for theme variables; component-level " +
				"custom CSS is a review flag",
			Description: "Bootstrap utilities and components first; custom SCSS is the exception, not the rule",
		},
	}
}

// defaultValidationRules returns the fixed list of validation-rule
// descriptions served as the patterns://angular/validation resource. The
// order matches the declaration order of the checks in validate.go.
func defaultValidationRules() []string {
	return []string{
		"Components must be standalone (standalone: true)",
		"Use signals for reactive state management",
		"Use Bootstrap classes instead of custom CSS",
		"Services must use providedIn: 'root'",
		"Use inject() function for dependency injection",
		"Features must be lazy loaded through loadChildren",
		"Guards are functional (CanActivateFn), not class based",
	}
}

// NewCatalog builds the immutable pattern catalog.
//
// Code templates are parsed from templateFS, which holds the embedded
// template markdown assets. The catalog fails fast when a template asset is
// missing or malformed so a broken build never serves partial data.
//
// Parameters:
//   - templateFS: Filesystem containing the embedded template assets
//
// Returns:
//   - *Catalog: The constructed catalog
//   - error: Error if a template asset cannot be loaded
func NewCatalog(templateFS fs.FS) (*Catalog, error) {
	templates, err := LoadTemplates(templateFS)
	if err != nil {
		return nil, fmt.Errorf("patterns: building catalog: %w", err)
	}

	return &Catalog{
		Rules:           defaultRules(),
		ValidationRules: defaultValidationRules(),
		Templates:       templates,
	}, nil
}

// RulesJSON serializes the rules branch as indented JSON.
//
// Returns:
//   - string: Indented JSON document
//   - error: Error if marshaling fails
func (c *Catalog) RulesJSON() (string, error) {
	data, err := json.MarshalIndent(c.Rules, "", "  ")
	if err != nil {
		return "", fmt.Errorf("patterns: marshaling rules: %w", err)
	}
	return string(data), nil
}

// ValidationJSON serializes the validation-rule descriptions as indented JSON.
//
// Returns:
//   - string: Indented JSON array of rule descriptions
//   - error: Error if marshaling fails
func (c *Catalog) ValidationJSON() (string, error) {
	data, err := json.MarshalIndent(c.ValidationRules, "", "  ")
	if err != nil {
		return "", fmt.Errorf("patterns: marshaling validation rules: %w", err)
	}
	return string(data), nil
}

// TemplateFor returns the code template registered for the given type.
//
// Parameters:
//   - typ: Template type, e.g. "component"
//
// Returns:
//   - Template: The matching template
//   - bool: False when no template is registered for typ
func (c *Catalog) TemplateFor(typ string) (Template, bool) {
	for _, t := range c.Templates {
		if t.Type == typ {
			return t, true
		}
	}
	return Template{}, false
}
