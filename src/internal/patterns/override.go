// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package patterns

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchema []byte

// LoadOverride reads a rules-override document from path and validates it
// against the embedded catalog schema before decoding.
//
// The file format follows the extension: .yaml/.yml documents are converted
// to JSON for schema validation, anything else is treated as JSON. Validation
// failures list every violated constraint so a misconfigured override is
// diagnosable in one pass.
//
// Parameters:
//   - path: Path to the override document (JSON or YAML)
//
// Returns:
//   - *Rules: Decoded override; zero-valued sections were absent from the file
//   - error: Error if the file is unreadable, invalid, or fails validation
func LoadOverride(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patterns: reading override file: %w", err)
	}

	jsonData := data
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("patterns: parsing YAML override: %w", err)
		}
		if jsonData, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("patterns: converting override to JSON: %w", err)
		}
	}

	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	docLoader := gojsonschema.NewBytesLoader(jsonData)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("patterns: validating override: %w", err)
	}
	if !result.Valid() {
		var b strings.Builder
		b.WriteString("patterns: override failed schema validation:")
		for _, desc := range result.Errors() {
			b.WriteString("\n  - ")
			b.WriteString(desc.String())
		}
		return nil, fmt.Errorf("%s", b.String())
	}

	var rules Rules
	if err := json.Unmarshal(jsonData, &rules); err != nil {
		return nil, fmt.Errorf("patterns: decoding override: %w", err)
	}
	return &rules, nil
}

// ApplyOverride merges a validated override into the catalog rules. Only
// sections present in the override replace the canonical values; untouched
// sections keep their defaults.
//
// ApplyOverride must run before the catalog is handed to the server; the
// catalog is read-only once serving starts.
func (c *Catalog) ApplyOverride(o *Rules) {
	if o == nil {
		return
	}
	if o.MandatoryStructure.Root != "" || len(o.MandatoryStructure.Folders) > 0 {
		c.Rules.MandatoryStructure = o.MandatoryStructure
	}
	if len(o.DependencyRules.Allowed) > 0 || len(o.DependencyRules.Forbidden) > 0 {
		c.Rules.DependencyRules = o.DependencyRules
	}
	if len(o.RequiredPatterns.Components) > 0 || len(o.RequiredPatterns.Services) > 0 ||
		len(o.RequiredPatterns.Routing) > 0 || len(o.RequiredPatterns.State) > 0 {
		c.Rules.RequiredPatterns = o.RequiredPatterns
	}
	if len(o.NamingConventions.Files) > 0 || o.NamingConventions.Selectors != "" {
		c.Rules.NamingConventions = o.NamingConventions
	}
	if o.Styling.Framework != "" || len(o.Styling.Utilities) > 0 {
		c.Rules.Styling = o.Styling
	}
}
