// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package patterns

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"

	"github.com/adrg/frontmatter"
)

// templateFiles lists the embedded template assets in declaration order. The
// order here is the block order of the patterns://angular/templates resource.
var templateFiles = []string{
	"component.tmpl.md",
	"service.tmpl.md",
	"guard.tmpl.md",
}

// Template is a code template for one artifact type. Text carries the
// {name} and {Name} placeholder tokens substituted by Render.
type Template struct {
	Type        string `yaml:"type"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Text        string `yaml:"-"`
}

// LoadTemplates parses the embedded template assets from fsys.
//
// Each asset is a markdown file with a YAML frontmatter block declaring the
// template type and display label, followed by the raw template text. A
// missing label falls back to the title-cased type.
//
// Parameters:
//   - fsys: Filesystem containing the template assets
//
// Returns:
//   - []Template: Templates in declaration order
//   - error: Error if an asset is missing or its frontmatter is malformed
func LoadTemplates(fsys fs.FS) ([]Template, error) {
	templates := make([]Template, 0, len(templateFiles))
	for _, name := range templateFiles {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("patterns: reading template %s: %w", name, err)
		}

		var tmpl Template
		body, err := frontmatter.Parse(bytes.NewReader(data), &tmpl)
		if err != nil {
			return nil, fmt.Errorf("patterns: parsing template %s: %w", name, err)
		}
		if tmpl.Type == "" {
			return nil, fmt.Errorf("patterns: template %s missing type", name)
		}
		if tmpl.Label == "" {
			tmpl.Label = TitleLabel(tmpl.Type)
		}

		tmpl.Text = strings.TrimSpace(string(body))
		templates = append(templates, tmpl)
	}
	return templates, nil
}

// Render substitutes the template placeholders for the supplied name: every
// {name} token becomes the kebab-cased form and every {Name} token the
// PascalCase form. Text without placeholders passes through unchanged.
//
// Parameters:
//   - name: Artifact name supplied by the caller, e.g. "UserList"
//
// Returns:
//   - string: Template text with all placeholders substituted
func (t Template) Render(name string) string {
	out := strings.ReplaceAll(t.Text, "{name}", KebabCase(name))
	return strings.ReplaceAll(out, "{Name}", PascalCase(name))
}
