// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package patterns

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// englishTitle is reused for display-label casing; cases.Caser is not safe for
// concurrent use, so callers go through TitleLabel which takes a fresh copy.
var englishTitle = language.English

// KebabCase converts a symbol name to its kebab-cased form as used in Angular
// selectors and file names.
//
// The transform lower-cases every letter and inserts a hyphen before each
// uppercase letter found after the first character. A leading hyphen produced
// by an uppercase first letter is stripped.
//
// Parameters:
//   - name: Symbol name, e.g. "UserList"
//
// Returns:
//   - string: Kebab-cased form, e.g. "user-list"
func KebabCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// PascalCase converts a symbol name to PascalCase by upper-casing the first
// rune. The remainder of the name is left unchanged.
//
// Parameters:
//   - name: Symbol name, e.g. "userList"
//
// Returns:
//   - string: PascalCase form, e.g. "UserList"
func PascalCase(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// TitleLabel converts a catalog key like "component" into a human-readable
// display label like "Component" for template block headings.
func TitleLabel(key string) string {
	return cases.Title(englishTitle).String(key)
}
