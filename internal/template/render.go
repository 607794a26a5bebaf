// Package template substitutes {{variable}} placeholders in override text
// and generated hook scripts.
package template

import (
	"regexp"
	"sort"
)

// variablePattern matches {{name}} placeholders, tolerating inner spaces.
var variablePattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Render substitutes {{variable}} placeholders in text with values from vars.
// Unknown variables are left as-is.
func Render(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}

	return variablePattern.ReplaceAllStringFunc(text, func(match string) string {
		sub := variablePattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		if value, ok := vars[sub[1]]; ok {
			return value
		}
		return match
	})
}

// Unresolved returns the sorted, de-duplicated names of placeholders in text
// that vars does not define.
func Unresolved(text string, vars map[string]string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range variablePattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, ok := vars[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns the variables every composition defines.
func Builtins(language, role, size string) map[string]string {
	return map[string]string{
		"language": language,
		"role":     role,
		"size":     size,
	}
}

// Merge combines built-in variables with user-defined ones. User values
// take precedence on name collision.
func Merge(builtins, user map[string]string) map[string]string {
	if len(builtins) == 0 && len(user) == 0 {
		return nil
	}

	result := make(map[string]string, len(builtins)+len(user))
	for k, v := range builtins {
		result[k] = v
	}
	for k, v := range user {
		result[k] = v
	}
	return result
}
