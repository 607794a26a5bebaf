package skillset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSection is returned when a section name is not part of the
// vocabulary. Vocabulary names a skillset does not define are not errors.
var ErrUnknownSection = errors.New("unknown section")

// Section names. Every section of every skillset uses one of these.
const (
	SectionVersion       = "version"
	SectionStyle         = "style"
	SectionErrorHandling = "error-handling"
	SectionTypes         = "types"
	SectionMemory        = "memory"
	SectionConcurrency   = "concurrency"
	SectionAsync         = "async"
	SectionTesting       = "testing"
	SectionStructure     = "structure"
	SectionDependencies  = "dependencies"
	SectionDocumentation = "documentation"
	SectionPatterns      = "patterns"
	SectionTooling       = "tooling"
	SectionSecurity      = "security"
)

// Vocabulary is the fixed list of section names with a short description.
var Vocabulary = []struct {
	Name        string
	Aliases     []string
	Description string
}{
	{SectionVersion, nil, "Language and toolchain version targets"},
	{SectionStyle, nil, "Code style and idioms"},
	{SectionErrorHandling, []string{"errors", "error"}, "Error handling patterns"},
	{SectionTypes, []string{"type"}, "Type system usage"},
	{SectionMemory, []string{"performance", "perf"}, "Memory and performance"},
	{SectionConcurrency, []string{"concurrent", "sync"}, "Concurrency primitives"},
	{SectionAsync, []string{"asynchronous"}, "Asynchronous programming"},
	{SectionTesting, []string{"tests", "test"}, "Testing practices"},
	{SectionStructure, []string{"project"}, "Project layout"},
	{SectionDependencies, []string{"deps"}, "Dependencies and architecture"},
	{SectionDocumentation, []string{"docs", "doc"}, "Documentation conventions"},
	{SectionPatterns, []string{"pattern", "examples"}, "Common patterns and examples"},
	{SectionTooling, []string{"tools", "lint", "format"}, "Formatting, linting and tools"},
	{SectionSecurity, []string{"sec", "audit"}, "Security practices"},
}

var sectionIndex = func() map[string]string {
	m := make(map[string]string)
	for _, v := range Vocabulary {
		m[v.Name] = v.Name
		for _, a := range v.Aliases {
			m[a] = v.Name
		}
	}
	return m
}()

// CanonicalSection resolves a section name or alias to its vocabulary name.
func CanonicalSection(name string) (string, error) {
	canonical, ok := sectionIndex[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, name)
	}
	return canonical, nil
}
