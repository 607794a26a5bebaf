// Package scanner inspects a project directory and reports the facts used to
// pick guideline sections: languages, frameworks, layout and size.
package scanner

import "slices"

// SizeClass is a coarse classification of project size by source file count.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
)

// Source file count thresholds for SizeClass.
const (
	smallProjectFiles  = 20
	mediumProjectFiles = 500
)

// ClassifySize maps a source file count to a SizeClass.
func ClassifySize(files int) SizeClass {
	switch {
	case files <= smallProjectFiles:
		return SizeSmall
	case files <= mediumProjectFiles:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// LanguageInfo contains information about a detected programming language.
type LanguageInfo struct {
	Name       string   `json:"name"`
	Key        string   `json:"key"`
	FileCount  int      `json:"file_count"`
	Percentage float64  `json:"percentage"`
	Extensions []string `json:"extensions"`
}

// ProjectStructure contains information about the project's directory layout.
type ProjectStructure struct {
	SourceDirs  []string `json:"source_dirs"`
	TestDirs    []string `json:"test_dirs"`
	DocDirs     []string `json:"doc_dirs,omitempty"`
	ConfigFiles []string `json:"config_files"`
	EntryPoints []string `json:"entry_points"`
	HasDocker   bool     `json:"has_docker"`
	HasCI       bool     `json:"has_ci"`
	CISystem    string   `json:"ci_system,omitempty"`
}

// ProjectInfo contains all detected information about a project.
type ProjectInfo struct {
	Name          string           `json:"name"`
	Languages     []LanguageInfo   `json:"languages"`
	SourceFiles   int              `json:"source_files"`
	BuildSystem   string           `json:"build_system"`
	BuildCommands []string         `json:"build_commands"`
	TestCommands  []string         `json:"test_commands"`
	LintCommands  []string         `json:"lint_commands"`
	Structure     ProjectStructure `json:"structure"`
	Dependencies  []string         `json:"dependencies"`
	// Frameworks holds lower-case framework tags, sorted.
	Frameworks []string `json:"frameworks,omitempty"`
}

// PrimaryLanguage returns the most prevalent language name, or empty string if none.
func (p *ProjectInfo) PrimaryLanguage() string {
	if len(p.Languages) == 0 {
		return ""
	}
	return p.Languages[0].Name
}

// LanguageKeys returns the lower-case keys of detected languages, most
// prevalent first.
func (p *ProjectInfo) LanguageKeys() []string {
	keys := make([]string, 0, len(p.Languages))
	for _, l := range p.Languages {
		keys = append(keys, l.Key)
	}
	return keys
}

// Result reduces the project info to the facts consumed by composition.
func (p *ProjectInfo) Result() *ScanResult {
	r := &ScanResult{
		Languages:  p.LanguageKeys(),
		Frameworks: slices.Clone(p.Frameworks),
		HasTests:   len(p.Structure.TestDirs) > 0,
		HasDocs:    len(p.Structure.DocDirs) > 0,
		HasCI:      p.Structure.HasCI,
		Size:       ClassifySize(p.SourceFiles),
	}
	if len(r.Languages) > 0 {
		r.PrimaryLanguage = r.Languages[0]
	}
	return r
}

// ScanResult is the fully materialized set of project facts handed to the
// composition engine.
type ScanResult struct {
	PrimaryLanguage string    `json:"primary_language"`
	Languages       []string  `json:"languages"`
	Frameworks      []string  `json:"frameworks"`
	HasTests        bool      `json:"has_tests"`
	HasDocs         bool      `json:"has_docs"`
	HasCI           bool      `json:"has_ci"`
	Size            SizeClass `json:"size"`
}

// HasFramework reports whether the framework tag was detected.
func (r *ScanResult) HasFramework(tag string) bool {
	return slices.Contains(r.Frameworks, tag)
}
