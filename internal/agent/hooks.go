package agent

import "strings"

// HookPrefix starts the file name of every generated hook file.
const HookPrefix = "promptctl-"

// HookInput carries everything a scheme needs to render hook files.
type HookInput struct {
	Role string
	// Languages are canonical language keys in output order.
	Languages []string
	// Skillsets maps a language key to its skillset body.
	Skillsets map[string]string
	// Globs maps a language key to its file patterns.
	Globs map[string][]string
	// Names maps a language key to its display name.
	Names map[string]string
}

// HookFile is one generated file, relative to the project root.
type HookFile struct {
	Path        string
	Content     string
	Executable  bool
	Description string
}

// SettingsFile is an agent settings file edited in place rather than
// overwritten.
type SettingsFile struct {
	Path        string
	Description string
	// Merge adds promptctl entries to existing content, which may be empty.
	Merge func(existing []byte) ([]byte, error)
	// Remove strips promptctl entries from existing content.
	Remove func(existing []byte) ([]byte, error)
}

// HookScheme generates an agent's hook files.
type HookScheme interface {
	// Files renders the hook files for in
	Files(in HookInput) []HookFile

	// Dirs returns the project-relative directories holding hook files
	Dirs() []string

	// Settings returns the settings files the scheme edits in place
	Settings() []SettingsFile
}

// IsHookFile reports whether a file name belongs to a generated hook.
func IsHookFile(name string) bool {
	return strings.HasPrefix(name, HookPrefix)
}

// DisplayName returns the display name of a language, falling back to the key.
func (in HookInput) DisplayName(lang string) string {
	if n, ok := in.Names[lang]; ok && n != "" {
		return n
	}
	return lang
}
