// Package claude describes Claude Code's instruction file and its
// session hooks.
package claude

import (
	"path"
	"strings"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/template"
)

const (
	// HooksDir holds the hook scripts.
	HooksDir = ".claude/hooks"

	// SettingsPath is the project settings file that registers the hooks.
	SettingsPath = ".claude/settings.json"

	sessionStartScript = agent.HookPrefix + "session-start.sh"
	preWriteScript     = agent.HookPrefix + "pre-write.sh"
)

// Profile implements agent.Profile for Claude Code
type Profile struct{}

// New creates a new Claude Code profile
func New() *Profile {
	return &Profile{}
}

func (p *Profile) Name() string        { return "claude" }
func (p *Profile) DisplayName() string { return "Claude Code" }
func (p *Profile) Aliases() []string   { return []string{"claude-code", "anthropic"} }
func (p *Profile) ProjectPath() string { return "CLAUDE.md" }
func (p *Profile) GlobalPath() string  { return ".claude/CLAUDE.md" }

func (p *Profile) Envelope() agent.Envelope {
	return agent.Tag(agent.Generated("Claude Code instructions", "promptctl init claude"), "instructions")
}

func (p *Profile) Hooks() agent.HookScheme { return p }

// Files renders the session-start and pre-write scripts.
func (p *Profile) Files(in agent.HookInput) []agent.HookFile {
	role := in.Role
	if role == "" {
		role = "developer"
	}
	vars := map[string]string{
		"role":      role,
		"languages": strings.Join(in.Languages, " "),
		"cases":     extensionCases(in),
	}
	return []agent.HookFile{
		{
			Path:        path.Join(HooksDir, sessionStartScript),
			Content:     template.Render(sessionStartTemplate, vars),
			Executable:  true,
			Description: "Injects promptctl guidelines on session start",
		},
		{
			Path:        path.Join(HooksDir, preWriteScript),
			Content:     template.Render(preWriteTemplate, vars),
			Executable:  true,
			Description: "Reminds Claude of language guidelines before file writes",
		},
	}
}

func (p *Profile) Dirs() []string { return []string{HooksDir} }

func (p *Profile) Settings() []agent.SettingsFile {
	return []agent.SettingsFile{{
		Path:        SettingsPath,
		Description: "Claude Code hook configuration",
		Merge:       MergeSettings,
		Remove:      RemoveSettings,
	}}
}

// extensionCases renders shell case arms mapping file extensions to
// language keys.
func extensionCases(in agent.HookInput) string {
	var lines []string
	for _, lang := range in.Languages {
		var exts []string
		for _, g := range in.Globs[lang] {
			if i := strings.LastIndex(g, "*."); i >= 0 {
				exts = append(exts, g[i+2:])
			}
		}
		if len(exts) == 0 {
			continue
		}
		lines = append(lines, "  "+strings.Join(exts, "|")+`) lang="`+lang+`" ;;`)
	}
	return strings.Join(lines, "\n")
}

func init() {
	agent.Register("claude", func() agent.Profile {
		return New()
	})
}
