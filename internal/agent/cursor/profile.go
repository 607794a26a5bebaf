// Package cursor describes Cursor's MDC rule files.
package cursor

import (
	"strings"

	"github.com/debendraoli/promptctl/internal/agent"
)

const (
	// RulesDir holds Cursor rule files.
	RulesDir = ".cursor/rules"

	rulePath = RulesDir + "/promptctl.mdc"
)

// Profile implements agent.Profile for Cursor
type Profile struct{}

// New creates a new Cursor profile
func New() *Profile {
	return &Profile{}
}

func (p *Profile) Name() string        { return "cursor" }
func (p *Profile) DisplayName() string { return "Cursor" }
func (p *Profile) Aliases() []string   { return []string{"cursor-ide"} }
func (p *Profile) ProjectPath() string { return rulePath }
func (p *Profile) GlobalPath() string  { return rulePath }

// Envelope returns an always-applied rule.
func (p *Profile) Envelope() agent.Envelope {
	return agent.Frontmatter{Fields: []agent.Field{
		{Key: "description", Value: "Coding guidelines generated by promptctl"},
		{Key: "globs", Value: ""},
		{Key: "alwaysApply", Value: true},
	}}
}

func (p *Profile) Hooks() agent.HookScheme { return p }

// Files renders one glob-scoped rule per language.
func (p *Profile) Files(in agent.HookInput) []agent.HookFile {
	var files []agent.HookFile
	for _, lang := range in.Languages {
		body, ok := in.Skillsets[lang]
		if !ok || len(in.Globs[lang]) == 0 {
			continue
		}
		globs := strings.Join(in.Globs[lang], ",")
		fm := agent.Frontmatter{Fields: []agent.Field{
			{Key: "description", Value: in.DisplayName(lang) + " coding guidelines from promptctl, applied to " + globs},
			{Key: "globs", Value: globs},
			{Key: "alwaysApply", Value: false},
		}}
		header := strings.Join(agent.Generated(in.DisplayName(lang)+" skillset", "promptctl init cursor --role "+in.Role+" --force"), "\n")

		files = append(files, agent.HookFile{
			Path:        RulesDir + "/" + agent.HookPrefix + lang + ".mdc",
			Content:     fm.Wrap(header + "\n\n" + body),
			Description: in.DisplayName(lang) + " rule for " + globs,
		})
	}
	return files
}

func (p *Profile) Dirs() []string                 { return []string{RulesDir} }
func (p *Profile) Settings() []agent.SettingsFile { return nil }

func init() {
	agent.Register("cursor", func() agent.Profile {
		return New()
	})
}
