// Package copilot describes GitHub Copilot's instruction files.
package copilot

import (
	"strings"

	"github.com/debendraoli/promptctl/internal/agent"
)

const (
	// InstructionsPath is the repository-wide instruction file.
	InstructionsPath = ".github/copilot-instructions.md"

	// InstructionsDir holds path-scoped instruction files.
	InstructionsDir = ".github/instructions"

	beginMarker = "COPILOT INSTRUCTIONS START"
	endMarker   = "COPILOT INSTRUCTIONS END"
)

// Profile implements agent.Profile for GitHub Copilot
type Profile struct{}

// New creates a new Copilot profile
func New() *Profile {
	return &Profile{}
}

func (p *Profile) Name() string        { return "copilot" }
func (p *Profile) DisplayName() string { return "GitHub Copilot" }
func (p *Profile) Aliases() []string   { return []string{"github-copilot", "gh-copilot"} }
func (p *Profile) ProjectPath() string { return InstructionsPath }
func (p *Profile) GlobalPath() string  { return InstructionsPath }

func (p *Profile) Envelope() agent.Envelope {
	return agent.Markers(agent.Generated("GitHub Copilot instructions", "promptctl init copilot"), beginMarker, endMarker)
}

func (p *Profile) Hooks() agent.HookScheme { return p }

// Files renders one path-scoped instruction file per language, applied to
// the language's file patterns.
func (p *Profile) Files(in agent.HookInput) []agent.HookFile {
	var files []agent.HookFile
	for _, lang := range in.Languages {
		body, ok := in.Skillsets[lang]
		if !ok || len(in.Globs[lang]) == 0 {
			continue
		}
		fm := agent.Frontmatter{Fields: []agent.Field{
			{Key: "applyTo", Value: strings.Join(in.Globs[lang], ",")},
		}}
		block := agent.Markers(
			agent.Generated(in.DisplayName(lang)+" skillset", "promptctl init copilot --role "+in.Role+" --force"),
			beginMarker, endMarker)

		files = append(files, agent.HookFile{
			Path:        InstructionsDir + "/" + agent.HookPrefix + lang + ".instructions.md",
			Content:     fm.Wrap(block.Wrap(body)),
			Description: in.DisplayName(lang) + " instructions for " + strings.Join(in.Globs[lang], ", "),
		})
	}
	return files
}

func (p *Profile) Dirs() []string                 { return []string{InstructionsDir} }
func (p *Profile) Settings() []agent.SettingsFile { return nil }

func init() {
	agent.Register("copilot", func() agent.Profile {
		return New()
	})
}
