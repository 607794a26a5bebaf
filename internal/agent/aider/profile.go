// Package aider describes the conventions file read by Aider.
package aider

import "github.com/debendraoli/promptctl/internal/agent"

// Profile implements agent.Profile for Aider
type Profile struct{}

// New creates a new Aider profile
func New() *Profile {
	return &Profile{}
}

func (p *Profile) Name() string        { return "aider" }
func (p *Profile) DisplayName() string { return "Aider" }
func (p *Profile) Aliases() []string   { return nil }
func (p *Profile) ProjectPath() string { return "CONVENTIONS.md" }

// GlobalPath is empty: Aider only reads conventions passed per project.
func (p *Profile) GlobalPath() string      { return "" }
func (p *Profile) Hooks() agent.HookScheme { return nil }

func (p *Profile) Envelope() agent.Envelope {
	return agent.Markers(agent.Generated("Aider conventions", "promptctl init aider"),
		"promptctl:generated:start", "promptctl:generated:end")
}

func init() {
	agent.Register("aider", func() agent.Profile {
		return New()
	})
}
