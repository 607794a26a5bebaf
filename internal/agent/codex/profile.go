// Package codex describes the AGENTS.md file read by OpenAI Codex.
package codex

import "github.com/debendraoli/promptctl/internal/agent"

// Profile implements agent.Profile for OpenAI Codex
type Profile struct{}

// New creates a new Codex profile
func New() *Profile {
	return &Profile{}
}

func (p *Profile) Name() string            { return "codex" }
func (p *Profile) DisplayName() string     { return "OpenAI Codex" }
func (p *Profile) Aliases() []string       { return []string{"openai-codex", "openai"} }
func (p *Profile) ProjectPath() string     { return "AGENTS.md" }
func (p *Profile) GlobalPath() string      { return ".codex/AGENTS.md" }
func (p *Profile) Hooks() agent.HookScheme { return nil }

func (p *Profile) Envelope() agent.Envelope {
	return agent.Markers(agent.Generated("OpenAI Codex agent instructions", "promptctl init codex"),
		"promptctl:generated:start", "promptctl:generated:end")
}

func init() {
	agent.Register("codex", func() agent.Profile {
		return New()
	})
}
