// Package role holds the built-in personas that prefix composed guidelines.
package role

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownRole is returned when a name matches no role or alias.
var ErrUnknownRole = errors.New("unknown role")

// Default is the role used when none is requested.
const Default = "developer"

//go:embed manifest.yaml personas/*.md
var embedded embed.FS

// Role is a named persona.
type Role struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Aliases     []string `yaml:"aliases"`
	File        string   `yaml:"file"`
	// Persona is the markdown prefix placed at the top of a document.
	Persona string `yaml:"-"`
}

type manifest struct {
	Roles []Role `yaml:"roles"`
}

var builtin = mustLoad()

func mustLoad() []Role {
	roles, err := load()
	if err != nil {
		panic(err)
	}
	return roles
}

func load() ([]Role, error) {
	data, err := embedded.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read role manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse role manifest: %w", err)
	}
	for i := range m.Roles {
		content, err := embedded.ReadFile(path.Join("personas", m.Roles[i].File))
		if err != nil {
			return nil, fmt.Errorf("failed to load persona for role %s: %w", m.Roles[i].Name, err)
		}
		m.Roles[i].Persona = strings.TrimSpace(string(content))
	}
	return m.Roles, nil
}

// Get returns the role matching a name or alias, case-insensitively. An
// empty name selects the default role.
func Get(name string) (*Role, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		n = Default
	}
	for i := range builtin {
		r := &builtin[i]
		if r.Name == n {
			return r, nil
		}
		for _, a := range r.Aliases {
			if a == n {
				return r, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// List returns every built-in role in listing order.
func List() []Role {
	out := make([]Role, len(builtin))
	copy(out, builtin)
	return out
}

// Names returns the canonical role names in listing order.
func Names() []string {
	names := make([]string, len(builtin))
	for i, r := range builtin {
		names[i] = r.Name
	}
	return names
}
