// Package preset maps named option bundles to composition inputs.
package preset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownPreset is returned when a name matches no built-in or user preset.
var ErrUnknownPreset = errors.New("unknown preset")

// Options is a bundle of composition and output options. Empty fields leave
// the caller's value untouched.
type Options struct {
	Role     string   `yaml:"role,omitempty" json:"role,omitempty"`
	Language string   `yaml:"language,omitempty" json:"language,omitempty"`
	Size     string   `yaml:"size,omitempty" json:"size,omitempty"`
	Sections []string `yaml:"sections,omitempty" json:"sections,omitempty"`
	Smart    bool     `yaml:"smart,omitempty" json:"smart,omitempty"`
	Agent    string   `yaml:"agent,omitempty" json:"agent,omitempty"`
	Format   string   `yaml:"format,omitempty" json:"format,omitempty"`
	// Guardrails is nil when the preset does not decide.
	Guardrails *bool `yaml:"guardrails,omitempty" json:"guardrails,omitempty"`
}

// Preset is a named Options bundle.
type Preset struct {
	Name        string  `yaml:"-" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Options     Options `yaml:",inline" json:"options"`
}

var builtins = []Preset{
	{
		Name:        "quick",
		Description: "Minimal guidelines for quick tasks",
		Options:     Options{Size: "minimal"},
	},
	{
		Name:        "review",
		Description: "Code review with quality and type focus",
		Options: Options{
			Role:     "reviewer",
			Size:     "compact",
			Sections: []string{"error-handling", "types", "testing", "style"},
		},
	},
	{
		Name:        "security",
		Description: "Security audit of error handling, types and memory",
		Options: Options{
			Role:     "security",
			Size:     "compact",
			Sections: []string{"error-handling", "types", "memory"},
		},
	},
	{
		Name:        "learn",
		Description: "Full guidelines with a teaching persona",
		Options:     Options{Role: "mentor", Size: "full"},
	},
	{
		Name:        "perf",
		Description: "Performance work on memory, concurrency and async code",
		Options: Options{
			Role:     "performance",
			Sections: []string{"memory", "concurrency", "async"},
		},
	},
	{
		Name:        "daily",
		Description: "Everyday development with project-aware section selection",
		Options:     Options{Size: "compact", Smart: true},
	},
}

// Builtins returns the fixed built-in presets in listing order.
func Builtins() []Preset {
	out := make([]Preset, len(builtins))
	copy(out, builtins)
	return out
}

// IsBuiltin reports whether name belongs to a built-in preset.
func IsBuiltin(name string) bool {
	_, ok := builtin(name)
	return ok
}

func builtin(name string) (Preset, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, p := range builtins {
		if p.Name == n {
			return p, true
		}
	}
	return Preset{}, false
}

// Store is a read-only source of user-defined presets.
type Store interface {
	Lookup(name string) (Preset, bool)
	List() []Preset
}

// Resolver looks up presets, built-ins first.
type Resolver struct {
	user Store
}

// NewResolver creates a Resolver over an optional user store.
func NewResolver(user Store) *Resolver {
	return &Resolver{user: user}
}

// Get returns the preset named name.
func (r *Resolver) Get(name string) (Preset, error) {
	if p, ok := builtin(name); ok {
		return p, nil
	}
	if r.user != nil {
		if p, ok := r.user.Lookup(strings.ToLower(strings.TrimSpace(name))); ok {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
}

// Resolve returns the options of the preset named name.
func (r *Resolver) Resolve(name string) (Options, error) {
	p, err := r.Get(name)
	if err != nil {
		return Options{}, err
	}
	return p.Options, nil
}

// List returns built-in presets followed by user presets sorted by name.
func (r *Resolver) List() []Preset {
	out := Builtins()
	if r.user == nil {
		return out
	}
	user := r.user.List()
	sort.Slice(user, func(i, j int) bool { return user[i].Name < user[j].Name })
	return append(out, user...)
}
