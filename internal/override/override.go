// Package override blends project-level customizations into built-in
// skillset content.
package override

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/debendraoli/promptctl/internal/skillset"
)

// ErrConfiguration is returned when an override cannot be applied as written.
var ErrConfiguration = errors.New("invalid override configuration")

// Mode controls how override text combines with built-in content.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModePrepend Mode = "prepend"
	ModeAppend  Mode = "append"
	ModeMerge   Mode = "merge"
)

// Modes lists every supported mode.
var Modes = []Mode{ModeReplace, ModePrepend, ModeAppend, ModeMerge}

// ParseMode resolves a mode name, case-insensitively. An empty name is merge.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModeMerge, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q (expected replace, prepend, append or merge)", ErrConfiguration, s)
}

// Override is a project customization for one language.
//
// Replace uses only Content. Prepend uses only Prepend and append uses only
// Append. Merge uses both Prepend and Append.
type Override struct {
	Language string
	Mode     Mode
	Content  string
	Prepend  string
	Append   string
}

// Validate checks the mode and the fields the mode relies on.
func (o *Override) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return fmt.Errorf("override for %s: %w", o.Language, err)
	}
	if o.mode() == ModeReplace && strings.TrimSpace(o.Content) == "" {
		return fmt.Errorf("%w: override for %s uses replace mode without content", ErrConfiguration, o.Language)
	}
	return nil
}

func (o *Override) mode() Mode {
	m, _ := ParseMode(string(o.Mode))
	return m
}

// Resolved is the result of applying an override to a base skillset.
type Resolved struct {
	// Skillset is nil when Replaced is set.
	Skillset *skillset.Skillset
	// Replaced means Content stands in for the whole section mechanism.
	Replaced bool
	Content  string
	// Prepend and Append are placed once around the section block.
	Prepend string
	Append  string
}

// Resolve applies ov to base. A nil override passes base through; a nil base
// accepts only a replace override, which defines a new custom language.
func Resolve(base *skillset.Skillset, ov *Override) (*Resolved, error) {
	if ov == nil {
		if base == nil {
			return nil, fmt.Errorf("%w: no skillset and no override", ErrConfiguration)
		}
		return &Resolved{Skillset: base}, nil
	}
	if err := ov.Validate(); err != nil {
		return nil, err
	}

	mode := ov.mode()
	if mode == ModeReplace {
		return &Resolved{Replaced: true, Content: strings.TrimSpace(ov.Content)}, nil
	}
	if base == nil {
		return nil, fmt.Errorf("%w: %s mode for %q requires a built-in skillset; use replace with content",
			ErrConfiguration, mode, ov.Language)
	}

	r := &Resolved{Skillset: base}
	switch mode {
	case ModePrepend:
		r.Prepend = strings.TrimSpace(ov.Prepend)
	case ModeAppend:
		r.Append = strings.TrimSpace(ov.Append)
	case ModeMerge:
		r.Prepend = strings.TrimSpace(ov.Prepend)
		r.Append = strings.TrimSpace(ov.Append)
	}
	return r, nil
}

// Set holds at most one override per language key.
type Set map[string]*Override

// For returns the override for a language key, case-insensitively.
func (s Set) For(language string) *Override {
	if s == nil {
		return nil
	}
	return s[strings.ToLower(language)]
}

// Add stores ov under its lower-case language key, replacing any previous one.
func (s Set) Add(ov *Override) {
	s[strings.ToLower(ov.Language)] = ov
}

// Canonical returns a copy of s keyed by canonical language key. resolve
// maps a key or alias to its canonical key; names it does not know keep
// their own key. Two overrides that land on the same language are an error.
func (s Set) Canonical(resolve func(string) (string, bool)) (Set, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Set, len(s))
	from := make(map[string]string, len(s))
	for _, k := range keys {
		canonical, _ := resolve(k)
		canonical = strings.ToLower(canonical)
		if prev, ok := from[canonical]; ok {
			return nil, fmt.Errorf("%w: overrides %q and %q both apply to %s",
				ErrConfiguration, prev, k, canonical)
		}
		from[canonical] = k
		out[canonical] = s[k]
	}
	return out, nil
}
