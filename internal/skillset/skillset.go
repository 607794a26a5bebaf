// Package skillset holds the built-in, section-structured guideline content
// for each supported language.
package skillset

import (
	"fmt"
	"strings"
)

// Section is a named slice of guideline content available at one or more
// size tiers.
type Section struct {
	Name      string
	Title     string
	Bodies    map[Tier]string
	Relevance Relevance
}

// Body returns the section body at tier t. A missing body means the section
// is absent at that tier.
func (s *Section) Body(t Tier) (string, bool) {
	body, ok := s.Bodies[t]
	if !ok || strings.TrimSpace(body) == "" {
		return "", false
	}
	return body, true
}

// Skillset is the complete guideline content for one language.
type Skillset struct {
	Key     string
	Name    string
	Version string
	Aliases []string
	// Globs scope per-language hook files, e.g. "**/*.rs".
	Globs []string
	// Sections are kept in canonical output order.
	Sections   []Section
	Guardrails string
	// MinimumViable names the section used when selection comes up empty.
	MinimumViable string
}

// Section looks up a section by canonical name.
func (s *Skillset) Section(name string) (*Section, bool) {
	for i := range s.Sections {
		if s.Sections[i].Name == name {
			return &s.Sections[i], true
		}
	}
	return nil, false
}

// SectionNames returns section names in canonical order.
func (s *Skillset) SectionNames() []string {
	names := make([]string, len(s.Sections))
	for i, sec := range s.Sections {
		names[i] = sec.Name
	}
	return names
}

// Validate checks the invariants every registered skillset must hold.
func (s *Skillset) Validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("skillset key is required")
	}
	if len(s.Sections) == 0 {
		return fmt.Errorf("skillset %s: no sections defined", s.Key)
	}

	seen := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		canonical, err := CanonicalSection(sec.Name)
		if err != nil {
			return fmt.Errorf("skillset %s: %w", s.Key, err)
		}
		if canonical != sec.Name {
			return fmt.Errorf("skillset %s: section %q must use its canonical name %q", s.Key, sec.Name, canonical)
		}
		if seen[sec.Name] {
			return fmt.Errorf("skillset %s: duplicate section %q", s.Key, sec.Name)
		}
		seen[sec.Name] = true
	}

	for _, t := range Tiers {
		present := false
		for i := range s.Sections {
			if _, ok := s.Sections[i].Body(t); ok {
				present = true
				break
			}
		}
		if !present {
			return fmt.Errorf("skillset %s: no section has a body at tier %s", s.Key, t)
		}
	}

	mv, ok := s.Section(s.MinimumViable)
	if !ok {
		return fmt.Errorf("skillset %s: minimum viable section %q not defined", s.Key, s.MinimumViable)
	}
	for _, t := range Tiers {
		if _, ok := mv.Body(t); !ok {
			return fmt.Errorf("skillset %s: minimum viable section %q has no body at tier %s", s.Key, mv.Name, t)
		}
	}

	return nil
}
