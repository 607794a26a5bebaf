package skillset

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSkillset is the YAML layout of a skillset definition. Section content
// is written as additive rule lists: the body at a tier is every rule listed
// at that tier or below, so bodies never shrink as the tier grows.
type fileSkillset struct {
	Key           string        `yaml:"key"`
	Name          string        `yaml:"name"`
	Version       string        `yaml:"version"`
	Aliases       []string      `yaml:"aliases"`
	Globs         []string      `yaml:"globs"`
	MinimumViable string        `yaml:"minimum_viable"`
	Guardrails    string        `yaml:"guardrails"`
	Sections      []fileSection `yaml:"sections"`
}

type fileSection struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
	// AlwaysOn is the smallest tier at which the section is on by default.
	AlwaysOn string   `yaml:"always_on"`
	When     []string `yaml:"when"`
	Minimal  []string `yaml:"minimal"`
	Compact  []string `yaml:"compact"`
	Full     []string `yaml:"full"`
}

// Parse decodes a YAML skillset definition and validates it.
func Parse(data []byte) (*Skillset, error) {
	var f fileSkillset
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse skillset: %w", err)
	}

	s := &Skillset{
		Key:           strings.ToLower(strings.TrimSpace(f.Key)),
		Name:          f.Name,
		Version:       f.Version,
		Aliases:       f.Aliases,
		Globs:         f.Globs,
		Guardrails:    strings.TrimSpace(f.Guardrails),
		MinimumViable: f.MinimumViable,
	}
	if s.Name == "" {
		s.Name = s.Key
	}
	if s.MinimumViable == "" && len(f.Sections) > 0 {
		s.MinimumViable = f.Sections[0].Name
	}

	for _, fs := range f.Sections {
		sec, err := fs.toSection()
		if err != nil {
			return nil, fmt.Errorf("skillset %s: %w", s.Key, err)
		}
		s.Sections = append(s.Sections, sec)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile reads and parses a skillset definition from disk.
func LoadFile(path string) (*Skillset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skillset %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (fs fileSection) toSection() (Section, error) {
	name, err := CanonicalSection(fs.Name)
	if err != nil {
		return Section{}, err
	}
	sec := Section{
		Name:   name,
		Title:  fs.Title,
		Bodies: make(map[Tier]string, len(Tiers)),
	}
	if sec.Title == "" {
		sec.Title = name
	}

	if fs.AlwaysOn != "" {
		from, err := ParseTier(fs.AlwaysOn)
		if err != nil {
			return Section{}, fmt.Errorf("section %s: %w", name, err)
		}
		for _, t := range Tiers {
			if t >= from {
				sec.Relevance.AlwaysOn = append(sec.Relevance.AlwaysOn, t)
			}
		}
	}
	for _, w := range fs.When {
		sig, err := ParseSignal(w)
		if err != nil {
			return Section{}, fmt.Errorf("section %s: %w", name, err)
		}
		sec.Relevance.When = append(sec.Relevance.When, sig)
	}

	var rules []string
	for i, tierRules := range [][]string{fs.Minimal, fs.Compact, fs.Full} {
		rules = append(rules, tierRules...)
		if len(rules) > 0 {
			sec.Bodies[Tiers[i]] = renderRules(rules)
		}
	}
	return sec, nil
}

// renderRules formats single-line rules as bullets and multi-line rules as
// verbatim blocks separated by blank lines.
func renderRules(rules []string) string {
	var b strings.Builder
	prevBullet := false
	for i, r := range rules {
		block := strings.Contains(r, "\n")
		text := strings.TrimSpace(r)
		if i > 0 {
			if block || !prevBullet {
				b.WriteString("\n\n")
			} else {
				b.WriteString("\n")
			}
		}
		if block {
			b.WriteString(text)
		} else {
			b.WriteString("- ")
			b.WriteString(text)
		}
		prevBullet = !block
	}
	return b.String()
}
