package skillset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// ErrUnknownLanguage is returned when no skillset is registered for a key.
var ErrUnknownLanguage = errors.New("unknown language")

//go:embed data/*.yaml
var builtinData embed.FS

// Store is the registry of skillsets keyed by lower-case language key.
// It is populated before any composition and read-only afterwards.
type Store struct {
	skillsets map[string]*Skillset
	aliases   map[string]string
	custom    map[string]bool
}

// NewStore returns a store holding the built-in skillsets.
func NewStore() (*Store, error) {
	s := &Store{
		skillsets: make(map[string]*Skillset),
		aliases:   make(map[string]string),
		custom:    make(map[string]bool),
	}

	entries, err := fs.ReadDir(builtinData, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to read built-in skillsets: %w", err)
	}
	for _, e := range entries {
		data, err := builtinData.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read built-in skillset %s: %w", e.Name(), err)
		}
		sk, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("built-in skillset %s: %w", e.Name(), err)
		}
		s.put(sk)
	}
	return s, nil
}

// MustNewStore is like NewStore but panics on error. Built-in data is
// embedded, so an error here is a build defect.
func MustNewStore() *Store {
	s, err := NewStore()
	if err != nil {
		panic(err)
	}
	return s
}

// Register adds a custom skillset, replacing any entry with the same key.
// Custom skillsets are used verbatim.
func (s *Store) Register(custom *Skillset) error {
	if custom == nil {
		return fmt.Errorf("cannot register nil skillset")
	}
	if err := custom.Validate(); err != nil {
		return err
	}
	custom.Key = strings.ToLower(custom.Key)
	if old, ok := s.skillsets[custom.Key]; ok {
		for _, a := range old.Aliases {
			delete(s.aliases, strings.ToLower(a))
		}
	}
	s.put(custom)
	s.custom[custom.Key] = true
	return nil
}

// IsCustom reports whether key resolves to a skillset added by Register.
func (s *Store) IsCustom(key string) bool {
	k, ok := s.Resolve(key)
	return ok && s.custom[k]
}

func (s *Store) put(sk *Skillset) {
	s.skillsets[sk.Key] = sk
	for _, a := range sk.Aliases {
		s.aliases[strings.ToLower(a)] = sk.Key
	}
}

// Resolve maps a key or alias to the canonical language key.
func (s *Store) Resolve(key string) (string, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	if _, ok := s.skillsets[k]; ok {
		return k, true
	}
	if canonical, ok := s.aliases[k]; ok {
		return canonical, true
	}
	return k, false
}

// Get returns the skillset for a key or alias, case-insensitively.
func (s *Store) Get(key string) (*Skillset, error) {
	k, ok := s.Resolve(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, key)
	}
	return s.skillsets[k], nil
}

// Has reports whether a key or alias is registered.
func (s *Store) Has(key string) bool {
	_, ok := s.Resolve(key)
	return ok
}

// Keys returns all registered language keys, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.skillsets))
	for k := range s.skillsets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
