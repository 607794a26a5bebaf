package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FileName is the user preset file name.
const FileName = ".promptctl-presets.yaml"

type fileFormat struct {
	Presets map[string]Preset `yaml:"presets"`
}

// File is a YAML-backed user preset store.
type File struct {
	path    string
	presets map[string]Preset
}

// Locate returns the preset file in dir if one exists, else the one in home.
func Locate(dir, home string) string {
	local := filepath.Join(dir, FileName)
	if _, err := os.Stat(local); err == nil || home == "" {
		return local
	}
	return filepath.Join(home, FileName)
}

// Load reads the preset file at path. A missing file yields an empty store.
func Load(path string) (*File, error) {
	f := &File{path: path, presets: make(map[string]Preset)}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	for name, p := range ff.Presets {
		p.Name = strings.ToLower(name)
		f.presets[p.Name] = p
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Lookup returns the user preset named name.
func (f *File) Lookup(name string) (Preset, bool) {
	p, ok := f.presets[strings.ToLower(name)]
	return p, ok
}

// List returns user presets sorted by name.
func (f *File) List() []Preset {
	out := make([]Preset, 0, len(f.presets))
	for _, p := range f.presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Set adds or replaces a user preset. Built-in names cannot be shadowed.
func (f *File) Set(p Preset) error {
	p.Name = strings.ToLower(strings.TrimSpace(p.Name))
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if IsBuiltin(p.Name) {
		return fmt.Errorf("preset %q is built in and cannot be overridden", p.Name)
	}
	f.presets[p.Name] = p
	return nil
}

// Remove deletes a user preset.
func (f *File) Remove(name string) error {
	n := strings.ToLower(strings.TrimSpace(name))
	if IsBuiltin(n) {
		return fmt.Errorf("preset %q is built in and cannot be deleted", n)
	}
	if _, ok := f.presets[n]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	delete(f.presets, n)
	return nil
}

// Save writes the store to disk atomically.
func (f *File) Save() error {
	data, err := yaml.Marshal(fileFormat{Presets: f.presets})
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(f.path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace presets: %w", err)
	}
	return nil
}
