package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	names := make([]string, 0)
	for _, p := range Builtins() {
		names = append(names, p.Name)
		assert.NotEmpty(t, p.Description, "preset %s", p.Name)
	}
	assert.Equal(t, []string{"quick", "review", "security", "learn", "perf", "daily"}, names)
}

func TestResolver_Builtins(t *testing.T) {
	r := NewResolver(nil)

	opts, err := r.Resolve("review")
	require.NoError(t, err)
	assert.Equal(t, "reviewer", opts.Role)
	assert.Equal(t, "compact", opts.Size)
	assert.Equal(t, []string{"error-handling", "types", "testing", "style"}, opts.Sections)

	opts, err = r.Resolve("DAILY")
	require.NoError(t, err)
	assert.True(t, opts.Smart)
	assert.Equal(t, "compact", opts.Size)

	opts, err = r.Resolve("perf")
	require.NoError(t, err)
	assert.Equal(t, "performance", opts.Role)
	assert.Empty(t, opts.Size)
}

func TestResolver_Unknown(t *testing.T) {
	_, err := NewResolver(nil).Resolve("nightly")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestResolver_BuiltinWinsOverUser(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	f.presets["quick"] = Preset{Name: "quick", Options: Options{Size: "full"}}

	opts, err := NewResolver(f).Resolve("quick")
	require.NoError(t, err)
	assert.Equal(t, "minimal", opts.Size)
}

func TestFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, f.List())

	off := false
	require.NoError(t, f.Set(Preset{
		Name:        "Team",
		Description: "Team defaults",
		Options: Options{
			Role:       "senior",
			Language:   "rust",
			Size:       "full",
			Sections:   []string{"async", "testing"},
			Agent:      "claude",
			Guardrails: &off,
		},
	}))
	require.NoError(t, f.Save())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")

	loaded, err := Load(path)
	require.NoError(t, err)
	p, ok := loaded.Lookup("team")
	require.True(t, ok)
	assert.Equal(t, "team", p.Name)
	assert.Equal(t, "Team defaults", p.Description)
	assert.Equal(t, "rust", p.Options.Language)
	assert.Equal(t, []string{"async", "testing"}, p.Options.Sections)
	require.NotNil(t, p.Options.Guardrails)
	assert.False(t, *p.Options.Guardrails)

	opts, err := NewResolver(loaded).Resolve("team")
	require.NoError(t, err)
	assert.Equal(t, "senior", opts.Role)
}

func TestFile_RejectsBuiltinNames(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)

	assert.Error(t, f.Set(Preset{Name: "Review"}))
	assert.Error(t, f.Set(Preset{Name: "  "}))
	assert.Error(t, f.Remove("daily"))
	assert.ErrorIs(t, f.Remove("missing"), ErrUnknownPreset)
}

func TestFile_Remove(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	require.NoError(t, f.Set(Preset{Name: "mine", Options: Options{Size: "minimal"}}))
	require.NoError(t, f.Remove("MINE"))

	_, ok := f.Lookup("mine")
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("presets: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLocate(t *testing.T) {
	dir, home := t.TempDir(), t.TempDir()

	assert.Equal(t, filepath.Join(home, FileName), Locate(dir, home))

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("presets: {}\n"), 0644))
	assert.Equal(t, filepath.Join(dir, FileName), Locate(dir, home))
}

func TestResolver_List(t *testing.T) {
	f, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	require.NoError(t, f.Set(Preset{Name: "zed"}))
	require.NoError(t, f.Set(Preset{Name: "alpha"}))

	list := NewResolver(f).List()
	require.Len(t, list, len(Builtins())+2)
	assert.Equal(t, "alpha", list[len(list)-2].Name)
	assert.Equal(t, "zed", list[len(list)-1].Name)
}
