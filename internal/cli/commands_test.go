package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debendraoli/promptctl/internal/override"
	"github.com/debendraoli/promptctl/internal/preset"
)

// resetFlags restores every flag of cmd and its children to its default so
// commands can run repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs promptctl with args against dir and returns stdout and stderr.
func execute(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	cfgFile, projectDir = "", ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--dir", dir}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newProject creates a small Go project with an isolated home directory.
func newProject(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	files := map[string]string{
		"go.mod":               "module example.com/demo\n\ngo 1.25\n",
		"main.go":              "package main\n\nfunc main() {}\n",
		"internal/x/x.go":      "package x\n",
		"internal/x/x_test.go": "package x\n",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_Stdout(t *testing.T) {
	dir := newProject(t)

	out, stderr, err := execute(t, dir, "generate", "--language", "go", "--size", "minimal", "--role", "reviewer")
	require.NoError(t, err)

	assert.Contains(t, out, "## Role: ")
	assert.Contains(t, out, "# Go Development Guidelines")
	assert.Contains(t, out, "## Language Version")
	assert.Contains(t, stderr, "tokens")
	assert.NoFileExists(t, filepath.Join(dir, "CLAUDE.md"))
}

func TestGenerate_DetectsLanguage(t *testing.T) {
	dir := newProject(t)

	out, _, err := execute(t, dir, "generate", "--preset", "quick")
	require.NoError(t, err)
	assert.Contains(t, out, "# Go Development Guidelines")
}

func TestGenerate_UnknownLanguage(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "generate", "--language", "cobol")
	assert.Error(t, err)
}

func TestEmit_WritesAndIsIdempotent(t *testing.T) {
	dir := newProject(t)
	target := filepath.Join(dir, "CLAUDE.md")
	require.NoError(t, os.WriteFile(target, []byte("# My notes\n"), 0644))

	_, _, err := execute(t, dir, "emit", "claude", "--language", "go")
	assert.Error(t, err, "file without markers needs --force")

	_, stderr, err := execute(t, dir, "emit", "claude", "--language", "go", "--force")
	require.NoError(t, err)
	assert.Contains(t, stderr, "updated")

	content := readFile(t, target)
	assert.Contains(t, content, "<instructions>")
	assert.Contains(t, content, "# Go Development Guidelines")
	assert.Contains(t, content, "# My notes")

	_, stderr, err = execute(t, dir, "emit", "claude", "--language", "go")
	require.NoError(t, err)
	assert.Contains(t, stderr, "unchanged")
	assert.Equal(t, content, readFile(t, target))
}

func TestEmit_DryRun(t *testing.T) {
	dir := newProject(t)

	_, stderr, err := execute(t, dir, "emit", "codex", "--language", "go", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stderr, "would be created")
	assert.NoFileExists(t, filepath.Join(dir, "AGENTS.md"))
}

func TestPreset_SaveListDelete(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "preset", "save", "team", "--role", "senior", "--size", "full", "--description", "Team defaults")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(os.Getenv("HOME"), preset.FileName), "without a project file presets go to the home directory")

	out, _, err := execute(t, dir, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "team")
	assert.Contains(t, out, "review")

	out, _, err = execute(t, dir, "preset", "show", "team")
	require.NoError(t, err)
	assert.Contains(t, out, "role: senior")
	assert.Contains(t, out, "size: full")

	_, _, err = execute(t, dir, "preset", "save", "review", "--role", "senior")
	assert.Error(t, err, "built-in names are reserved")

	_, _, err = execute(t, dir, "preset", "save", "empty")
	assert.Error(t, err, "a preset needs options")

	_, _, err = execute(t, dir, "preset", "save", "bad", "--size", "huge")
	assert.Error(t, err)

	_, _, err = execute(t, dir, "preset", "delete", "team")
	require.NoError(t, err)

	_, _, err = execute(t, dir, "preset", "show", "team")
	assert.ErrorIs(t, err, preset.ErrUnknownPreset)
}

func TestConfigInitAndSchema(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "config", "init", "--agent", "cursor")
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(dir, ".promptctl.yaml")), "default_agent: cursor")

	_, _, err = execute(t, dir, "config", "init")
	assert.Error(t, err, "existing config needs --force")

	out, _, err := execute(t, dir, "config", "schema")
	require.NoError(t, err)
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, "promptctl configuration", schema["title"])

	out, _, err = execute(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "default_agent: cursor")
}

func TestConfig_InvalidFileFailsCommands(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".promptctl.yaml"), []byte("default_agent: vim\n"), 0644))

	_, _, err := execute(t, dir, "generate", "--language", "go")
	assert.ErrorContains(t, err, "invalid config")
}

func TestGenerate_AliasOverride(t *testing.T) {
	dir := newProject(t)
	cfg := "overrides:\n  golang:\n    mode: append\n    append: TEAM-RULES\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".promptctl.yaml"), []byte(cfg), 0644))

	out, _, err := execute(t, dir, "generate", "--language", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "TEAM-RULES")
}

func TestConfig_DuplicateAliasOverride(t *testing.T) {
	dir := newProject(t)
	cfg := "overrides:\n  ts:\n    mode: append\n    append: a\n  typescript:\n    mode: append\n    append: b\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".promptctl.yaml"), []byte(cfg), 0644))

	_, _, err := execute(t, dir, "generate", "--language", "typescript")
	assert.ErrorIs(t, err, override.ErrConfiguration)
}

func TestScan_JSON(t *testing.T) {
	dir := newProject(t)

	out, _, err := execute(t, dir, "scan", "--json")
	require.NoError(t, err)

	var report struct {
		Result struct {
			PrimaryLanguage string `json:"primary_language"`
			HasTests        bool   `json:"has_tests"`
		} `json:"result"`
		Supported []string `json:"supported_languages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "go", report.Result.PrimaryLanguage)
	assert.Equal(t, []string{"go"}, report.Supported)
}

func TestHooks_InstallListRemove(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "hooks", "install", "claude")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".claude", "hooks", "promptctl-session-start.sh"))
	assert.FileExists(t, filepath.Join(dir, ".claude", "settings.json"))

	out, _, err := execute(t, dir, "hooks", "list", "claude")
	require.NoError(t, err)
	assert.Contains(t, out, ".claude/hooks/promptctl-session-start.sh")

	_, _, err = execute(t, dir, "hooks", "remove", "claude")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, ".claude", "hooks", "promptctl-session-start.sh"))
}

func TestHooks_UnsupportedAgent(t *testing.T) {
	dir := newProject(t)

	_, _, err := execute(t, dir, "hooks", "install", "aider")
	assert.Error(t, err)
}

func TestInitAndClean(t *testing.T) {
	dir := newProject(t)

	_, stderr, err := execute(t, dir, "init", "claude")
	require.NoError(t, err)
	assert.Contains(t, stderr, "tokens")
	assert.FileExists(t, filepath.Join(dir, "CLAUDE.md"))
	assert.FileExists(t, filepath.Join(dir, ".promptctl.yaml"))
	assert.FileExists(t, filepath.Join(dir, ".claude", "hooks", "promptctl-session-start.sh"))

	_, _, err = execute(t, dir, "clean", "claude")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "CLAUDE.md"))
	assert.NoFileExists(t, filepath.Join(dir, ".claude", "hooks", "promptctl-session-start.sh"))
}

func TestList(t *testing.T) {
	dir := newProject(t)

	out, _, err := execute(t, dir, "list")
	require.NoError(t, err)
	for _, want := range []string{"go", "rust", "typescript", "solidity", "leo"} {
		assert.Contains(t, out, want)
	}

	out, _, err = execute(t, dir, "roles")
	require.NoError(t, err)
	assert.Contains(t, out, "reviewer")

	out, _, err = execute(t, dir, "agents")
	require.NoError(t, err)
	assert.Contains(t, out, "CLAUDE.md")

	out, _, err = execute(t, dir, "sections", "go")
	require.NoError(t, err)
	assert.Contains(t, out, "error-handling")
}

func TestVersion_JSON(t *testing.T) {
	out, _, err := execute(t, t.TempDir(), "version", "--json")
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info["version"])
	assert.NotEmpty(t, info["go_version"])
}
