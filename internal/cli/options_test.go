package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/logging"
	"github.com/debendraoli/promptctl/internal/override"
	"github.com/debendraoli/promptctl/internal/preset"
	"github.com/debendraoli/promptctl/internal/scanner"
	"github.com/debendraoli/promptctl/internal/skillset"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"nil", nil, nil},
		{"single", []string{"testing"}, []string{"testing"}},
		{"comma separated", []string{"testing,async"}, []string{"testing", "async"}},
		{"blanks and spaces", []string{" testing , ,async "}, []string{"testing", "async"}},
		{"duplicates across values", []string{"testing", "async,testing"}, []string{"testing", "async"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, splitList(tt.input)); diff != "" {
				t.Errorf("splitList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverlay(t *testing.T) {
	off := false
	base := preset.Options{Role: "developer", Size: "compact", Sections: []string{"style"}, Agent: "claude"}
	over := preset.Options{Role: "reviewer", Sections: []string{"testing"}, Smart: true, Guardrails: &off}

	got := overlay(base, over)

	assert.Equal(t, "reviewer", got.Role)
	assert.Equal(t, "compact", got.Size)
	assert.Equal(t, []string{"testing"}, got.Sections)
	assert.True(t, got.Smart)
	assert.Equal(t, "claude", got.Agent)
	require.NotNil(t, got.Guardrails)
	assert.False(t, *got.Guardrails)

	assert.Equal(t, base, overlay(base, preset.Options{}))
}

func newTestApp() *app {
	return &app{
		cfg: &config.Config{
			DefaultAgent: "claude",
			Defaults:     config.DefaultsConfig{Role: "developer", Size: "compact", Format: "markdown"},
		},
		presets: preset.NewResolver(nil),
	}
}

func newComposeCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addComposeFlags(cmd)
	cmd.Flags().String("agent", "", "")
	for k, v := range flags {
		require.NoError(t, cmd.Flags().Set(k, v))
	}
	return cmd
}

func TestResolveOptions_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		flags map[string]string
		want  preset.Options
	}{
		{
			name: "config defaults",
			want: preset.Options{Role: "developer", Size: "compact", Agent: "claude", Format: "markdown"},
		},
		{
			name:  "preset over defaults",
			flags: map[string]string{"preset": "review"},
			want: preset.Options{
				Role: "reviewer", Size: "compact", Agent: "claude", Format: "markdown",
				Sections: []string{"error-handling", "types", "testing", "style"},
			},
		},
		{
			name:  "flags over preset",
			flags: map[string]string{"preset": "review", "role": "security", "sections": "async,testing", "agent": "cursor"},
			want: preset.Options{
				Role: "security", Size: "compact", Agent: "cursor", Format: "markdown",
				Sections: []string{"async", "testing"},
			},
		},
		{
			name:  "explicit smart=false turns off preset smart",
			flags: map[string]string{"preset": "daily", "smart": "false"},
			want:  preset.Options{Role: "developer", Size: "compact", Agent: "claude", Format: "markdown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTestApp().resolveOptions(newComposeCmd(t, tt.flags))
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolveOptions() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveOptions_NoGuardrails(t *testing.T) {
	got, err := newTestApp().resolveOptions(newComposeCmd(t, map[string]string{"no-guardrails": "true"}))
	require.NoError(t, err)
	require.NotNil(t, got.Guardrails)
	assert.False(t, *got.Guardrails)
}

func TestResolveOptions_UnknownPreset(t *testing.T) {
	_, err := newTestApp().resolveOptions(newComposeCmd(t, map[string]string{"preset": "nope"}))
	assert.ErrorIs(t, err, preset.ErrUnknownPreset)
}

func TestRequest_ExplicitLanguage(t *testing.T) {
	req, format, err := newTestApp().request(preset.Options{Language: "go", Role: "reviewer", Size: "full", Format: "plain"})
	require.NoError(t, err)

	assert.Equal(t, "go", req.Language)
	assert.Equal(t, "reviewer", req.Role)
	assert.Equal(t, "full", req.Size.String())
	assert.True(t, req.Guardrails)
	assert.True(t, req.Title)
	assert.Nil(t, req.Scan)
	assert.Equal(t, "plain", string(format))
}

func TestRequest_InvalidSize(t *testing.T) {
	_, _, err := newTestApp().request(preset.Options{Language: "go", Size: "huge"})
	assert.Error(t, err)
}

func TestDetectLanguage(t *testing.T) {
	store := skillset.MustNewStore()
	ovs := override.Set{}
	ovs.Add(&override.Override{Language: "python", Mode: override.ModeReplace, Content: "Use type hints"})

	a := newTestApp()
	a.logger = logging.Discard()
	a.store = store
	a.engine = compose.New(store, compose.WithOverrides(ovs))

	tests := []struct {
		name      string
		languages []string
		want      string
		wantErr   bool
	}{
		{"replace override language", []string{"python", "go"}, "python", false},
		{"unsupported skipped", []string{"cobol", "go"}, "go", false},
		{"nothing supported", []string{"cobol"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.detectLanguage(&scanner.ScanResult{Languages: tt.languages})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
