package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/preset"
	"github.com/debendraoli/promptctl/internal/role"
	"github.com/debendraoli/promptctl/internal/skillset"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage named option presets",
	Long: `Presets bundle composition options under a name. Built-in presets are
quick, review, security, learn, perf and daily; user presets are stored in
.promptctl-presets.yaml in the project or home directory.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and user presets",
	Args:  cobra.NoArgs,
	RunE:  listPresets,
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a preset's options",
	Args:  cobra.ExactArgs(1),
	RunE:  showPreset,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the given options as a user preset",
	Long: `Save the given options as a user preset.

Example:
  promptctl preset save team --role senior --size full --sections testing,async`,
	Args: cobra.ExactArgs(1),
	RunE: savePreset,
}

var presetDeleteCmd = &cobra.Command{
	Use:     "delete <name>",
	Aliases: []string{"rm"},
	Short:   "Delete a user preset",
	Args:    cobra.ExactArgs(1),
	RunE:    deletePreset,
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd, presetShowCmd, presetSaveCmd, presetDeleteCmd)

	addComposeFlags(presetSaveCmd)
	presetSaveCmd.Flags().StringP("agent", "a", "", "Agent the preset targets")
	presetSaveCmd.Flags().String("description", "", "Preset description")
}

func listPresets(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	var rows [][]string
	for _, p := range a.presets.List() {
		source := "user"
		if preset.IsBuiltin(p.Name) {
			source = "built-in"
		}
		rows = append(rows, []string{p.Name, source, describeOptions(p.Options), p.Description})
	}
	table(cmd.OutOrStdout(), []string{"PRESET", "SOURCE", "OPTIONS", "DESCRIPTION"}, rows)
	return nil
}

func showPreset(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	p, err := a.presets.Get(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(p.Options)
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), nameStyle.Render(p.Name)+" "+dimStyle.Render(p.Description))
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

func savePreset(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	opts := flagOptions(cmd)
	if isEmpty(opts) {
		return fmt.Errorf("no options given; pass flags such as --role or --size")
	}
	if err := validateOptions(opts); err != nil {
		return err
	}
	description, _ := cmd.Flags().GetString("description")

	if err := a.presetFile.Set(preset.Preset{Name: args[0], Description: description, Options: opts}); err != nil {
		return err
	}
	if err := a.presetFile.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s to %s\n", okStyle.Render("Saved preset"), strings.ToLower(args[0]), a.presetFile.Path())
	return nil
}

// validateOptions rejects option values that would fail at composition time.
func validateOptions(o preset.Options) error {
	var errs []error
	if o.Role != "" {
		if _, err := role.Get(o.Role); err != nil {
			errs = append(errs, err)
		}
	}
	if o.Size != "" {
		if _, err := skillset.ParseTier(o.Size); err != nil {
			errs = append(errs, err)
		}
	}
	if o.Format != "" {
		if _, err := compose.ParseFormat(o.Format); err != nil {
			errs = append(errs, err)
		}
	}
	if o.Agent != "" && !agent.Exists(o.Agent) {
		errs = append(errs, fmt.Errorf("unknown agent %q", o.Agent))
	}
	for _, s := range o.Sections {
		if _, err := skillset.CanonicalSection(s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func isEmpty(o preset.Options) bool {
	return o.Role == "" && o.Language == "" && o.Size == "" && len(o.Sections) == 0 &&
		!o.Smart && o.Agent == "" && o.Format == "" && o.Guardrails == nil
}

func deletePreset(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if err := a.presetFile.Remove(args[0]); err != nil {
		return err
	}
	if err := a.presetFile.Save(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", okStyle.Render("Deleted preset"), strings.ToLower(args[0]))
	return nil
}

// describeOptions renders the set fields of o on one line.
func describeOptions(o preset.Options) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	add("role", o.Role)
	add("language", o.Language)
	add("size", o.Size)
	add("sections", strings.Join(o.Sections, ","))
	if o.Smart {
		parts = append(parts, "smart")
	}
	add("agent", o.Agent)
	add("format", o.Format)
	if o.Guardrails != nil && !*o.Guardrails {
		parts = append(parts, "no-guardrails")
	}
	return strings.Join(parts, " ")
}
