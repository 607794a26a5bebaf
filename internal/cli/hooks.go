package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/emit"
	"github.com/debendraoli/promptctl/internal/scanner"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage per-language hook files",
	Long: `Hooks deliver the full skillset of each project language through the
agent's own mechanism: session scripts for Claude Code, glob-scoped rules for
Cursor and instruction files for GitHub Copilot.`,
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install [agent]",
	Short: "Install hook files for the project languages",
	Args:  cobra.MaximumNArgs(1),
	RunE:  installHooks,
}

var hooksRemoveCmd = &cobra.Command{
	Use:   "remove [agent]",
	Short: "Remove promptctl hook files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  removeHooks,
}

var hooksListCmd = &cobra.Command{
	Use:   "list [agent]",
	Short: "List installed promptctl hook files",
	Args:  cobra.MaximumNArgs(1),
	RunE:  listHooks,
}

func init() {
	rootCmd.AddCommand(hooksCmd)
	hooksCmd.AddCommand(hooksInstallCmd, hooksRemoveCmd, hooksListCmd)

	hooksInstallCmd.Flags().StringSliceP("language", "l", nil, "Languages to install (default is the detected languages)")
	hooksInstallCmd.Flags().StringP("role", "r", "", "Role passed to hook scripts")
	hooksInstallCmd.Flags().BoolP("force", "f", false, "Overwrite modified hook files")
	hooksInstallCmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	hooksInstallCmd.Flags().Bool("redact", false, "Mask detected secrets before writing")

	hooksRemoveCmd.Flags().Bool("dry-run", false, "Show what would be removed")
}

func hookScheme(a *app, args []string) (agent.Profile, agent.HookScheme, error) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	p, err := agent.Get(a.agentName(name))
	if err != nil {
		return nil, nil, err
	}
	scheme, err := agent.HookSchemeOf(p)
	if err != nil {
		return nil, nil, err
	}
	return p, scheme, nil
}

// hookInput renders the skillset of every language for hook files. Empty
// languages means the languages detected in info.
func (a *app) hookInput(roleName string, languages []string, info *scanner.ProjectInfo) (agent.HookInput, error) {
	if len(languages) == 0 {
		languages = a.engine.SupportedLanguages(info)
	}
	in := agent.HookInput{
		Role:      roleName,
		Skillsets: make(map[string]string),
		Globs:     make(map[string][]string),
		Names:     make(map[string]string),
	}
	for _, lang := range languages {
		key := lang
		if canonical, ok := a.store.Resolve(lang); ok {
			key = canonical
		}
		body, err := a.engine.SkillsetBody(key)
		if err != nil {
			return agent.HookInput{}, err
		}
		in.Languages = append(in.Languages, key)
		in.Skillsets[key] = body
		if sk, err := a.store.Get(key); err == nil {
			in.Globs[key] = sk.Globs
			in.Names[key] = sk.Name
		}
	}
	return in, nil
}

func installHooks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	_, scheme, err := hookScheme(a, args)
	if err != nil {
		return err
	}

	languages, _ := cmd.Flags().GetStringSlice("language")
	var info *scanner.ProjectInfo
	if len(languages) == 0 {
		if info, err = a.scan(); err != nil {
			return err
		}
	}
	roleName, _ := cmd.Flags().GetString("role")
	if roleName == "" {
		roleName = a.cfg.Defaults.Role
	}
	in, err := a.hookInput(roleName, splitList(languages), info)
	if err != nil {
		return err
	}
	if len(in.Languages) == 0 {
		return fmt.Errorf("no supported languages detected in %s (use --language)", a.dir)
	}

	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	redact, _ := cmd.Flags().GetBool("redact")
	results, err := a.emitter(redact).InstallHooks(cmd.Context(), scheme, in, emit.Options{Force: force, DryRun: dryRun})
	if err != nil {
		return err
	}
	printResults(cmd.ErrOrStderr(), results, dryRun)
	return nil
}

func removeHooks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	_, scheme, err := hookScheme(a, args)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	results, err := a.emitter(false).RemoveHooks(scheme, emit.Options{DryRun: dryRun})
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("No promptctl hooks installed."))
		return nil
	}
	printResults(cmd.ErrOrStderr(), results, dryRun)
	return nil
}

func listHooks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	p, scheme, err := hookScheme(a, args)
	if err != nil {
		return err
	}
	paths, err := a.emitter(false).ListHooks(scheme)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", dimStyle.Render("No promptctl hooks installed for "+p.DisplayName()+"."))
		return nil
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
