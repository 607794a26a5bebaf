package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/cli/wizard"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/emit"
	"github.com/debendraoli/promptctl/internal/scanner"
)

var initCmd = &cobra.Command{
	Use:   "init [agent]",
	Short: "Set up an agent for the current project",
	Long: `Scan the project and set up an AI coding agent:

  1. Write the base instruction file: role persona, detected project context,
     the list of language skillsets and generic guardrails.
  2. Install per-language hooks carrying each full skillset, when the agent
     supports them.
  3. Create a starter .promptctl.yaml when no config file exists.

Examples:
  promptctl init claude
  promptctl init cursor --role reviewer --force
  promptctl init copilot --interactive`,
	Args: cobra.MaximumNArgs(1),
	RunE: initProject,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringP("role", "r", "", "Role persona for the base instructions")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite files without a promptctl section and modified hooks")
	initCmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	initCmd.Flags().Bool("no-hooks", false, "Skip hook installation")
	initCmd.Flags().Bool("no-config", false, "Skip creating .promptctl.yaml")
	initCmd.Flags().BoolP("interactive", "i", false, "Confirm detected project details")
	initCmd.Flags().Bool("redact", false, "Mask detected secrets before writing")
}

func initProject(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	p, err := agent.Get(a.agentName(name))
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noHooks, _ := cmd.Flags().GetBool("no-hooks")
	noConfig, _ := cmd.Flags().GetBool("no-config")
	interactive, _ := cmd.Flags().GetBool("interactive")
	redact, _ := cmd.Flags().GetBool("redact")
	roleName, _ := cmd.Flags().GetString("role")
	if roleName == "" {
		roleName = a.cfg.Defaults.Role
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Scanning project...")
	info, err := a.scan()
	if err != nil {
		return err
	}
	if interactive {
		if info, err = a.confirmProject(info); err != nil {
			return err
		}
	}

	base, err := a.engine.ComposeBase(roleName, info)
	if err != nil {
		return err
	}
	out, err := agent.Format(base, p, false, "")
	if err != nil {
		return err
	}

	em := a.emitter(redact)
	opts := emit.Options{Force: force, DryRun: dryRun}
	res, err := em.WriteDocument(out, p.Envelope(), opts)
	if errors.Is(err, emit.ErrExists) && interactive {
		ok, perr := wizard.ConfirmOverwrite(out.Path)
		if perr != nil {
			return perr
		}
		if !ok {
			return errCancelled
		}
		opts.Force = true
		res, err = em.WriteDocument(out, p.Envelope(), opts)
		opts.Force = force
	}
	if err != nil {
		return err
	}
	results := []emit.Result{res}

	if scheme := p.Hooks(); scheme != nil && !noHooks {
		in, err := a.hookInput(roleName, nil, info)
		if err != nil {
			return err
		}
		if len(in.Languages) > 0 {
			hooks, err := em.InstallHooks(cmd.Context(), scheme, in, opts)
			if err != nil {
				return err
			}
			results = append(results, hooks...)
		}
	}

	if a.configPath == "" && !noConfig {
		path := filepath.Join(a.dir, config.FileNames[0])
		if dryRun {
			results = append(results, emit.Result{Path: path, Action: emit.Created})
		} else if written, err := config.WriteStarter(path, p.Name(), false); err != nil {
			return err
		} else if written {
			results = append(results, emit.Result{Path: path, Action: emit.Created})
		}
	}

	printResults(cmd.ErrOrStderr(), results, dryRun)
	fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render(fmt.Sprintf("%s base instructions: ~%d tokens", p.DisplayName(), compose.EstimateTokens(base))))
	return nil
}

// confirmProject runs the interactive confirmation, asking for languages
// when none were detected.
func (a *app) confirmProject(info *scanner.ProjectInfo) (*scanner.ProjectInfo, error) {
	if len(info.Languages) == 0 {
		var options []wizard.LanguageOption
		for _, key := range a.store.Keys() {
			sk, err := a.store.Get(key)
			if err != nil {
				return nil, err
			}
			options = append(options, wizard.LanguageOption{Key: sk.Key, Name: sk.Name})
		}
		keys, err := wizard.SelectLanguages(options)
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			sk, err := a.store.Get(key)
			if err != nil {
				return nil, err
			}
			info.Languages = append(info.Languages, scanner.LanguageInfo{
				Name:       sk.Name,
				Key:        sk.Key,
				Percentage: 100 / float64(len(keys)),
			})
		}
	}
	return wizard.ConfirmProjectInfo(info)
}
