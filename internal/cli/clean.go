package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/emit"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [agent]",
	Short: "Remove generated instructions and hooks",
	Long: `Remove the promptctl section from the agent's instruction file and delete
promptctl hook files. Content outside the promptctl section is kept; a file left
empty is deleted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: cleanAgent,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().Bool("global", false, "Clean the agent's home-level file instead")
	cleanCmd.Flags().Bool("dry-run", false, "Show what would be removed")
}

func cleanAgent(cmd *cobra.Command, args []string) error {
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
	global, _ := cmd.Flags().GetBool("global")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	opts := emit.Options{DryRun: dryRun}
	em := a.emitter(false)

	out, err := agent.Format("", p, global, a.home)
	if err != nil {
		return err
	}
	res, err := em.RemoveDocument(out, p.Envelope(), opts)
	if err != nil {
		return err
	}
	results := []emit.Result{res}

	if !global {
		scheme, err := agent.HookSchemeOf(p)
		switch {
		case errors.Is(err, agent.ErrNoHookSupport):
		case err != nil:
			return err
		default:
			removed, err := em.RemoveHooks(scheme, opts)
			if err != nil {
				return err
			}
			results = append(results, removed...)
		}
	}

	printResults(cmd.ErrOrStderr(), results, dryRun)
	return nil
}
