package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/emit"
	"github.com/debendraoli/promptctl/internal/preset"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compose a guideline document",
	Long: `Compose coding guidelines for one language from its sized sections, a role
persona, project overrides and guardrails.

The document is printed to stdout unless --copy or --write is given.

Examples:
  promptctl generate --language go --role security --size minimal
  promptctl generate -l rust --sections async,testing --smart
  promptctl generate --preset review --write --agent cursor`,
	Args: cobra.NoArgs,
	RunE: generateDocument,
}

var emitCmd = &cobra.Command{
	Use:   "emit [agent]",
	Short: "Write a composed document to an agent's instruction file",
	Long: `Compose guidelines and write them where the agent expects them.

Existing files keep any content outside the promptctl section.

Examples:
  promptctl emit claude --language go
  promptctl emit cursor --preset daily --dry-run
  promptctl emit codex --global`,
	Args: cobra.MaximumNArgs(1),
	RunE: emitDocument,
}

func addWriteFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("global", false, "Write to the agent's home-level file")
	cmd.Flags().BoolP("force", "f", false, "Overwrite files without a promptctl section")
	cmd.Flags().Bool("dry-run", false, "Show what would change without writing")
	cmd.Flags().Bool("redact", false, "Mask detected secrets before writing")
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(emitCmd)

	addComposeFlags(generateCmd)
	addWriteFlags(generateCmd)
	generateCmd.Flags().StringP("agent", "a", "", "Agent whose file --write targets (default from config)")
	generateCmd.Flags().Bool("copy", false, "Copy the document to the clipboard")
	generateCmd.Flags().Bool("write", false, "Write the document to the agent's instruction file")
	generateCmd.Flags().Bool("stdout", false, "Print the document even with --copy or --write")

	addComposeFlags(emitCmd)
	addWriteFlags(emitCmd)
}

func composeFor(cmd *cobra.Command, a *app) (*compose.Document, string, preset.Options, error) {
	opts, err := a.resolveOptions(cmd)
	if err != nil {
		return nil, "", preset.Options{}, err
	}
	req, format, err := a.request(opts)
	if err != nil {
		return nil, "", preset.Options{}, err
	}
	doc, err := a.engine.Compose(req)
	if err != nil {
		return nil, "", preset.Options{}, err
	}
	return doc, format.Apply(doc.Text), opts, nil
}

func generateDocument(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	doc, text, opts, err := composeFor(cmd, a)
	if err != nil {
		return err
	}

	copyOut, _ := cmd.Flags().GetBool("copy")
	write, _ := cmd.Flags().GetBool("write")
	stdout, _ := cmd.Flags().GetBool("stdout")

	if copyOut {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render("Copied to clipboard"))
	}
	if write {
		if err := writeDocument(cmd, a, opts.Agent, text); err != nil {
			return err
		}
	}
	if stdout || (!copyOut && !write) {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}

	printSummary(cmd, doc)
	return nil
}

func emitDocument(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	doc, text, opts, err := composeFor(cmd, a)
	if err != nil {
		return err
	}

	name := opts.Agent
	if len(args) > 0 {
		name = args[0]
	}
	if err := writeDocument(cmd, a, name, text); err != nil {
		return err
	}
	printSummary(cmd, doc)
	return nil
}

// writeDocument formats text for the agent and writes it through the emitter.
func writeDocument(cmd *cobra.Command, a *app, agentName, text string) error {
	p, err := agent.Get(a.agentName(agentName))
	if err != nil {
		return err
	}
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	redact, _ := cmd.Flags().GetBool("redact")

	out, err := agent.Format(text, p, global, a.home)
	if err != nil {
		return err
	}
	res, err := a.emitter(redact).WriteDocument(out, p.Envelope(), emit.Options{Force: force, DryRun: dryRun})
	if err != nil {
		return err
	}
	printResults(cmd.ErrOrStderr(), []emit.Result{res}, dryRun)
	return nil
}

func printSummary(cmd *cobra.Command, doc *compose.Document) {
	parts := []string{doc.Language, doc.Role, doc.Size.String()}
	if doc.Replaced {
		parts = append(parts, "replaced by override")
	} else {
		parts = append(parts, strings.Join(doc.Sections, ","))
	}
	parts = append(parts, fmt.Sprintf("~%d tokens", doc.EstimatedTokens()))
	fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render(strings.Join(parts, " · ")))
	if doc.FellBack {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("warning:")+" no sections matched; used the minimum viable section")
	}
}
