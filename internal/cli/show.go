package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/compose"
)

var showCmd = &cobra.Command{
	Use:   "show <language>",
	Short: "Print a language's complete skillset",
	Long: `Print every section of a language skillset at the full tier, with project
overrides and the language guardrails applied.

Example:
  promptctl show rust --render`,
	Args: cobra.ExactArgs(1),
	RunE: showSkillset,
}

var copyCmd = &cobra.Command{
	Use:   "copy <language>",
	Short: "Copy a language's complete skillset to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  copySkillset,
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)

	showCmd.Flags().Bool("render", false, "Render markdown for the terminal")
	showCmd.Flags().String("format", "", "Output format: markdown or plain")
}

func showSkillset(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	body, err := a.engine.SkillsetBody(args[0])
	if err != nil {
		return err
	}

	if render, _ := cmd.Flags().GetBool("render"); render {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := r.Render(body)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}

	name, _ := cmd.Flags().GetString("format")
	format, err := compose.ParseFormat(name)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), format.Apply(body))
	return nil
}

func copySkillset(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	body, err := a.engine.SkillsetBody(args[0])
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(body); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s (~%d tokens)\n", okStyle.Render("Copied "+args[0]+" skillset to clipboard"), compose.EstimateTokens(body))
	return nil
}
