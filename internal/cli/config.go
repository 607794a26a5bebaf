package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the promptctl configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter .promptctl.yaml",
	Args:  cobra.NoArgs,
	RunE:  initConfig,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the configuration file",
	Long: `Print the JSON Schema of .promptctl.yaml. Point an editor's YAML
language server at it for completion and validation.`,
	Args: cobra.NoArgs,
	RunE: printSchema,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  showConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configSchemaCmd, configShowCmd)

	configInitCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	configInitCmd.Flags().StringP("agent", "a", "claude", "Default agent for the starter config")
	configSchemaCmd.Flags().StringP("output", "o", "", "Write the schema to a file instead of stdout")
}

func initConfig(cmd *cobra.Command, args []string) error {
	dir, err := workDir()
	if err != nil {
		return err
	}
	agentName, _ := cmd.Flags().GetString("agent")
	if !agent.Exists(agentName) {
		return fmt.Errorf("unknown agent %q (available: %v)", agentName, agent.List())
	}
	force, _ := cmd.Flags().GetBool("force")

	path := filepath.Join(dir, config.FileNames[0])
	written, err := config.WriteStarter(path, agentName, force)
	if err != nil {
		return err
	}
	if !written {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", okStyle.Render("Created"), path)
	return nil
}

func printSchema(cmd *cobra.Command, args []string) error {
	data, err := config.Schema()
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", okStyle.Render("Wrote"), output)
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	data, err := config.Marshal(a.cfg)
	if err != nil {
		return err
	}
	source := a.configPath
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("# source: "+source))
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
