package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "github.com/debendraoli/promptctl/internal/agent/aider"
	_ "github.com/debendraoli/promptctl/internal/agent/claude"
	_ "github.com/debendraoli/promptctl/internal/agent/codex"
	_ "github.com/debendraoli/promptctl/internal/agent/copilot"
	_ "github.com/debendraoli/promptctl/internal/agent/cursor"
	"github.com/debendraoli/promptctl/internal/version"
)

var (
	cfgFile    string
	projectDir string
)

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "promptctl - Composable coding guidelines for AI assistants",
	Long: `promptctl composes language-specific coding guidelines from sized
sections, role personas and project overrides, and writes them in the format
each AI coding assistant expects.

Supported agents: Claude Code, Cursor, GitHub Copilot, Codex and Aider.

Example:
  promptctl generate --language go --role reviewer --size compact
  promptctl init claude`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

// Execute runs the root command and prints any error.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
	}
	return err
}

func init() {
	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .promptctl.yaml in the project or home directory)")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "project directory (default is the current directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// workDir returns the project directory.
func workDir() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// errCancelled is returned when the user declines an interactive prompt.
var errCancelled = errors.New("cancelled")
