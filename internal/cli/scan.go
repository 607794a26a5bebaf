package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/cli/wizard"
	"github.com/debendraoli/promptctl/internal/scanner"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Show what promptctl detects about the project",
	Long: `Scan the project directory and report detected languages, frameworks,
layout and size, along with which detected languages have skillsets.`,
	Args: cobra.NoArgs,
	RunE: scanProject,
}

func init() {
	scanCmd.Flags().Bool("json", false, "Print the scan report as JSON")
	rootCmd.AddCommand(scanCmd)
}

// scanReport is the JSON form of the scan command output.
type scanReport struct {
	Project   *scanner.ProjectInfo `json:"project"`
	Result    *scanner.ScanResult  `json:"result"`
	Supported []string             `json:"supported_languages"`
}

func scanProject(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	info, err := a.scan()
	if err != nil {
		return err
	}
	report := scanReport{
		Project:   info,
		Result:    info.Result(),
		Supported: a.engine.SupportedLanguages(info),
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintln(out, titleStyle.Render("Project"))
	fmt.Fprintln(out, wizard.Summary(info))
	fmt.Fprintf(out, "Size:        %s (%d source files)\n", report.Result.Size, info.SourceFiles)
	if len(info.Frameworks) > 0 {
		fmt.Fprintf(out, "Frameworks:  %s\n", strings.Join(info.Frameworks, ", "))
	}
	fmt.Fprintf(out, "Signals:     %s\n", strings.Join(scanSignals(report.Result), ", "))
	if len(report.Supported) == 0 {
		fmt.Fprintln(out, warnStyle.Render("No detected language has a skillset; use --language with generate."))
		return nil
	}
	fmt.Fprintf(out, "Skillsets:   %s\n", okStyle.Render(strings.Join(report.Supported, ", ")))
	return nil
}

// scanSignals names the project facts that drive smart section selection.
func scanSignals(r *scanner.ScanResult) []string {
	var s []string
	if r.HasTests {
		s = append(s, "tests")
	}
	if r.HasDocs {
		s = append(s, "docs")
	}
	if r.HasCI {
		s = append(s, "ci")
	}
	if r.Size == scanner.SizeLarge {
		s = append(s, "large-project")
	}
	if len(s) == 0 {
		return []string{"none"}
	}
	return s
}
