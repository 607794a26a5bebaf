// Package wizard provides interactive prompts for CLI commands.
package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/debendraoli/promptctl/internal/scanner"
)

// ConfirmProjectInfo presents the detected project info for confirmation
// and lets the user correct it.
func ConfirmProjectInfo(info *scanner.ProjectInfo) (*scanner.ProjectInfo, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Detected Project").
				Description(Summary(info)),

			huh.NewConfirm().
				Title("Is this correct?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	if confirmed {
		return info, nil
	}
	return editProjectInfo(info)
}

func editProjectInfo(info *scanner.ProjectInfo) (*scanner.ProjectInfo, error) {
	frameworks := strings.Join(info.Frameworks, ", ")
	buildCmds := strings.Join(info.BuildCommands, ", ")
	testCmds := strings.Join(info.TestCommands, ", ")
	lintCmds := strings.Join(info.LintCommands, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Value(&info.Name),

			huh.NewInput().
				Title("Frameworks (comma-separated)").
				Value(&frameworks),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Build Commands (comma-separated)").
				Value(&buildCmds),

			huh.NewInput().
				Title("Test Commands (comma-separated)").
				Value(&testCmds),

			huh.NewInput().
				Title("Lint Commands (comma-separated)").
				Value(&lintCmds),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}

	info.Frameworks = lowerAll(parseList(frameworks))
	info.BuildCommands = parseList(buildCmds)
	info.TestCommands = parseList(testCmds)
	info.LintCommands = parseList(lintCmds)

	return info, nil
}

// LanguageOption is a selectable language.
type LanguageOption struct {
	Key  string
	Name string
}

// SelectLanguages asks which languages a project without detectable
// sources will use.
func SelectLanguages(options []LanguageOption) ([]string, error) {
	var selected []string

	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o.Name, o.Key))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("No source files found. Which languages will this project use?").
				Options(opts...).
				Value(&selected).
				Validate(func(s []string) error {
					if len(s) == 0 {
						return fmt.Errorf("select at least one language")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("prompt cancelled: %w", err)
	}
	return selected, nil
}

// ConfirmOverwrite asks before writing over a file without a promptctl
// section.
func ConfirmOverwrite(path string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Existing File Found").
				Description(path+" has no promptctl section. Generated guidelines will be added above its current content."),

			huh.NewConfirm().
				Title("Continue?").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// Summary renders the detected facts shown for confirmation.
func Summary(info *scanner.ProjectInfo) string {
	lines := []string{
		"Project: " + info.Name,
		"Languages: " + formatLanguages(info.Languages),
		"Frameworks: " + orNone(strings.Join(info.Frameworks, ", ")),
		"Build System: " + orNone(info.BuildSystem),
		"Size: " + string(scanner.ClassifySize(info.SourceFiles)),
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func formatLanguages(languages []scanner.LanguageInfo) string {
	if len(languages) == 0 {
		return "Unknown"
	}
	var parts []string
	for _, lang := range languages {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", lang.Name, lang.Percentage))
	}
	return strings.Join(parts, ", ")
}

func parseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var result []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func lowerAll(items []string) []string {
	for i, s := range items {
		items[i] = strings.ToLower(s)
	}
	return items
}
