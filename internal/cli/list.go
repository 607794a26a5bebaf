package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/agent"
	"github.com/debendraoli/promptctl/internal/role"
	"github.com/debendraoli/promptctl/internal/skillset"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "languages"},
	Short:   "List available language skillsets",
	Args:    cobra.NoArgs,
	RunE:    listLanguages,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections [language]",
	Short: "List section names, or the sections a language defines",
	Long: `Without arguments, list the section vocabulary with aliases.
With a language, list that skillset's sections and the tiers they appear at.`,
	Args: cobra.MaximumNArgs(1),
	RunE: listSections,
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List role personas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, r := range role.List() {
			rows = append(rows, []string{r.Name, strings.Join(r.Aliases, ", "), r.Description})
		}
		table(cmd.OutOrStdout(), []string{"ROLE", "ALIASES", "DESCRIPTION"}, rows)
		return nil
	},
}

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List supported agents and their files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var rows [][]string
		for _, name := range agent.List() {
			p, err := agent.Get(name)
			if err != nil {
				return err
			}
			global := p.GlobalPath()
			if global == "" {
				global = "-"
			} else {
				global = "~/" + global
			}
			hooks := "no"
			if p.Hooks() != nil {
				hooks = "yes"
			}
			rows = append(rows, []string{p.Name(), p.DisplayName(), p.ProjectPath(), global, hooks})
		}
		table(cmd.OutOrStdout(), []string{"AGENT", "NAME", "PROJECT FILE", "GLOBAL FILE", "HOOKS"}, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(sectionsCmd)
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(agentsCmd)
}

func listLanguages(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	var rows [][]string
	for _, key := range a.store.Keys() {
		sk, err := a.store.Get(key)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			sk.Key,
			sk.Name,
			sk.Version,
			strings.Join(sk.Aliases, ", "),
			fmt.Sprintf("%d", len(sk.Sections)),
		})
	}
	table(cmd.OutOrStdout(), []string{"KEY", "NAME", "VERSION", "ALIASES", "SECTIONS"}, rows)
	return nil
}

func listSections(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		var rows [][]string
		for _, v := range skillset.Vocabulary {
			rows = append(rows, []string{v.Name, strings.Join(v.Aliases, ", "), v.Description})
		}
		table(cmd.OutOrStdout(), []string{"SECTION", "ALIASES", "DESCRIPTION"}, rows)
		return nil
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	sk, err := a.store.Get(args[0])
	if err != nil {
		return err
	}

	var rows [][]string
	for i := range sk.Sections {
		sec := &sk.Sections[i]
		var tiers, defaults []string
		for _, t := range skillset.Tiers {
			if _, ok := sec.Body(t); ok {
				tiers = append(tiers, t.String())
			}
			if sec.Relevance.AlwaysOnAt(t) {
				defaults = append(defaults, t.String())
			}
		}
		signals := make([]string, 0, len(sec.Relevance.When))
		for _, s := range sec.Relevance.When {
			signals = append(signals, string(s))
		}
		sort.Strings(signals)

		name := sec.Name
		if sec.Name == sk.MinimumViable {
			name += "*"
		}
		rows = append(rows, []string{
			name,
			sec.Title,
			strings.Join(tiers, ","),
			strings.Join(defaults, ","),
			strings.Join(signals, ","),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), nameStyle.Render(sk.Name+" "+sk.Version))
	table(cmd.OutOrStdout(), []string{"SECTION", "TITLE", "TIERS", "DEFAULT AT", "SMART SIGNALS"}, rows)
	fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("* minimum viable section"))
	return nil
}
