package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/preset"
	"github.com/debendraoli/promptctl/internal/scanner"
	"github.com/debendraoli/promptctl/internal/skillset"
)

// addComposeFlags registers the flags that select composition inputs.
func addComposeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("language", "l", "", "Language key or alias (default is the detected primary language)")
	cmd.Flags().StringP("role", "r", "", "Role persona (developer, reviewer, security, ...)")
	cmd.Flags().StringP("size", "s", "", "Size tier: minimal, compact or full")
	cmd.Flags().StringSlice("sections", nil, "Sections to include, by name or alias")
	cmd.Flags().Bool("smart", false, "Add sections relevant to the scanned project")
	cmd.Flags().StringP("preset", "p", "", "Named option preset")
	cmd.Flags().String("format", "", "Output format: markdown or plain")
	cmd.Flags().Bool("no-guardrails", false, "Omit the guardrail block")
}

// overlay returns base with every field set in over replacing it.
func overlay(base, over preset.Options) preset.Options {
	if over.Role != "" {
		base.Role = over.Role
	}
	if over.Language != "" {
		base.Language = over.Language
	}
	if over.Size != "" {
		base.Size = over.Size
	}
	if len(over.Sections) > 0 {
		base.Sections = over.Sections
	}
	if over.Smart {
		base.Smart = true
	}
	if over.Agent != "" {
		base.Agent = over.Agent
	}
	if over.Format != "" {
		base.Format = over.Format
	}
	if over.Guardrails != nil {
		base.Guardrails = over.Guardrails
	}
	return base
}

// flagOptions collects the compose flags the user set explicitly.
func flagOptions(cmd *cobra.Command) preset.Options {
	var o preset.Options
	f := cmd.Flags()
	if f.Changed("language") {
		o.Language, _ = f.GetString("language")
	}
	if f.Changed("role") {
		o.Role, _ = f.GetString("role")
	}
	if f.Changed("size") {
		o.Size, _ = f.GetString("size")
	}
	if f.Changed("sections") {
		sections, _ := f.GetStringSlice("sections")
		o.Sections = splitList(sections)
	}
	if f.Changed("smart") {
		o.Smart, _ = f.GetBool("smart")
	}
	if f.Changed("format") {
		o.Format, _ = f.GetString("format")
	}
	if f.Changed("no-guardrails") {
		off, _ := f.GetBool("no-guardrails")
		on := !off
		o.Guardrails = &on
	}
	if f.Lookup("agent") != nil && f.Changed("agent") {
		o.Agent, _ = f.GetString("agent")
	}
	return o
}

// resolveOptions layers config defaults, the selected preset and explicit
// flags, in increasing precedence.
func (a *app) resolveOptions(cmd *cobra.Command) (preset.Options, error) {
	d := a.cfg.Defaults
	opts := preset.Options{
		Role:       d.Role,
		Size:       d.Size,
		Sections:   d.Sections,
		Smart:      d.Smart,
		Agent:      a.cfg.DefaultAgent,
		Format:     d.Format,
		Guardrails: d.Guardrails,
	}

	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		p, err := a.presets.Resolve(name)
		if err != nil {
			return preset.Options{}, err
		}
		opts = overlay(opts, p)
	}

	opts = overlay(opts, flagOptions(cmd))
	if f := cmd.Flags(); f.Changed("smart") {
		opts.Smart, _ = f.GetBool("smart")
	}
	return opts, nil
}

// request turns resolved options into a composition request, scanning the
// project when the language must be detected or smart selection is on.
func (a *app) request(opts preset.Options) (compose.Request, compose.Format, error) {
	tier, err := skillset.ParseTier(opts.Size)
	if err != nil {
		return compose.Request{}, "", err
	}
	format, err := compose.ParseFormat(opts.Format)
	if err != nil {
		return compose.Request{}, "", err
	}

	req := compose.Request{
		Language:   opts.Language,
		Role:       opts.Role,
		Size:       tier,
		Sections:   opts.Sections,
		Smart:      opts.Smart,
		Guardrails: opts.Guardrails == nil || *opts.Guardrails,
		Title:      true,
	}

	if req.Language == "" || req.Smart {
		info, err := a.scan()
		if err != nil {
			return compose.Request{}, "", err
		}
		req.Scan = info.Result()
		if req.Language == "" {
			req.Language, err = a.detectLanguage(req.Scan)
			if err != nil {
				return compose.Request{}, "", err
			}
		}
	}
	return req, format, nil
}

func (a *app) detectLanguage(scan *scanner.ScanResult) (string, error) {
	for _, lang := range scan.Languages {
		if a.engine.Supports(lang) {
			a.logger.WithField("language", lang).Debug("Using detected language")
			return lang, nil
		}
	}
	return "", fmt.Errorf("no language given and no supported language detected in %s (use --language)", a.dir)
}

// splitList flattens comma-separated values, trimming blanks and dropping
// duplicates while keeping first-seen order.
func splitList(input []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, item := range input {
		for _, segment := range strings.Split(item, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" || seen[segment] {
				continue
			}
			seen[segment] = true
			result = append(result, segment)
		}
	}
	return result
}
