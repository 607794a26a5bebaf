package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debendraoli/promptctl/internal/emit"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

var actionStyles = map[emit.Action]lipgloss.Style{
	emit.Created:   okStyle,
	emit.Updated:   okStyle,
	emit.Removed:   warnStyle,
	emit.Unchanged: dimStyle,
	emit.Skipped:   dimStyle,
}

// printResults reports file results, with diffs on dry runs.
func printResults(w io.Writer, results []emit.Result, dryRun bool) {
	for _, r := range results {
		label := string(r.Action)
		if dryRun && r.Action != emit.Unchanged && r.Action != emit.Skipped {
			label = "would be " + label
		}
		style, ok := actionStyles[r.Action]
		if !ok {
			style = dimStyle
		}
		fmt.Fprintf(w, "%s %s\n", style.Render(fmt.Sprintf("%-18s", label)), r.Path)
		for _, f := range r.Findings {
			fmt.Fprintf(w, "  %s possible %s on line %d\n", warnStyle.Render("warning:"), f.Kind, f.Line)
		}
		if r.Diff != "" {
			printDiff(w, r.Diff)
		}
	}
}

func printDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(w, addedStyle.Render(strings.TrimSuffix(line, "\n"))+"\n")
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(w, removedStyle.Render(strings.TrimSuffix(line, "\n"))+"\n")
		default:
			fmt.Fprint(w, dimStyle.Render(strings.TrimSuffix(line, "\n"))+"\n")
		}
	}
}

// table renders rows as aligned columns under a bold header.
func table(w io.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	render := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			padded := c
			if i < len(cells)-1 {
				padded = fmt.Sprintf("%-*s", widths[i], c)
			}
			if style != nil {
				padded = style.Render(padded)
			}
			parts[i] = padded
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	render(header, &titleStyle)
	for _, row := range rows {
		render(row, nil)
	}
}
