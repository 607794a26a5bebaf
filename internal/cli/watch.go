package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/preset"
	"github.com/debendraoli/promptctl/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [agent]",
	Short: "Regenerate the agent file when configuration changes",
	Long: `Watch the config file, the preset file, custom skillsets and override
files, and rewrite the agent's instruction file after each change.

Example:
  promptctl watch claude --preset daily`,
	Args: cobra.MaximumNArgs(1),
	RunE: watchProject,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addComposeFlags(watchCmd)
	addWriteFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", watch.DefaultDebounce, "Quiet period before regenerating")
}

func watchProject(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() (*app, error) {
		if err := emitDocument(cmd, args); err != nil {
			return nil, err
		}
		return newApp()
	}

	a, err := regenerate()
	if err != nil {
		return err
	}

	debounce, _ := cmd.Flags().GetDuration("debounce")
	w := watch.New(watchedFiles(a), watch.WithDebounce(debounce), watch.WithLogger(a.logger))
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d files (Ctrl+C to stop)\n", titleStyle.Render("Watching"), len(w.Files()))

	return runWatch(ctx, w, cmd, debounce, regenerate)
}

// runWatch regenerates after each change. A change to the set of referenced
// files restarts the watch with the new set.
func runWatch(ctx context.Context, w *watch.Watcher, cmd *cobra.Command, debounce time.Duration, regenerate func() (*app, error)) error {
	for {
		restart := make(chan *watch.Watcher, 1)
		wctx, cancel := context.WithCancel(ctx)

		err := w.Run(wctx, func(changed []string) error {
			for _, f := range changed {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s %s\n",
					dimStyle.Render(time.Now().Format("15:04:05")), warnStyle.Render("changed"), f)
			}
			a, err := regenerate()
			if err != nil {
				return err
			}
			next := watch.New(watchedFiles(a), watch.WithDebounce(debounce), watch.WithLogger(a.logger))
			if !slices.Equal(w.Files(), next.Files()) {
				select {
				case restart <- next:
				default:
				}
				cancel()
			}
			return nil
		})
		cancel()
		if err != nil {
			return err
		}

		select {
		case next := <-restart:
			w = next
		default:
			return nil
		}
	}
}

// watchedFiles lists the files whose changes affect the composed document.
// Config and preset files are watched at their default locations even when
// they do not exist yet.
func watchedFiles(a *app) []string {
	files := []string{
		a.configPath,
		filepath.Join(a.dir, config.FileNames[0]),
		a.presetFile.Path(),
		filepath.Join(a.dir, preset.FileName),
	}
	return append(files, a.cfg.Inputs()...)
}
