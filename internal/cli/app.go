package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/debendraoli/promptctl/internal/compose"
	"github.com/debendraoli/promptctl/internal/config"
	"github.com/debendraoli/promptctl/internal/emit"
	"github.com/debendraoli/promptctl/internal/logging"
	"github.com/debendraoli/promptctl/internal/preset"
	"github.com/debendraoli/promptctl/internal/scanner"
	"github.com/debendraoli/promptctl/internal/skillset"
)

// app holds the collaborators shared by commands.
type app struct {
	dir        string
	home       string
	configPath string
	cfg        *config.Config
	logger     *logrus.Logger
	store      *skillset.Store
	engine     *compose.Engine
	presetFile *preset.File
	presets    *preset.Resolver
}

// newApp loads configuration, custom skillsets and presets for the project.
func newApp() (*app, error) {
	dir, err := workDir()
	if err != nil {
		return nil, err
	}
	a := &app{
		dir:    dir,
		home:   homeDir(),
		logger: logging.New(os.Stderr, viper.GetBool("verbose")),
	}

	a.configPath = cfgFile
	if a.configPath == "" {
		a.configPath = config.Locate(dir, a.home)
	}
	a.cfg, err = config.Read(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.configPath != "" {
		a.logger.WithField("path", a.configPath).Debug("Using config file")
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	a.store, err = skillset.NewStore()
	if err != nil {
		return nil, err
	}
	if err := a.cfg.RegisterSkillsets(a.store); err != nil {
		return nil, err
	}
	overrides, err := a.cfg.OverrideSet()
	if err != nil {
		return nil, err
	}
	if overrides, err = overrides.Canonical(a.store.Resolve); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a.engine = compose.New(a.store,
		compose.WithOverrides(overrides),
		compose.WithVariables(a.cfg.Variables),
		compose.WithLogger(a.logger),
	)

	a.presetFile, err = preset.Load(preset.Locate(dir, a.home))
	if err != nil {
		return nil, err
	}
	a.presets = preset.NewResolver(a.presetFile)
	return a, nil
}

func (a *app) emitter(redact bool) *emit.Emitter {
	return emit.New(a.dir, emit.WithLogger(a.logger), emit.WithRedaction(redact))
}

func (a *app) scan() (*scanner.ProjectInfo, error) {
	info, err := scanner.New(a.dir).Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan project: %w", err)
	}
	return info, nil
}

// agentName returns name, or the configured default agent when empty.
func (a *app) agentName(name string) string {
	if name != "" {
		return name
	}
	return a.cfg.DefaultAgent
}
