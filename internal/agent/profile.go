// Package agent formats composed documents for AI coding assistants and
// resolves where each assistant expects them.
package agent

import (
	"errors"
	"fmt"
	"path/filepath"
)

var (
	// ErrNoGlobalPath is returned when an agent has no home-level location.
	ErrNoGlobalPath = errors.New("agent has no global instruction path")
	// ErrNoHookSupport is returned for agents without lifecycle hooks.
	ErrNoHookSupport = errors.New("agent does not support hooks")
)

// Profile describes one assistant.
type Profile interface {
	// Name returns the agent identifier
	Name() string

	// DisplayName returns a human-readable name
	DisplayName() string

	// Aliases returns alternative names accepted by Get
	Aliases() []string

	// ProjectPath returns the instruction file path relative to the project root
	ProjectPath() string

	// GlobalPath returns the instruction file path relative to the home
	// directory, or "" when the agent has none
	GlobalPath() string

	// Envelope returns the wrapping the agent expects around a document
	Envelope() Envelope

	// Hooks returns the hook scheme, or nil when hooks are unsupported
	Hooks() HookScheme
}

// Output is a formatted document and where it belongs.
type Output struct {
	Path string
	Text string
}

// Format wraps doc in the profile's envelope and resolves its target path.
// Project paths are relative; global paths are joined to home.
func Format(doc string, p Profile, global bool, home string) (Output, error) {
	path := p.ProjectPath()
	if global {
		if p.GlobalPath() == "" {
			return Output{}, fmt.Errorf("%w: %s", ErrNoGlobalPath, p.Name())
		}
		path = filepath.Join(home, filepath.FromSlash(p.GlobalPath()))
	} else {
		path = filepath.FromSlash(path)
	}
	return Output{Path: path, Text: p.Envelope().Wrap(doc)}, nil
}

// HookSchemeOf returns the profile's hook scheme or ErrNoHookSupport.
func HookSchemeOf(p Profile) (HookScheme, error) {
	h := p.Hooks()
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoHookSupport, p.Name())
	}
	return h, nil
}
