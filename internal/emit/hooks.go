package emit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/debendraoli/promptctl/internal/agent"
)

// InstallHooks writes every hook file of scheme concurrently, then merges
// the scheme's settings files.
func (e *Emitter) InstallHooks(ctx context.Context, scheme agent.HookScheme, in agent.HookInput, opts Options) ([]Result, error) {
	files := scheme.Files(in)
	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.writeHook(f, opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, sf := range scheme.Settings() {
		res, err := e.mergeSettings(sf, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (e *Emitter) writeHook(f agent.HookFile, opts Options) (Result, error) {
	path, err := e.path(f.Path)
	if err != nil {
		return Result{}, err
	}
	text, findings := e.check(path, f.Content)

	prev, existed, err := readExisting(path)
	if err != nil {
		return Result{}, err
	}
	if existed && string(prev) != text && !opts.Force {
		return Result{}, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
	}

	perm := os.FileMode(0644)
	if f.Executable {
		perm = 0755
	}
	res, err := e.commit(path, prev, existed, text, perm, opts)
	if err != nil {
		return Result{}, err
	}
	res.Findings = findings
	return res, nil
}

func (e *Emitter) mergeSettings(sf agent.SettingsFile, opts Options) (Result, error) {
	path, err := e.path(sf.Path)
	if err != nil {
		return Result{}, err
	}
	prev, existed, err := readExisting(path)
	if err != nil {
		return Result{}, err
	}
	merged, err := sf.Merge(prev)
	if err != nil {
		return Result{}, fmt.Errorf("failed to update %s: %w", path, err)
	}
	return e.commit(path, prev, existed, string(merged), 0644, opts)
}

// RemoveHooks deletes generated hook files and strips promptctl entries from
// settings files. A settings file left empty is deleted.
func (e *Emitter) RemoveHooks(scheme agent.HookScheme, opts Options) ([]Result, error) {
	paths, err := e.ListHooks(scheme)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, rel := range paths {
		res, err := e.remove(filepath.Join(e.root, rel), opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	for _, sf := range scheme.Settings() {
		path, err := e.path(sf.Path)
		if err != nil {
			return nil, err
		}
		prev, existed, err := readExisting(path)
		if err != nil {
			return nil, err
		}
		if !existed {
			continue
		}
		stripped, err := sf.Remove(prev)
		if err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", path, err)
		}
		var res Result
		if bytes.Equal(bytes.TrimSpace(stripped), []byte("{}")) {
			res, err = e.remove(path, opts)
		} else {
			res, err = e.commit(path, prev, true, string(stripped), 0644, opts)
		}
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// ListHooks returns the project-relative paths of installed hook files.
func (e *Emitter) ListHooks(scheme agent.HookScheme) ([]string, error) {
	var paths []string
	for _, dir := range scheme.Dirs() {
		abs, err := e.path(dir)
		if err != nil {
			return nil, err
		}
		entries, err := os.ReadDir(abs)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s: %w", abs, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !agent.IsHookFile(entry.Name()) {
				continue
			}
			paths = append(paths, filepath.ToSlash(filepath.Join(dir, entry.Name())))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
