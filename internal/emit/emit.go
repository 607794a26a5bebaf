// Package emit writes formatted instruction documents and hook files to disk.
package emit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/debendraoli/promptctl/internal/logging"
	"github.com/debendraoli/promptctl/internal/security"
)

// ErrExists is returned when a file holding content promptctl does not own
// would be overwritten without force.
var ErrExists = errors.New("file already exists")

// Action describes what happened to one file.
type Action string

const (
	Created   Action = "created"
	Updated   Action = "updated"
	Unchanged Action = "unchanged"
	Removed   Action = "removed"
	Skipped   Action = "skipped"
)

// Result reports the outcome for one file.
type Result struct {
	Path   string
	Action Action
	// Diff is set on dry runs when the file would change.
	Diff     string
	Findings []security.Finding
}

// Options control how files are written.
type Options struct {
	// Force overwrites files whose content promptctl does not own.
	Force bool
	// DryRun computes results and diffs without touching the disk.
	DryRun bool
}

// Emitter writes files below a project root.
type Emitter struct {
	root     string
	logger   *logrus.Logger
	scrubber *security.Scrubber
	redact   bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Emitter) { e.logger = logging.OrDiscard(logger) }
}

// WithRedaction masks detected secrets before writing. Without it secrets
// are only reported.
func WithRedaction(redact bool) Option {
	return func(e *Emitter) { e.redact = redact }
}

// New creates an emitter rooted at root.
func New(root string, opts ...Option) *Emitter {
	e := &Emitter{
		root:     root,
		logger:   logging.Discard(),
		scrubber: security.NewScrubber(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the project root.
func (e *Emitter) Root() string {
	return e.root
}

// path resolves p against the root. Absolute paths are global targets and
// are used as given.
func (e *Emitter) path(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	return security.Within(e.root, p)
}

// check scans text for secrets, logging each and masking them when
// redaction is on.
func (e *Emitter) check(path, text string) (string, []security.Finding) {
	findings := e.scrubber.Find(text)
	for _, f := range findings {
		e.logger.WithFields(logrus.Fields{
			"path": path,
			"kind": f.Kind,
			"line": f.Line,
		}).Warn("Possible secret in generated content")
	}
	if e.redact && len(findings) > 0 {
		text = e.scrubber.Scrub(text)
	}
	return text, findings
}

func readExisting(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

// writeAtomic writes data through a temp file in the target directory.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to set mode on %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// commit writes next to path unless nothing changed or this is a dry run.
func (e *Emitter) commit(path string, prev []byte, existed bool, next string, perm os.FileMode, opts Options) (Result, error) {
	res := Result{Path: path, Action: Created}
	if existed {
		res.Action = Updated
		if string(prev) == next {
			res.Action = Unchanged
		}
	}
	if res.Action == Unchanged {
		e.logger.WithField("path", path).Debug("File unchanged")
		return res, nil
	}

	if opts.DryRun {
		res.Diff = Diff(string(prev), next)
		return res, nil
	}
	if err := writeAtomic(path, []byte(next), perm); err != nil {
		return Result{}, err
	}
	e.logger.WithFields(logrus.Fields{
		"path":   path,
		"action": res.Action,
	}).Info("Wrote file")
	return res, nil
}

func (e *Emitter) remove(path string, opts Options) (Result, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{Path: path, Action: Skipped}, nil
		}
		return Result{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !opts.DryRun {
		if err := os.Remove(path); err != nil {
			return Result{}, fmt.Errorf("failed to remove %s: %w", path, err)
		}
		e.logger.WithField("path", path).Info("Removed file")
	}
	return Result{Path: path, Action: Removed}, nil
}
