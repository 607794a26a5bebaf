package emit

import (
	"fmt"
	"strings"

	"github.com/debendraoli/promptctl/internal/agent"
)

// region locates the generated region of a bounded envelope inside text.
// end is the offset just past the closing line and its newline.
func region(text string, b agent.Bounded) (start, end int, ok bool) {
	first, closing := b.Bounds()
	start = strings.Index(text, first)
	if start < 0 {
		return 0, 0, false
	}
	rel := strings.Index(text[start:], closing)
	if rel < 0 {
		return 0, 0, false
	}
	end = start + rel + len(closing)
	if end < len(text) && text[end] == '\n' {
		end++
	}
	return start, end, true
}

// WriteDocument writes a formatted document. When the file exists and the
// envelope is bounded, only the generated region is replaced and content
// around it is preserved. Other existing files need Force.
func (e *Emitter) WriteDocument(out agent.Output, env agent.Envelope, opts Options) (Result, error) {
	path, err := e.path(out.Path)
	if err != nil {
		return Result{}, err
	}
	text, findings := e.check(path, out.Text)

	prev, existed, err := readExisting(path)
	if err != nil {
		return Result{}, err
	}

	next := text
	if existed && string(prev) != text {
		current := string(prev)
		b, bounded := env.(agent.Bounded)
		switch {
		case bounded:
			if start, end, ok := region(current, b); ok {
				next = current[:start] + text + current[end:]
			} else if opts.Force {
				next = text + "\n" + current
			} else {
				return Result{}, fmt.Errorf("%w: %s has no promptctl section (use --force to add one)", ErrExists, path)
			}
		case !opts.Force:
			return Result{}, fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
		}
	}

	res, err := e.commit(path, prev, existed, next, 0644, opts)
	if err != nil {
		return Result{}, err
	}
	res.Findings = findings
	return res, nil
}

// RemoveDocument removes a generated document. For bounded envelopes only
// the generated region is stripped, and the file is deleted when nothing
// else remains.
func (e *Emitter) RemoveDocument(out agent.Output, env agent.Envelope, opts Options) (Result, error) {
	path, err := e.path(out.Path)
	if err != nil {
		return Result{}, err
	}

	b, bounded := env.(agent.Bounded)
	if !bounded {
		return e.remove(path, opts)
	}

	prev, existed, err := readExisting(path)
	if err != nil {
		return Result{}, err
	}
	if !existed {
		return Result{Path: path, Action: Skipped}, nil
	}

	current := string(prev)
	start, end, ok := region(current, b)
	if !ok {
		return Result{Path: path, Action: Skipped}, nil
	}
	rest := current[:start] + strings.TrimPrefix(current[end:], "\n")
	if strings.TrimSpace(rest) == "" {
		return e.remove(path, opts)
	}
	return e.commit(path, prev, true, rest, 0644, opts)
}
