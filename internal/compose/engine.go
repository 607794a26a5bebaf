// Package compose assembles guideline documents from skillset sections,
// role personas, overrides and guardrails.
package compose

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/debendraoli/promptctl/internal/logging"
	"github.com/debendraoli/promptctl/internal/override"
	"github.com/debendraoli/promptctl/internal/role"
	"github.com/debendraoli/promptctl/internal/scanner"
	"github.com/debendraoli/promptctl/internal/skillset"
	"github.com/debendraoli/promptctl/internal/template"
)

// Request holds the inputs of a single composition.
type Request struct {
	Language string
	Role     string
	Size     skillset.Tier
	// Sections explicitly requested, by name or alias. Empty selects the
	// sections that are on by default at Size.
	Sections []string
	// Smart unions in sections whose relevance matches Scan.
	Smart bool
	Scan  *scanner.ScanResult
	// Guardrails appends the guardrail block.
	Guardrails bool
	// Title adds a "# <Language> Development Guidelines" heading after the
	// persona.
	Title bool
}

// Engine composes documents. It is safe for concurrent use once built.
type Engine struct {
	store     *skillset.Store
	overrides override.Set
	variables map[string]string
	logger    *logrus.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOverrides sets the project overrides, at most one per language.
func WithOverrides(overrides override.Set) Option {
	return func(e *Engine) { e.overrides = overrides }
}

// WithVariables sets user template variables rendered into override text.
func WithVariables(vars map[string]string) Option {
	return func(e *Engine) { e.variables = vars }
}

// WithLogger sets the logger used for selection diagnostics.
func WithLogger(logger *logrus.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// New creates an Engine reading skillsets from store.
func New(store *skillset.Store, opts ...Option) *Engine {
	e := &Engine{store: store}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.OrDiscard(e.logger)
	e.overrides = e.canonicalOverrides()
	return e
}

// canonicalOverrides re-keys overrides by canonical language key and drops
// non-replace overrides aimed at custom skillsets, which are used verbatim.
func (e *Engine) canonicalOverrides() override.Set {
	if len(e.overrides) == 0 {
		return e.overrides
	}
	set, err := e.overrides.Canonical(e.store.Resolve)
	if err != nil {
		e.logger.WithError(err).Warn("Override keys not canonicalized")
		set = maps.Clone(e.overrides)
	}
	for key, ov := range set {
		mode, _ := override.ParseMode(string(ov.Mode))
		if mode != override.ModeReplace && e.store.IsCustom(key) {
			e.logger.WithFields(logrus.Fields{
				"language": key,
				"mode":     mode,
			}).Warn("Override ignored for custom skillset")
			delete(set, key)
		}
	}
	return set
}

// Compose builds a document for req. It returns either a complete document
// or an error, never both.
func (e *Engine) Compose(req Request) (*Document, error) {
	r, err := role.Get(req.Role)
	if err != nil {
		return nil, err
	}
	base, resolved, err := e.resolve(req.Language)
	if err != nil {
		return nil, err
	}

	key := e.languageKey(req.Language, base)
	vars := template.Merge(template.Builtins(key, r.Name, req.Size.String()), e.variables)
	doc := &Document{Language: key, Role: r.Name, Size: req.Size}
	blocks := []string{r.Persona}

	if resolved.Replaced {
		doc.Replaced = true
		blocks = append(blocks, e.render(resolved.Content, vars))
		if req.Guardrails {
			blocks = append(blocks, guardrailBlock(base))
		}
		doc.Text = join(blocks)
		return doc, nil
	}

	sk := resolved.Skillset
	sections, err := e.selectSections(sk, req)
	if err != nil {
		return nil, err
	}

	if req.Title {
		blocks = append(blocks, "# "+sk.Name+" Development Guidelines")
	}

	if len(sections) == 0 {
		mv, _ := sk.Section(sk.MinimumViable)
		e.logger.WithFields(logrus.Fields{
			"language": sk.Key,
			"tier":     req.Size,
			"section":  mv.Name,
		}).Debug("Selection empty, falling back to minimum viable section")
		sections = []*skillset.Section{mv}
		doc.FellBack = true
	}

	if !doc.FellBack && resolved.Prepend != "" {
		blocks = append(blocks, e.render(resolved.Prepend, vars))
	}
	for _, sec := range sections {
		body, _ := sec.Body(req.Size)
		blocks = append(blocks, "## "+sec.Title+"\n\n"+body)
		doc.Sections = append(doc.Sections, sec.Name)
	}
	if !doc.FellBack && resolved.Append != "" {
		blocks = append(blocks, e.render(resolved.Append, vars))
	}
	if req.Guardrails {
		blocks = append(blocks, guardrailBlock(sk))
	}

	doc.Text = join(blocks)
	if tokens := doc.EstimatedTokens(); tokens > req.Size.Budget() {
		e.logger.WithFields(logrus.Fields{
			"language": sk.Key,
			"tier":     req.Size,
			"tokens":   tokens,
			"budget":   req.Size.Budget(),
		}).Warn("Composed document exceeds its tier budget")
	}
	return doc, nil
}

// SkillsetBody builds the self-contained language document used by hook
// files: every section at the full tier, the project override and the
// language guardrails. No persona is included.
func (e *Engine) SkillsetBody(language string) (string, error) {
	base, resolved, err := e.resolve(language)
	if err != nil {
		return "", err
	}
	key := e.languageKey(language, base)
	vars := template.Merge(template.Builtins(key, "", skillset.Full.String()), e.variables)

	if resolved.Replaced {
		return join([]string{e.render(resolved.Content, vars), languageGuardrails(base)}), nil
	}

	sk := resolved.Skillset
	blocks := []string{"# " + sk.Name + " Development Guidelines"}
	if resolved.Prepend != "" {
		blocks = append(blocks, e.render(resolved.Prepend, vars))
	}
	for i := range sk.Sections {
		sec := &sk.Sections[i]
		if body, ok := sec.Body(skillset.Full); ok {
			blocks = append(blocks, "## "+sec.Title+"\n\n"+body)
		}
	}
	if resolved.Append != "" {
		blocks = append(blocks, e.render(resolved.Append, vars))
	}
	blocks = append(blocks, languageGuardrails(sk))
	return join(blocks), nil
}

// ComposeBase builds the base instruction file for a project: persona,
// project context, a note on the per-language skillsets and the generic
// guardrails. Language content itself is delivered through hooks.
func (e *Engine) ComposeBase(roleName string, info *scanner.ProjectInfo) (string, error) {
	r, err := role.Get(roleName)
	if err != nil {
		return "", err
	}
	blocks := []string{r.Persona}

	ctx, err := ProjectContext(info)
	if err != nil {
		return "", fmt.Errorf("failed to render project context: %w", err)
	}
	if ctx != "" {
		blocks = append(blocks, "## Project Context\n\n"+ctx)
	}

	if langs := e.SupportedLanguages(info); len(langs) > 0 {
		blocks = append(blocks, "## Language Skillsets\n\n"+
			"This project uses language-specific coding guidelines loaded as separate skillsets. "+
			"Refer to each skillset for idiomatic patterns, error handling, types, testing and tooling.\n\n"+
			"Skillsets: "+strings.Join(langs, ", "))
	}

	blocks = append(blocks, GenericGuardrails)
	return join(blocks), nil
}

// SupportedLanguages returns the detected languages that have a skillset or
// a replace override, most prevalent first.
func (e *Engine) SupportedLanguages(info *scanner.ProjectInfo) []string {
	if info == nil {
		return nil
	}
	var keys []string
	for _, k := range info.LanguageKeys() {
		if e.Supports(k) {
			keys = append(keys, e.languageKey(k, nil))
		}
	}
	return keys
}

// Supports reports whether language has a skillset or a replace override.
func (e *Engine) Supports(language string) bool {
	_, _, err := e.resolve(language)
	return err == nil
}

// resolve returns the built-in skillset (nil for a custom language) and the
// override resolution for language.
func (e *Engine) resolve(language string) (*skillset.Skillset, *override.Resolved, error) {
	base, err := e.store.Get(language)
	if err != nil && !errors.Is(err, skillset.ErrUnknownLanguage) {
		return nil, nil, err
	}
	key := e.languageKey(language, base)
	ov := e.overrides.For(key)
	if base == nil && ov == nil {
		return nil, nil, err
	}
	resolved, rerr := override.Resolve(base, ov)
	if rerr != nil {
		return nil, nil, rerr
	}
	return base, resolved, nil
}

func (e *Engine) languageKey(language string, base *skillset.Skillset) string {
	if base != nil {
		return base.Key
	}
	k, _ := e.store.Resolve(language)
	return k
}

// selectSections resolves the effective section set in canonical order,
// dropping sections with no body at the requested tier.
func (e *Engine) selectSections(sk *skillset.Skillset, req Request) ([]*skillset.Section, error) {
	want := make(map[string]bool)
	for _, name := range req.Sections {
		canonical, err := skillset.CanonicalSection(name)
		if err != nil {
			return nil, err
		}
		if _, ok := sk.Section(canonical); !ok {
			e.logger.WithFields(logrus.Fields{
				"language": sk.Key,
				"section":  canonical,
			}).Debug("Section not defined for language, omitted")
			continue
		}
		want[canonical] = true
	}

	if len(req.Sections) == 0 {
		for _, sec := range sk.Sections {
			if sec.Relevance.AlwaysOnAt(req.Size) {
				want[sec.Name] = true
			}
		}
	}

	if req.Smart && req.Scan != nil {
		for _, sec := range sk.Sections {
			if !want[sec.Name] && sec.Relevance.Matches(req.Scan) {
				e.logger.WithFields(logrus.Fields{
					"language": sk.Key,
					"section":  sec.Name,
				}).Debug("Section selected by project scan")
				want[sec.Name] = true
			}
		}
	}

	var out []*skillset.Section
	for i := range sk.Sections {
		sec := &sk.Sections[i]
		if !want[sec.Name] {
			continue
		}
		if _, ok := sec.Body(req.Size); !ok {
			e.logger.WithFields(logrus.Fields{
				"language": sk.Key,
				"section":  sec.Name,
				"tier":     req.Size,
			}).Debug("Section has no body at tier, omitted")
			continue
		}
		out = append(out, sec)
	}
	return out, nil
}

func (e *Engine) render(text string, vars map[string]string) string {
	if missing := template.Unresolved(text, vars); len(missing) > 0 {
		e.logger.WithField("variables", missing).Warn("Unresolved template variables in override text")
	}
	return template.Render(text, vars)
}

// join concatenates non-empty blocks with a blank line and ends the text
// with a single newline.
func join(blocks []string) string {
	var kept []string
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n\n") + "\n"
}
