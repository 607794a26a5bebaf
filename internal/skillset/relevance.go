package skillset

import (
	"fmt"
	"slices"
	"strings"

	"github.com/debendraoli/promptctl/internal/scanner"
)

// Signal is a single scan-fact check drawn from a closed set.
type Signal string

const (
	SignalAsync        Signal = "async"
	SignalTests        Signal = "tests"
	SignalDocs         Signal = "docs"
	SignalCI           Signal = "ci"
	SignalLargeProject Signal = "large-project"

	frameworkPrefix = "framework:"
)

// FrameworkSignal builds a signal matching a single framework tag.
func FrameworkSignal(tag string) Signal {
	return Signal(frameworkPrefix + strings.ToLower(tag))
}

// asyncFrameworks are the framework tags that imply an async runtime.
var asyncFrameworks = []string{"tokio", "async-std", "actix-web", "axum"}

// ParseSignal validates a signal name.
func ParseSignal(s string) (Signal, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Signal(s) {
	case SignalAsync, SignalTests, SignalDocs, SignalCI, SignalLargeProject:
		return Signal(s), nil
	}
	if tag, ok := strings.CutPrefix(s, frameworkPrefix); ok && tag != "" {
		return Signal(s), nil
	}
	return "", fmt.Errorf("unknown relevance signal %q", s)
}

// Matches reports whether the scan result satisfies the signal.
func (s Signal) Matches(scan *scanner.ScanResult) bool {
	if scan == nil {
		return false
	}
	switch s {
	case SignalAsync:
		return slices.ContainsFunc(asyncFrameworks, scan.HasFramework)
	case SignalTests:
		return scan.HasTests
	case SignalDocs:
		return scan.HasDocs
	case SignalCI:
		return scan.HasCI
	case SignalLargeProject:
		return scan.Size != "" && scan.Size != scanner.SizeSmall
	}
	if tag, ok := strings.CutPrefix(string(s), frameworkPrefix); ok {
		return scan.HasFramework(tag)
	}
	return false
}

// Relevance decides when a section is selected without being asked for.
type Relevance struct {
	// AlwaysOn lists the tiers at which the section is part of the default set.
	AlwaysOn []Tier
	// When lists scan signals; any match pulls the section in under smart
	// selection.
	When []Signal
}

// AlwaysOnAt reports whether the section is on by default at tier t.
func (r Relevance) AlwaysOnAt(t Tier) bool {
	return slices.Contains(r.AlwaysOn, t)
}

// Matches reports whether any signal matches the scan result.
func (r Relevance) Matches(scan *scanner.ScanResult) bool {
	for _, s := range r.When {
		if s.Matches(scan) {
			return true
		}
	}
	return false
}
