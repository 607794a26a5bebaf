// Package security detects and masks secrets in generated instruction text.
package security

import (
	"regexp"
	"sort"
	"strings"
)

// Redacted replaces a masked secret value.
const Redacted = "***REDACTED***"

type pattern struct {
	kind string
	re   *regexp.Regexp
	// keep is the number of leading submatches preserved when masking.
	keep int
}

// Common patterns for credentials that must not end up in agent files
var sensitivePatterns = []pattern{
	{"github-token", regexp.MustCompile(`\b(gh[pousr]_)[a-zA-Z0-9]{36}\b`), 1},
	{"github-token", regexp.MustCompile(`\b(github_pat_)[a-zA-Z0-9]{22}_[a-zA-Z0-9]{59}\b`), 1},
	{"api-key", regexp.MustCompile(`(?i)\b((?:api[_-]?key|apikey|api[_-]?token|access[_-]?token|auth[_-]?token|secret[_-]?key|private[_-]?key)\s*[:=]\s*["']?)[a-zA-Z0-9_\-./+=]{20,}`), 1},
	{"aws-key", regexp.MustCompile(`\b(AKIA)[0-9A-Z]{16}\b`), 1},
	{"aws-key", regexp.MustCompile(`(?i)\b((?:aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?)[a-zA-Z0-9/+=]{20,}`), 1},
	{"bearer-token", regexp.MustCompile(`(?i)\b(bearer\s+)[a-zA-Z0-9_\-./+=]{20,}`), 1},
	{"jwt", regexp.MustCompile(`\beyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), 0},
	{"private-key", regexp.MustCompile(`-----BEGIN (?:[A-Z]+ )?PRIVATE KEY-----[\s\S]+?-----END (?:[A-Z]+ )?PRIVATE KEY-----`), 0},
	{"url-password", regexp.MustCompile(`\b((?:https?|ftp)://[^:/\s]+:)[^@\s]+(@)`), 2},
	{"password", regexp.MustCompile(`(?i)\b((?:password|passwd|pwd)\s*[:=]\s*["']?)[^\s"']{8,}`), 1},
}

// Finding is a secret detected in text.
type Finding struct {
	Kind string
	// Line is 1-based.
	Line int
}

// Scrubber finds and masks credentials in text
type Scrubber struct {
	patterns []pattern
}

// NewScrubber creates a new Scrubber with default patterns
func NewScrubber() *Scrubber {
	patterns := make([]pattern, len(sensitivePatterns))
	copy(patterns, sensitivePatterns)
	return &Scrubber{patterns: patterns}
}

// AddPattern adds a custom pattern; the whole match is masked.
func (s *Scrubber) AddPattern(kind string, re *regexp.Regexp) {
	s.patterns = append(s.patterns, pattern{kind: kind, re: re})
}

// Find reports every secret in input, ordered by line.
func (s *Scrubber) Find(input string) []Finding {
	var findings []Finding
	for _, p := range s.patterns {
		for _, loc := range p.re.FindAllStringIndex(input, -1) {
			findings = append(findings, Finding{
				Kind: p.kind,
				Line: strings.Count(input[:loc[0]], "\n") + 1,
			})
		}
	}
	sort.SliceStable(findings, func(i, j int) bool { return findings[i].Line < findings[j].Line })
	return findings
}

// ContainsSensitive checks if the input contains any sensitive patterns
func (s *Scrubber) ContainsSensitive(input string) bool {
	for _, p := range s.patterns {
		if p.re.MatchString(input) {
			return true
		}
	}
	return false
}

// Scrub masks every secret in input, keeping the key or prefix that
// identifies it.
func (s *Scrubber) Scrub(input string) string {
	scrubbed := input
	for _, p := range s.patterns {
		p := p
		scrubbed = p.re.ReplaceAllStringFunc(scrubbed, func(match string) string {
			sub := p.re.FindStringSubmatch(match)
			var b strings.Builder
			for i := 1; i <= p.keep && i < len(sub); i++ {
				if i == p.keep && p.keep > 1 {
					b.WriteString(Redacted)
				}
				b.WriteString(sub[i])
			}
			if p.keep <= 1 {
				b.WriteString(Redacted)
			}
			return b.String()
		})
	}
	return scrubbed
}
