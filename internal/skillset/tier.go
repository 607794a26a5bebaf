package skillset

import (
	"fmt"
	"strings"
)

// Tier is a coarse size level controlling which section bodies are included.
type Tier int

const (
	Minimal Tier = iota
	Compact
	Full
)

// Tiers lists every tier from smallest to largest.
var Tiers = []Tier{Minimal, Compact, Full}

var tierAliases = map[string]Tier{
	"minimal":  Minimal,
	"min":      Minimal,
	"tiny":     Minimal,
	"small":    Minimal,
	"compact":  Compact,
	"medium":   Compact,
	"default":  Compact,
	"full":     Full,
	"large":    Full,
	"complete": Full,
	"all":      Full,
}

// ParseTier resolves a tier name or alias, case-insensitively.
func ParseTier(s string) (Tier, error) {
	t, ok := tierAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Compact, fmt.Errorf("unknown size %q (expected minimal, compact or full)", s)
	}
	return t, nil
}

// String returns the canonical tier name.
func (t Tier) String() string {
	switch t {
	case Minimal:
		return "minimal"
	case Compact:
		return "compact"
	case Full:
		return "full"
	}
	return fmt.Sprintf("tier(%d)", int(t))
}

// Budget is the approximate token budget of the tier. It is a selection
// heuristic only and is never enforced.
func (t Tier) Budget() int {
	switch t {
	case Minimal:
		return 500
	case Compact:
		return 1500
	default:
		return 3000
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
