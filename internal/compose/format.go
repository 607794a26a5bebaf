package compose

import (
	"fmt"
	"regexp"
	"strings"
)

// Format is the text flavor of a composed document.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
)

// ParseFormat resolves a format name. Empty means markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "plain", "text", "txt":
		return FormatPlain, nil
	}
	return "", fmt.Errorf("unknown format %q (expected markdown or plain)", s)
}

var (
	headingPrefix = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	boldMarker    = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Apply renders text in format f. Plain output drops heading markers and
// bold emphasis; code blocks are kept as written.
func (f Format) Apply(text string) string {
	if f != FormatPlain {
		return text
	}
	var out []string
	inFence := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if !inFence {
			line = headingPrefix.ReplaceAllString(line, "")
			line = boldMarker.ReplaceAllString(line, "$1")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
