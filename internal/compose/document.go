package compose

import "github.com/debendraoli/promptctl/internal/skillset"

// Document is a fully composed guideline document.
type Document struct {
	Text     string
	Language string
	Role     string
	Size     skillset.Tier
	// Sections lists the emitted section names in output order.
	Sections []string
	// FellBack is set when the selection came up empty and the minimum
	// viable section was used instead.
	FellBack bool
	// Replaced is set when a replace override supplied the content.
	Replaced bool
}

// EstimatedTokens approximates the token count of the document.
func (d *Document) EstimatedTokens() int {
	return EstimateTokens(d.Text)
}

// EstimateTokens approximates a token count at four bytes per token.
func EstimateTokens(s string) int {
	return len(s) / 4
}
