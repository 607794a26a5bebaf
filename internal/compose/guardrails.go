package compose

import (
	"strings"

	"github.com/debendraoli/promptctl/internal/skillset"
)

// GenericGuardrails is the language-independent hallucination guardrail block.
const GenericGuardrails = `## Hallucination Prevention

- **Never invent APIs, functions or types** that do not exist in the language or library version in use.
- **Never fabricate package or module names**. Only reference dependencies that are documented and published.
- **Say so when unsure** whether a feature exists instead of guessing, and point to the official docs.
- **Pin to the language version** declared in project config (go.mod, Cargo.toml, package.json and similar).
- **Do not invent CLI flags, compiler options or toolchain features** for the version in use.
- **Verify struct fields, enum variants and interface methods** before referencing them.
- **Only suggest dependencies** you are confident exist and are maintained.
- **Prefer the standard library** when it provides equivalent functionality.
- **Quote error messages exactly** when referring to compiler or runtime errors.`

// guardrailBlock returns the generic guardrails followed by the language
// guardrails of sk, if any.
func guardrailBlock(sk *skillset.Skillset) string {
	if sk == nil || strings.TrimSpace(sk.Guardrails) == "" {
		return GenericGuardrails
	}
	return GenericGuardrails + "\n" + sk.Guardrails
}

// languageGuardrails returns only the language guardrails of sk under their
// own heading.
func languageGuardrails(sk *skillset.Skillset) string {
	if sk == nil || strings.TrimSpace(sk.Guardrails) == "" {
		return ""
	}
	return "## " + sk.Name + " Guardrails\n\n" + sk.Guardrails
}
