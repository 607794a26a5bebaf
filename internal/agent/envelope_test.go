package agent

import (
	"errors"
	"strings"
	"testing"
)

var roundTripDocs = []string{
	"",
	"single line",
	"## Role: Developer\n\nBody text\n",
	"trailing blank lines\n\n\n",
	"contains <!-- END --> and </instructions> inside\n",
	"---\nlooks like frontmatter\n---\n",
}

func TestEnvelopes_RoundTrip(t *testing.T) {
	envelopes := map[string]Envelope{
		"markers": Markers(Generated("Test", "promptctl init test"), "START", "END"),
		"tag":     Tag(Generated("Test", "promptctl init test"), "instructions"),
		"bare":    Tag(nil, "x"),
		"frontmatter": Frontmatter{Fields: []Field{
			{Key: "description", Value: `Guidelines with "quotes": and colons`},
			{Key: "globs", Value: "**/*.rs,**/*.go"},
			{Key: "alwaysApply", Value: true},
		}},
	}

	for name, env := range envelopes {
		for _, doc := range roundTripDocs {
			got, err := env.Unwrap(env.Wrap(doc))
			if err != nil {
				t.Errorf("%s: Unwrap(Wrap(%q)) error = %v", name, doc, err)
				continue
			}
			if got != doc {
				t.Errorf("%s: Unwrap(Wrap(%q)) = %q", name, doc, got)
			}
		}
	}
}

func TestBlock_Layout(t *testing.T) {
	b := Markers([]string{"<!-- header -->"}, "START", "END")
	got := b.Wrap("body\n")
	want := "<!-- header -->\n\n<!-- START -->\nbody\n\n<!-- END -->\n"
	if got != want {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}

	first, end := b.Bounds()
	if first != "<!-- header -->" || end != "<!-- END -->" {
		t.Errorf("Bounds() = %q, %q", first, end)
	}
}

func TestBlock_UnwrapMalformed(t *testing.T) {
	b := Tag(nil, "instructions")
	for _, text := range []string{"", "no tags", "<instructions>\nunterminated", "</instructions>\n<instructions>\n"} {
		if _, err := b.Unwrap(text); !errors.Is(err, ErrMalformed) {
			t.Errorf("Unwrap(%q) error = %v, want ErrMalformed", text, err)
		}
	}
}

func TestFrontmatter_Layout(t *testing.T) {
	fm := Frontmatter{Fields: []Field{
		{Key: "description", Value: "Rust rules"},
		{Key: "globs", Value: ""},
		{Key: "alwaysApply", Value: false},
	}}
	got := fm.Wrap("body")

	if !strings.HasPrefix(got, "---\ndescription: \"Rust rules\"\nglobs: \"\"\nalwaysApply: false\n---\n\nbody") {
		t.Errorf("Wrap() = %q", got)
	}
	if _, err := fm.Unwrap("body"); !errors.Is(err, ErrMalformed) {
		t.Errorf("Unwrap(no frontmatter) error = %v, want ErrMalformed", err)
	}
}
