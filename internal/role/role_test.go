package role

import (
	"errors"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "developer"},
		{"dev", "developer"},
		{"Architect", "senior"},
		{"cr", "reviewer"},
		{"SEC", "security"},
		{"audit", "security"},
		{"optimize", "performance"},
		{"writer", "documentation"},
		{"pair", "mentor"},
		{"ci", "devops"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := Get(tt.input)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.input, err)
			}
			if r.Name != tt.want {
				t.Errorf("Get(%q).Name = %q, want %q", tt.input, r.Name, tt.want)
			}
		})
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("wizard")
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("Get(wizard) error = %v, want ErrUnknownRole", err)
	}
}

func TestList_Personas(t *testing.T) {
	roles := List()
	if len(roles) != 8 {
		t.Fatalf("len(List()) = %d, want 8", len(roles))
	}

	seen := make(map[string]string)
	for _, r := range roles {
		if !strings.HasPrefix(r.Persona, "## Role: ") {
			t.Errorf("role %s persona should start with a role heading, got %q", r.Name, firstLine(r.Persona))
		}
		if r.Description == "" {
			t.Errorf("role %s has no description", r.Name)
		}
		for _, key := range append([]string{r.Name}, r.Aliases...) {
			if owner, dup := seen[key]; dup {
				t.Errorf("name %q claimed by both %s and %s", key, owner, r.Name)
			}
			seen[key] = r.Name
		}
	}

	if Names()[0] != Default {
		t.Errorf("Names()[0] = %q, want default role first", Names()[0])
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	roles := List()
	roles[0].Name = "mutated"
	if r, _ := Get(""); r.Name != Default {
		t.Error("mutating List() result must not affect the registry")
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
