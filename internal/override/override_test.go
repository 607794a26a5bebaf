package override

import (
	"errors"
	"testing"

	"github.com/debendraoli/promptctl/internal/skillset"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"replace", ModeReplace, false},
		{"PREPEND", ModePrepend, false},
		{" append ", ModeAppend, false},
		{"merge", ModeMerge, false},
		{"", ModeMerge, false},
		{"overwrite", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("error = %v, want ErrConfiguration", err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolve_NilOverride(t *testing.T) {
	base := skillset.MustNewStore()
	sk, _ := base.Get("go")

	r, err := Resolve(sk, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if r.Skillset != sk || r.Replaced || r.Prepend != "" || r.Append != "" {
		t.Errorf("Resolve(sk, nil) = %+v, want pass-through", r)
	}
}

func TestResolve_Modes(t *testing.T) {
	sk, _ := skillset.MustNewStore().Get("rust")

	tests := []struct {
		name        string
		ov          Override
		wantPrepend string
		wantAppend  string
	}{
		{
			name:        "prepend ignores append and content",
			ov:          Override{Language: "rust", Mode: ModePrepend, Content: "c", Prepend: "P", Append: "A"},
			wantPrepend: "P",
		},
		{
			name:       "append ignores prepend and content",
			ov:         Override{Language: "rust", Mode: ModeAppend, Content: "c", Prepend: "P", Append: "A"},
			wantAppend: "A",
		},
		{
			name:        "merge uses both",
			ov:          Override{Language: "rust", Mode: ModeMerge, Prepend: "P", Append: "A"},
			wantPrepend: "P",
			wantAppend:  "A",
		},
		{
			name:       "merge defaults missing side to empty",
			ov:         Override{Language: "rust", Mode: ModeMerge, Append: "A"},
			wantAppend: "A",
		},
		{
			name:        "empty mode is merge",
			ov:          Override{Language: "rust", Prepend: "P"},
			wantPrepend: "P",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(sk, &tt.ov)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if r.Replaced {
				t.Error("Replaced = true, want false")
			}
			if r.Skillset != sk {
				t.Error("Skillset should be the base skillset")
			}
			if r.Prepend != tt.wantPrepend || r.Append != tt.wantAppend {
				t.Errorf("Prepend/Append = %q/%q, want %q/%q", r.Prepend, r.Append, tt.wantPrepend, tt.wantAppend)
			}
		})
	}
}

func TestResolve_Replace(t *testing.T) {
	sk, _ := skillset.MustNewStore().Get("go")
	ov := &Override{Language: "go", Mode: ModeReplace, Content: "  Just write Go.\n", Prepend: "ignored"}

	r, err := Resolve(sk, ov)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !r.Replaced || r.Content != "Just write Go." || r.Skillset != nil || r.Prepend != "" {
		t.Errorf("Resolve() = %+v, want replaced content only", r)
	}

	custom, err := Resolve(nil, &Override{Language: "zig", Mode: ModeReplace, Content: "Zig rules"})
	if err != nil {
		t.Fatalf("Resolve(nil, replace) error = %v", err)
	}
	if !custom.Replaced || custom.Content != "Zig rules" {
		t.Errorf("Resolve(nil, replace) = %+v", custom)
	}
}

func TestResolve_ConfigurationErrors(t *testing.T) {
	sk, _ := skillset.MustNewStore().Get("go")

	tests := []struct {
		name string
		base *skillset.Skillset
		ov   *Override
	}{
		{"prepend without skillset", nil, &Override{Language: "python", Mode: ModePrepend, Prepend: "Use type hints"}},
		{"merge without skillset", nil, &Override{Language: "python", Mode: ModeMerge, Append: "x"}},
		{"replace without content", sk, &Override{Language: "go", Mode: ModeReplace}},
		{"unknown mode", sk, &Override{Language: "go", Mode: "overwrite"}},
		{"nothing at all", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.base, tt.ov)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("Resolve() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := Set{}
	s.Add(&Override{Language: "Rust", Mode: ModeAppend, Append: "a"})
	s.Add(&Override{Language: "rust", Mode: ModeAppend, Append: "b"})

	if len(s) != 1 {
		t.Fatalf("len(Set) = %d, want 1", len(s))
	}
	if got := s.For("RUST"); got == nil || got.Append != "b" {
		t.Errorf("For(RUST) = %+v, want the last override", got)
	}
	if Set(nil).For("go") != nil {
		t.Error("nil set should return nil")
	}
}

func aliases(k string) (string, bool) {
	switch k {
	case "ts", "typescript":
		return "typescript", true
	case "golang", "go":
		return "go", true
	}
	return k, false
}

func TestSet_Canonical(t *testing.T) {
	s := Set{}
	s.Add(&Override{Language: "ts", Mode: ModeAppend, Append: "a"})
	s.Add(&Override{Language: "golang", Mode: ModePrepend, Prepend: "p"})
	s.Add(&Override{Language: "cobol", Mode: ModeReplace, Content: "c"})

	got, err := s.Canonical(aliases)
	if err != nil {
		t.Fatalf("Canonical() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if ov := got.For("typescript"); ov == nil || ov.Append != "a" {
		t.Errorf("For(typescript) = %+v, want the ts override", ov)
	}
	if ov := got.For("go"); ov == nil || ov.Prepend != "p" {
		t.Errorf("For(go) = %+v, want the golang override", ov)
	}
	if got.For("cobol") == nil {
		t.Error("unknown language should keep its key")
	}
	if got.For("ts") != nil {
		t.Error("alias key should not survive canonicalization")
	}
}

func TestSet_CanonicalDuplicate(t *testing.T) {
	s := Set{}
	s.Add(&Override{Language: "ts", Mode: ModeAppend, Append: "a"})
	s.Add(&Override{Language: "typescript", Mode: ModeAppend, Append: "b"})

	_, err := s.Canonical(aliases)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("Canonical() error = %v, want ErrConfiguration", err)
	}
}
