package agent

import (
	"errors"
	"testing"
)

// mockProfile implements Profile for testing
type mockProfile struct {
	name    string
	aliases []string
}

func (m *mockProfile) Name() string        { return m.name }
func (m *mockProfile) DisplayName() string { return "Mock" }
func (m *mockProfile) Aliases() []string   { return m.aliases }
func (m *mockProfile) ProjectPath() string { return "MOCK.md" }
func (m *mockProfile) GlobalPath() string  { return "" }
func (m *mockProfile) Envelope() Envelope  { return Tag(nil, "mock") }
func (m *mockProfile) Hooks() HookScheme   { return nil }

func withEmptyRegistry(t *testing.T) {
	t.Helper()
	origRegistry, origAliases := registry, aliases
	registry = make(map[string]func() Profile)
	aliases = make(map[string]string)
	t.Cleanup(func() {
		registry, aliases = origRegistry, origAliases
	})
}

func TestRegister(t *testing.T) {
	withEmptyRegistry(t)

	Register("Test-Agent", func() Profile {
		return &mockProfile{name: "test-agent", aliases: []string{"ta"}}
	})

	for _, name := range []string{"test-agent", "TEST-AGENT", "ta", " TA "} {
		p, err := Get(name)
		if err != nil {
			t.Errorf("Get(%q) returned error: %v", name, err)
			continue
		}
		if p.Name() != "test-agent" {
			t.Errorf("Get(%q).Name() = %q, want test-agent", name, p.Name())
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	_, err := Get("nonexistent-agent")
	if !errors.Is(err, ErrUnknownAgent) {
		t.Errorf("Get() error = %v, want ErrUnknownAgent", err)
	}
}

func TestExists(t *testing.T) {
	withEmptyRegistry(t)

	if Exists("not-registered") {
		t.Error("Exists() returned true for unregistered agent")
	}
	Register("registered", func() Profile { return &mockProfile{name: "registered", aliases: []string{"reg"}} })
	if !Exists("registered") || !Exists("reg") {
		t.Error("Exists() returned false for registered agent or alias")
	}
}

func TestList(t *testing.T) {
	withEmptyRegistry(t)

	if got := List(); len(got) != 0 {
		t.Errorf("List() returned %d agents, want 0", len(got))
	}

	Register("zeta", func() Profile { return &mockProfile{name: "zeta"} })
	Register("alpha", func() Profile { return &mockProfile{name: "alpha", aliases: []string{"a"}} })

	got := List()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("List() = %v, want [alpha zeta]", got)
	}
}

func TestFormat_NoGlobalPath(t *testing.T) {
	_, err := Format("doc\n", &mockProfile{name: "mock"}, true, "/home/u")
	if !errors.Is(err, ErrNoGlobalPath) {
		t.Errorf("Format(global) error = %v, want ErrNoGlobalPath", err)
	}

	out, err := Format("doc\n", &mockProfile{name: "mock"}, false, "/home/u")
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if out.Path != "MOCK.md" || out.Text != "<mock>\ndoc\n\n</mock>\n" {
		t.Errorf("Format() = %+v", out)
	}
}

func TestHookSchemeOf(t *testing.T) {
	if _, err := HookSchemeOf(&mockProfile{name: "mock"}); !errors.Is(err, ErrNoHookSupport) {
		t.Errorf("HookSchemeOf() error = %v, want ErrNoHookSupport", err)
	}
}
