package agent

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownAgent is returned when a name matches no registered profile.
var ErrUnknownAgent = errors.New("unknown agent")

var (
	registry     = make(map[string]func() Profile)
	aliases      = make(map[string]string)
	registryLock sync.RWMutex
)

// Register adds a profile factory to the registry under name and every
// alias the profile reports.
func Register(name string, factory func() Profile) {
	registryLock.Lock()
	defer registryLock.Unlock()

	name = strings.ToLower(name)
	registry[name] = factory
	for _, a := range factory().Aliases() {
		aliases[strings.ToLower(a)] = name
	}
}

// Get retrieves a profile by name or alias, case-insensitively.
func Get(name string) (Profile, error) {
	registryLock.RLock()
	defer registryLock.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	factory, ok := registry[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, name)
	}
	return factory(), nil
}

// List returns all registered profile names, sorted.
func List() []string {
	registryLock.RLock()
	defer registryLock.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exists checks if a name or alias is registered.
func Exists(name string) bool {
	_, err := Get(name)
	return err == nil
}
