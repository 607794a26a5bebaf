package claude

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/debendraoli/promptctl/internal/agent"
)

// marker is the command path prefix of every hook script promptctl installs.
const marker = HooksDir + "/" + agent.HookPrefix

type hookEntry struct {
	event string
	entry map[string]any
}

func promptctlHooks() []hookEntry {
	return []hookEntry{
		{
			event: "SessionStart",
			entry: map[string]any{
				"matcher": "startup",
				"hooks": []any{map[string]any{
					"type":          "command",
					"command":       `"$CLAUDE_PROJECT_DIR"/` + HooksDir + "/" + sessionStartScript,
					"statusMessage": "Loading promptctl guidelines...",
				}},
			},
		},
		{
			event: "PreToolUse",
			entry: map[string]any{
				"matcher": "Write|Edit",
				"hooks": []any{map[string]any{
					"type":    "command",
					"command": `"$CLAUDE_PROJECT_DIR"/` + HooksDir + "/" + preWriteScript,
				}},
			},
		},
	}
}

// MergeSettings adds the promptctl hook entries to existing settings JSON.
// Events that already hold a promptctl entry are left alone, and every
// other setting is preserved.
func MergeSettings(existing []byte) ([]byte, error) {
	root, err := parseSettings(existing)
	if err != nil {
		return nil, err
	}

	hooks, _ := root["hooks"].(map[string]any)
	if hooks == nil {
		hooks = make(map[string]any)
	}
	for _, h := range promptctlHooks() {
		entries, _ := hooks[h.event].([]any)
		if ownsAny(entries) {
			continue
		}
		hooks[h.event] = append(entries, h.entry)
	}
	root["hooks"] = hooks

	return encodeSettings(root)
}

// RemoveSettings strips promptctl hook entries from settings JSON, dropping
// events and the hooks object once they are empty.
func RemoveSettings(existing []byte) ([]byte, error) {
	root, err := parseSettings(existing)
	if err != nil {
		return nil, err
	}

	if hooks, ok := root["hooks"].(map[string]any); ok {
		for event, v := range hooks {
			entries, ok := v.([]any)
			if !ok {
				continue
			}
			kept := entries[:0]
			for _, e := range entries {
				if !owns(e) {
					kept = append(kept, e)
				}
			}
			if len(kept) == 0 {
				delete(hooks, event)
			} else {
				hooks[event] = kept
			}
		}
		if len(hooks) == 0 {
			delete(root, "hooks")
		}
	}

	return encodeSettings(root)
}

func parseSettings(data []byte) (map[string]any, error) {
	root := make(map[string]any)
	if len(bytes.TrimSpace(data)) == 0 {
		return root, nil
	}
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse Claude settings: %w", err)
	}
	if root == nil {
		root = make(map[string]any)
	}
	return root, nil
}

func encodeSettings(root map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("failed to encode Claude settings: %w", err)
	}
	return buf.Bytes(), nil
}

// owns reports whether a hook entry runs one of the promptctl hook scripts.
func owns(v any) bool {
	entry, _ := v.(map[string]any)
	hooks, _ := entry["hooks"].([]any)
	for _, h := range hooks {
		hook, _ := h.(map[string]any)
		if cmd, _ := hook["command"].(string); strings.Contains(cmd, marker) {
			return true
		}
	}
	return false
}

func ownsAny(entries []any) bool {
	for _, e := range entries {
		if owns(e) {
			return true
		}
	}
	return false
}
