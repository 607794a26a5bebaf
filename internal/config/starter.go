package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

const starterHeader = `# promptctl configuration
# Overrides are keyed by language; mode is one of replace, prepend, append, merge.
# Run "promptctl config schema" for the full schema.
`

// Starter returns the configuration written by "config init".
func Starter(agentName string) *Config {
	if agentName == "" {
		agentName = "claude"
	}
	return &Config{
		DefaultAgent: agentName,
		Defaults: DefaultsConfig{
			Role:  "developer",
			Size:  "compact",
			Smart: true,
		},
		Overrides: map[string]OverrideConfig{
			"go": {
				Mode:   "append",
				Append: "## Team Conventions\n\n- Wrap errors with context using `fmt.Errorf(\"...: %w\", err)`\n",
			},
		},
		Variables: map[string]string{
			"team": "platform",
		},
	}
}

// Marshal encodes cfg as commented YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(starterHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteStarter writes the starter config to path. An existing file is kept
// unless force is set.
func WriteStarter(path, agentName string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}
	data, err := Marshal(Starter(agentName))
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// Schema returns the JSON schema of the config file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "promptctl configuration"
	schema.Description = "Configuration schema for .promptctl.yaml."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
