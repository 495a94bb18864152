package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML format.
// It produces human-readable output with appropriate formatting.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes.
// Unknown fields are rejected so that typos surface as errors.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// A document with no content decodes to EOF.
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.CoalesceText != nil {
		coalesce := *c.CoalesceText
		clone.CoalesceText = &coalesce
	}

	return &clone
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}

// configHeader is prepended to configuration files written by brackettree.
const configHeader = `# brackettree configuration
# open_policy: what an unmatched opening bracket becomes (bracket | text)
# coalesce_text: merge adjacent text tokens into one leaf
# max_scopes: cap on reported enclosing scopes, innermost kept (0 = unlimited)
# pairs_only: report only bracket pairs as scopes

`

// ToYAMLWithHeader serializes the configuration with an explanatory comment header.
func (c *Config) ToYAMLWithHeader() ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	return append([]byte(configHeader), body...), nil
}
