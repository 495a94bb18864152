package config

import "github.com/yaklabco/brackettree/pkg/bracketast"

// AssembleOptions converts the configuration into tree assembly options.
// Unknown policies fall back to keeping the opener as a bracket.
func (c *Config) AssembleOptions() bracketast.AssembleOptions {
	if c == nil {
		return bracketast.AssembleOptions{}
	}

	opts := bracketast.AssembleOptions{
		OpenPolicy:   bracketast.OpenAsBracket,
		CoalesceText: c.Coalesce(),
	}
	if c.OpenPolicy == OpenPolicyText {
		opts.OpenPolicy = bracketast.OpenAsText
	}

	return opts
}
