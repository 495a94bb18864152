// Package config defines core configuration types for brackettree.
// These types are pure data structures with no dependency on how they are loaded.
package config

// OpenPolicy names what an opening bracket without a partner becomes.
type OpenPolicy string

const (
	// OpenPolicyBracket keeps the opener as a standalone bracket leaf.
	OpenPolicyBracket OpenPolicy = "bracket"

	// OpenPolicyText turns the opener into plain text.
	OpenPolicyText OpenPolicy = "text"
)

// IsValid returns true if the policy is known.
func (p OpenPolicy) IsValid() bool {
	switch p {
	case OpenPolicyBracket, OpenPolicyText:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how trees and scopes are printed.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	return f == FormatText || f == FormatJSON
}

// Config is the root configuration structure for brackettree.
type Config struct {
	// OpenPolicy handles opening brackets that are never closed.
	OpenPolicy OpenPolicy `yaml:"open_policy"`

	// CoalesceText merges adjacent text tokens into one leaf.
	// Nil means "not set" so that a lower-precedence source can decide.
	CoalesceText *bool `yaml:"coalesce_text,omitempty"`

	// MaxScopes caps how many enclosing scopes are reported, innermost kept.
	// Zero means unlimited.
	MaxScopes int `yaml:"max_scopes"`

	// PairsOnly restricts scope reports to bracket pairs.
	PairsOnly bool `yaml:"pairs_only"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	coalesce := true
	return &Config{
		OpenPolicy:   OpenPolicyBracket,
		CoalesceText: &coalesce,
		MaxScopes:    0,
		PairsOnly:    false,
		Format:       FormatText,
	}
}

// Coalesce reports the effective CoalesceText value, false when unset.
func (c *Config) Coalesce() bool {
	return c != nil && c.CoalesceText != nil && *c.CoalesceText
}
