package configloader

import (
	"fmt"

	"github.com/yaklabco/brackettree/pkg/config"
)

// ValidationError is a configuration value that cannot be used. FilePath is
// set when the value came from a config file.
type ValidationError struct {
	Field    string
	Value    any
	Message  string
	FilePath string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.FilePath != "" {
		msg = e.FilePath + ": " + msg
	}
	return msg
}

// ValidationResult holds the problems found in one configuration. Errors stop
// loading; warnings are shown to the user.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns the first error, or nil when the configuration is valid.
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	return &r.Errors[0]
}

type check struct {
	field   string
	warning bool
	// test returns the offending value and a message, or an empty message.
	test func(cfg *config.Config) (any, string)
}

//nolint:gochecknoglobals // Read-only lookup table.
var checks = []check{
	{field: "open_policy", test: func(cfg *config.Config) (any, string) {
		if cfg.OpenPolicy == "" || cfg.OpenPolicy.IsValid() {
			return nil, ""
		}
		return cfg.OpenPolicy, fmt.Sprintf("invalid open policy %q; must be one of: bracket, text", cfg.OpenPolicy)
	}},
	{field: "format", test: func(cfg *config.Config) (any, string) {
		if cfg.Format == "" || cfg.Format.IsValid() {
			return nil, ""
		}
		return cfg.Format, fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format)
	}},
	{field: "max_scopes", test: func(cfg *config.Config) (any, string) {
		if cfg.MaxScopes >= 0 {
			return nil, ""
		}
		return cfg.MaxScopes, "max_scopes must be >= 0 (0 means unlimited)"
	}},
	{field: "open_policy", warning: true, test: func(cfg *config.Config) (any, string) {
		if cfg.OpenPolicy != config.OpenPolicyText || cfg.Coalesce() {
			return nil, ""
		}
		return cfg.OpenPolicy, "open_policy text without coalesce_text leaves unmatched openers as separate text leaves"
	}},
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWithFile(cfg, "")
}

// ValidateWithFile validates a configuration read from filePath and records
// the path on every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	for _, c := range checks {
		value, message := c.test(cfg)
		if message == "" {
			continue
		}
		finding := ValidationError{Field: c.field, Value: value, Message: message, FilePath: filePath}
		if c.warning {
			result.Warnings = append(result.Warnings, finding)
		} else {
			result.Errors = append(result.Errors, finding)
		}
	}
	return result
}
