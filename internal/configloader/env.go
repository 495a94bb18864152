package configloader

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/brackettree/pkg/config"
)

// EnvVar describes an environment variable that overrides a config field.
type EnvVar struct {
	Name        string
	Description string
}

type envBinding struct {
	EnvVar
	apply func(cfg *config.Config, value string) error
}

// envBindings are applied in order. An unset or empty variable is skipped.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envBindings = []envBinding{
	{
		EnvVar{"BRACKETTREE_OPEN_POLICY", "Unmatched opening brackets become: bracket or text"},
		func(cfg *config.Config, value string) error {
			cfg.OpenPolicy = config.OpenPolicy(value)
			return nil
		},
	},
	{
		EnvVar{"BRACKETTREE_COALESCE_TEXT", "Merge adjacent text tokens: true or false"},
		boolSetter(func(cfg *config.Config, v bool) { cfg.CoalesceText = &v }),
	},
	{
		EnvVar{"BRACKETTREE_PAIRS_ONLY", "Report only bracket pairs as scopes: true or false"},
		boolSetter(func(cfg *config.Config, v bool) { cfg.PairsOnly = v }),
	},
	{
		EnvVar{"BRACKETTREE_MAX_SCOPES", "Maximum number of scopes reported (0 = unlimited)"},
		func(cfg *config.Config, value string) error {
			n, err := strconv.Atoi(value)
			if err != nil {
				return errors.New("expected an integer")
			}
			cfg.MaxScopes = n
			return nil
		},
	},
	{
		EnvVar{"BRACKETTREE_FORMAT", "Output format: text or json"},
		func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
}

func boolSetter(set func(cfg *config.Config, v bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return errors.New("expected true, false, 1 or 0")
		}
		set(cfg, v)
		return nil
	}
}

// LoadFromEnv applies BRACKETTREE_* overrides to cfg. A value that cannot be
// parsed is reported as a *ValidationError whose Field is the variable name.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, binding := range envBindings {
		value := os.Getenv(binding.Name)
		if value == "" {
			continue
		}
		if err := binding.apply(cfg, value); err != nil {
			return &ValidationError{
				Field:   binding.Name,
				Value:   value,
				Message: fmt.Sprintf("%q: %v", value, err),
			}
		}
	}
	return nil
}

// ListEnvVars returns the supported environment variables in the order they
// are applied.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, len(envBindings))
	for i, binding := range envBindings {
		vars[i] = binding.EnvVar
	}
	return vars
}
