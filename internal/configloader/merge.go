package configloader

import "github.com/yaklabco/brackettree/pkg/config"

// merge returns base with every field override sets applied on top. Zero
// scalars and nil pointers in override leave base alone, so pairs_only can
// only be switched on by a later layer.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base
	setIfNonZero(&result.OpenPolicy, override.OpenPolicy)
	setIfNonZero(&result.Format, override.Format)
	setIfNonZero(&result.MaxScopes, override.MaxScopes)
	setIfNonZero(&result.PairsOnly, override.PairsOnly)
	if override.CoalesceText != nil {
		coalesce := *override.CoalesceText
		result.CoalesceText = &coalesce
	}
	return &result
}

func setIfNonZero[T comparable](dst *T, value T) {
	var zero T
	if value != zero {
		*dst = value
	}
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	var result *config.Config
	for _, cfg := range configs {
		result = merge(result, cfg)
	}
	return result
}
