// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"
	FieldLanguage   = "language"

	// Configuration fields.
	FieldOpenPolicy   = "open_policy"
	FieldCoalesceText = "coalesce_text"
	FieldMaxScopes    = "max_scopes"
	FieldPairsOnly    = "pairs_only"
	FieldConfigFiles  = "config_files"

	// Tree statistics fields.
	FieldTokens         = "tokens"
	FieldNodes          = "nodes"
	FieldLength         = "length"
	FieldHeight         = "height"
	FieldUnmatchedOpen  = "unmatched_open"
	FieldUnmatchedClose = "unmatched_close"
	FieldRegions        = "regions"

	// Lookup fields.
	FieldOffset = "offset"
	FieldScopes = "scopes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
