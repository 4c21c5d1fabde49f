// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers an optional YAML file and env vars on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration for one pipeline run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Input is the path of the opportunity-contract CSV to read.
	Input string `koanf:"input"`

	// Output is the path of the summary CSV to write.
	Output string `koanf:"output"`

	// SortBy selects output order: name, location, department,
	// opportunity_count (aliases: city, opportunity).
	SortBy string `koanf:"sort_by"`

	// FieldPolicy resolves conflicting contact fields across duplicate
	// rows: first_wins or last_wins.
	FieldPolicy string `koanf:"field_policy"`

	// DedupeTitles collapses identical opportunity titles per POC.
	DedupeTitles bool `koanf:"dedupe_titles"`

	// ListDelimiter joins multi-valued output fields.
	ListDelimiter string `koanf:"list_delimiter"`

	// MaxNameTokens bounds how many words a name may have before the row
	// is treated as free text and dropped.
	MaxNameTokens int `koanf:"max_name_tokens"`

	// MetricsEnabled toggles pipeline instrumentation.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		Input:          "POC_LIST.csv",
		Output:         "processed_contacts.csv",
		SortBy:         "name",
		FieldPolicy:    "first_wins",
		DedupeTitles:   true,
		ListDelimiter:  "; ",
		MaxNameTokens:  4,
		MetricsEnabled: true,
	}
}
