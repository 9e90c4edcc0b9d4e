package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Start: nil,
		Output: OutputConfig{
			Path: "",
			Gzip: false,
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	// Start names: use loaded if provided, otherwise defaults
	if len(loaded.Start) > 0 {
		result.Start = loaded.Start
	} else {
		result.Start = defaults.Start
	}

	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	// Path: use loaded if non-empty
	if loaded.Path != "" {
		result.Path = loaded.Path
	} else {
		result.Path = defaults.Path
	}

	// Gzip: use loaded value (bool can't distinguish unset from false);
	// users who want the default off will simply not set it
	result.Gzip = loaded.Gzip || defaults.Gzip

	return result
}
