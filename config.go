package xqregex

// Config controls resource limits of compiled patterns.
//
// Example:
//
//	config := xqregex.DefaultConfig()
//	config.MaxBacktracks = 100_000
//	re, err := xqregex.CompileWithConfig(`(a|aa)*b`, 0, config)
type Config struct {
	// MaxBacktracks bounds the number of times a match attempt at one
	// start position may resume from a choice point inside the pattern.
	// Advancing to the next start position is not counted. A match
	// exceeding it fails with ErrBacktrackLimit. Zero disables the limit.
	// Default: 10,000,000
	MaxBacktracks int

	// CacheSize is the number of compiled patterns kept by a Cache.
	// Default: 256
	CacheSize int

	// EnablePrefilter enables rejecting inputs that lack a literal
	// required by the pattern before running the matcher.
	// Default: true
	EnablePrefilter bool

	// MinPrefilterLen is the minimum length, in code points, of the
	// shortest required literal for the prefilter to be used.
	// Default: 2
	MinPrefilterLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxBacktracks:   10_000_000,
		CacheSize:       256,
		EnablePrefilter: true,
		MinPrefilterLen: 2,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxBacktracks: 0 or more
//   - CacheSize: 1 to 1,000,000
//   - MinPrefilterLen: 1 to 64
func (c Config) Validate() error {
	if c.MaxBacktracks < 0 {
		return &ConfigError{
			Field:   "MaxBacktracks",
			Message: "must not be negative",
		}
	}
	if c.CacheSize < 1 || c.CacheSize > 1_000_000 {
		return &ConfigError{
			Field:   "CacheSize",
			Message: "must be between 1 and 1,000,000",
		}
	}
	if c.EnablePrefilter {
		if c.MinPrefilterLen < 1 || c.MinPrefilterLen > 64 {
			return &ConfigError{
				Field:   "MinPrefilterLen",
				Message: "must be between 1 and 64",
			}
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "xqregex: invalid config: " + e.Field + ": " + e.Message
}
