package logging

// Config tunes the router and its sinks.
type Config struct {
	EnabledSinks    []string
	BufferSize      int
	MinimumSeverity Severity
	JSON            JSONConfig
}

// JSONConfig tunes the JSON file sink.
type JSONConfig struct {
	FilePath string
}

// DefaultConfig enables the console sink at info severity.
func DefaultConfig() Config {
	return Config{
		EnabledSinks:    []string{"console"},
		BufferSize:      512,
		MinimumSeverity: SeverityInfo,
	}
}

// HasSink reports whether the named sink is enabled.
func (c Config) HasSink(name string) bool {
	for _, s := range c.EnabledSinks {
		if s == name {
			return true
		}
	}
	return false
}
