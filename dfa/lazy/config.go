package lazy

// Config configures the transition cache of a lazy DFA.
type Config struct {
	// InitialStateCapacity is the number of states the transition table is
	// sized for before its first growth. The table doubles whenever a new
	// state does not fit; it never shrinks.
	//
	// Default: 64 states
	InitialStateCapacity int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		InitialStateCapacity: 64,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.InitialStateCapacity <= 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "InitialStateCapacity must be > 0",
		}
	}
	return nil
}

// WithInitialStateCapacity returns a new config with the specified capacity
func (c Config) WithInitialStateCapacity(n int) Config {
	c.InitialStateCapacity = n
	return c
}
