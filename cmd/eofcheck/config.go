package main

import (
	"fmt"

	"github.com/eth2030/eofcheck/log"
)

// Config holds the resolved CLI configuration, mirroring the
// DefaultConfig/Validate split the rest of this codebase uses for its
// own configuration types.
type Config struct {
	// InputPath is a file to read hex-encoded bytecode from. Empty means
	// read from stdin instead.
	InputPath string

	// Hex is bytecode supplied directly as a flag, taking precedence over
	// InputPath and stdin when non-empty.
	Hex string

	// Verbosity follows the same 0-5 scale as the rest of this codebase's
	// CLIs: 0-1 errors only, 2 warn, 3 default (info), 4-5 debug. See
	// log.LevelFromVerbosity.
	Verbosity int

	// LogFormat selects the diagnostic logger's rendering: "json" (default),
	// "text" or "color". See log.NewWithFormat.
	LogFormat string

	Stats bool
	Graph bool
	JSON  bool
}

// DefaultConfig returns a Config with the same defaults eofcheck runs
// with when no flags are given.
func DefaultConfig() Config {
	return Config{
		Verbosity: 3,
		LogFormat: log.FormatJSON,
	}
}

// Validate rejects configurations that cannot be acted on, mirroring the
// fail-fast check main() runs before doing any work.
func (c *Config) Validate() error {
	if c.Verbosity < 0 || c.Verbosity > 5 {
		return fmt.Errorf("verbosity must be between 0 and 5, got %d", c.Verbosity)
	}
	if c.Graph && c.JSON {
		return fmt.Errorf("--graph and --json are mutually exclusive")
	}
	switch c.LogFormat {
	case log.FormatJSON, log.FormatText, log.FormatColor:
	default:
		return fmt.Errorf("log-format must be one of json, text, color; got %q", c.LogFormat)
	}
	return nil
}
