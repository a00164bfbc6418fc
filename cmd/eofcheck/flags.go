package main

import "flag"

// newFlagSet creates a flag.FlagSet that binds all CLI flags to the
// given Config. The FlagSet uses ContinueOnError so callers control the
// error handling behavior.
func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("eofcheck", flag.ContinueOnError)
	fs.StringVar(&cfg.InputPath, "file", cfg.InputPath, "path to a file containing hex-encoded bytecode")
	fs.StringVar(&cfg.Hex, "code", cfg.Hex, "hex-encoded bytecode, takes precedence over -file and stdin")
	fs.IntVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "log level 0-5 (0-1=error, 2=warn, 3=info, 4-5=debug)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "diagnostic log rendering: json, text or color")
	fs.BoolVar(&cfg.Stats, "stats", cfg.Stats, "print structural diagnostics for accepted containers")
	fs.BoolVar(&cfg.Graph, "graph", cfg.Graph, "print the jump graph (Graphviz DOT) for accepted containers")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "print the verdict as JSON instead of plain text")
	return fs
}
