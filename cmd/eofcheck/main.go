// Command eofcheck validates EVM Object Format (EOF) v1 containers.
//
// Usage:
//
//	eofcheck -code 0xef0001...
//	eofcheck -file container.hex
//	cat container.hex | eofcheck
//
// Flags:
//
//	-code        Hex-encoded bytecode, takes precedence over -file and stdin
//	-file        Path to a file containing hex-encoded bytecode
//	-verbosity   Log level 0-5 (default: 3)
//	-log-format  Diagnostic log rendering: json, text or color (default: json)
//	-stats       Print structural diagnostics for accepted containers
//	-graph       Print the jump graph (Graphviz DOT) for accepted containers
//	-json        Print the verdict as JSON instead of plain text
//	-version     Print version and exit
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eth2030/eofcheck/core/vm"
	"github.com/eth2030/eofcheck/log"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments and explicit I/O streams so it can be tested in isolation.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	cfg := DefaultConfig()
	fs := newFlagSet(&cfg)
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	if *showVersion {
		fmt.Fprintf(stdout, "eofcheck %s (commit %s)\n", version, commit)
		return 0
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return 1
	}

	logger := log.NewWithFormat(log.LevelFromVerbosity(cfg.Verbosity), cfg.LogFormat)
	logger.Debug("eofcheck starting", "version", version, "verbosity", cfg.Verbosity)

	code, err := loadCode(cfg, stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("decoded input", "bytes", len(code))

	h, verr := vm.ValidateDetailed(code, vm.DefaultOpcodeDefined)
	accepted := verr == nil

	if cfg.JSON {
		return emitJSON(stdout, code, h, verr)
	}
	emitText(stdout, logger, code, h, verr)

	if accepted && h != nil {
		if cfg.Stats {
			printStats(stdout, code)
		}
		if cfg.Graph {
			printGraph(stdout, code)
		}
	}

	if !accepted {
		return 1
	}
	return 0
}

// loadCode resolves bytecode from -code, -file or stdin, in that order
// of precedence, and decodes it from hex.
func loadCode(cfg Config, stdin io.Reader) ([]byte, error) {
	var raw string
	switch {
	case cfg.Hex != "":
		raw = cfg.Hex
	case cfg.InputPath != "":
		b, err := os.ReadFile(cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", cfg.InputPath, err)
		}
		raw = string(b)
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		raw = string(b)
	}

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "0x")
	raw = strings.TrimPrefix(raw, "0X")
	code, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding hex input: %w", err)
	}
	return code, nil
}

func emitText(stdout io.Writer, logger *log.Logger, code []byte, h *vm.Header, verr error) {
	if verr != nil {
		fmt.Fprintf(stdout, "REJECT: %v\n", verr)
		return
	}
	if h == nil {
		fmt.Fprintln(stdout, "ACCEPT: legacy code (no EOF magic), passed through unvalidated")
		return
	}
	fmt.Fprintf(stdout, "ACCEPT: EOF version %d, %d code section(s), %d data byte(s)\n",
		vm.Version(code), h.NumCodeSections, h.DataSectionSize)
	logger.Info("validated EOF container", "sections", h.NumCodeSections, "data_size", h.DataSectionSize)
}

// verdict is the JSON-serializable shape of a single validation result.
type verdict struct {
	Accepted bool   `json:"accepted"`
	IsEOF    bool   `json:"is_eof"`
	Version  byte   `json:"version,omitempty"`
	Sections int    `json:"code_sections,omitempty"`
	DataSize int    `json:"data_size,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func emitJSON(stdout io.Writer, code []byte, h *vm.Header, verr error) int {
	v := verdict{
		Accepted: verr == nil,
		IsEOF:    vm.IsEOF(code),
	}
	if verr != nil {
		v.Reason = verr.Error()
	}
	if h != nil {
		v.Version = h.Version
		v.Sections = int(h.NumCodeSections)
		v.DataSize = int(h.DataSectionSize)
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if !v.Accepted {
		return 1
	}
	return 0
}

func printStats(stdout io.Writer, code []byte) {
	st, err := vm.CollectStats(code, vm.DefaultOpcodeDefined)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stats: %v\n", err)
		return
	}
	fmt.Fprintf(stdout, "--- stats ---\n")
	fmt.Fprintf(stdout, "code sections:   %v\n", st.CodeSectionSize)
	fmt.Fprintf(stdout, "total code:      %d bytes\n", st.TotalCodeBytes)
	fmt.Fprintf(stdout, "total data:      %d bytes\n", st.TotalDataBytes)
	fmt.Fprintf(stdout, "immediate bytes: %d\n", st.ImmediateBytes)
	fmt.Fprintf(stdout, "jumps:           %d\n", st.JumpCount)
}

func printGraph(stdout io.Writer, code []byte) {
	dotSrc, err := vm.JumpGraph(code, vm.DefaultOpcodeDefined)
	if err != nil {
		fmt.Fprintf(os.Stderr, "graph: %v\n", err)
		return
	}
	fmt.Fprintf(stdout, "--- jump graph ---\n%s", dotSrc)
}
