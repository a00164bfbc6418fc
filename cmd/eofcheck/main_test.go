package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func minimalEOFHex() string {
	// Magic, version, header (1 code section, no data), one type entry,
	// one code section containing only STOP.
	return "ef0001" + "010004" + "020001" + "0001" + "030000" + "00" + "00000000" + "00"
}

func TestRun_AcceptsMinimalEOF(t *testing.T) {
	var out bytes.Buffer
	code := minimalEOFHex()
	stdin := strings.NewReader(code)
	exit := run([]string{}, stdin, &out)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0; output: %s", exit, out.String())
	}
	if !strings.HasPrefix(out.String(), "ACCEPT") {
		t.Errorf("output = %q, want ACCEPT prefix", out.String())
	}
}

func TestRun_RejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	stdin := strings.NewReader("ef0099")
	exit := run([]string{}, stdin, &out)
	if exit != 1 {
		t.Fatalf("exit = %d, want 1", exit)
	}
	if !strings.HasPrefix(out.String(), "REJECT") {
		t.Errorf("output = %q, want REJECT prefix", out.String())
	}
}

func TestRun_CodeFlagTakesPrecedence(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-code", "0x" + minimalEOFHex()}, strings.NewReader("garbage"), &out)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0; output: %s", exit, out.String())
	}
}

func TestRun_JSONOutput(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-code", minimalEOFHex(), "-json"}, nil, &out)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0; output: %s", exit, out.String())
	}
	if !strings.Contains(out.String(), `"accepted": true`) {
		t.Errorf("output = %q, want accepted:true", out.String())
	}
}

func TestRun_VersionFlag(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-version"}, nil, &out)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0", exit)
	}
	if !strings.Contains(out.String(), "eofcheck") {
		t.Errorf("output = %q, want version banner", out.String())
	}
}

func TestRun_InvalidVerbosityRejected(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-code", minimalEOFHex(), "-verbosity", "9"}, nil, &out)
	if exit != 1 {
		t.Fatalf("exit = %d, want 1 for out-of-range verbosity", exit)
	}
}

func TestRun_GraphAndJSONMutuallyExclusive(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-code", minimalEOFHex(), "-graph", "-json"}, nil, &out)
	if exit != 1 {
		t.Fatalf("exit = %d, want 1 for conflicting flags", exit)
	}
}

func TestRun_LogFormatText(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-code", minimalEOFHex(), "-log-format", "text", "-verbosity", "5"}, nil, &out)
	if exit != 0 {
		t.Fatalf("exit = %d, want 0; output: %s", exit, out.String())
	}
}

func TestRun_InvalidLogFormatRejected(t *testing.T) {
	var out bytes.Buffer
	exit := run([]string{"-code", minimalEOFHex(), "-log-format", "xml"}, nil, &out)
	if exit != 1 {
		t.Fatalf("exit = %d, want 1 for unrecognised log format", exit)
	}
}

func TestMinimalEOFHexDecodes(t *testing.T) {
	if _, err := hex.DecodeString(minimalEOFHex()); err != nil {
		t.Fatalf("test fixture is not valid hex: %v", err)
	}
}
