package vm

import "testing"

func TestParseTypeSection_Basic(t *testing.T) {
	code := buildEOF(
		[]TypeEntry{
			{Inputs: 2, Outputs: 1, MaxStack: 10},
			{Inputs: 0, Outputs: 0, MaxStack: 0},
		},
		[][]byte{{byte(STOP)}, {byte(STOP)}},
		nil,
	)
	h, verr := parseHeader(code)
	if verr != nil {
		t.Fatalf("parseHeader failed: %v", verr)
	}
	entries, verr := parseTypeSection(code, h)
	if verr != nil {
		t.Fatalf("parseTypeSection failed: %v", verr)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Inputs != 2 || entries[0].Outputs != 1 || entries[0].MaxStack != 10 {
		t.Errorf("entries[0] = %+v, want {2 1 10}", entries[0])
	}
}

func TestParseTypeSection_FirstEntryUnconstrained(t *testing.T) {
	// Some EOF drafts require the first type entry to be 0 inputs / a
	// non-returning signature. This validator does not enforce that; a
	// first entry with inputs and a real output count is still accepted.
	code := buildEOF(
		[]TypeEntry{{Inputs: 3, Outputs: 2, MaxStack: 5}},
		[][]byte{{byte(STOP)}},
		nil,
	)
	if !Validate(code, DefaultOpcodeDefined) {
		t.Error("a non-zero-input, returning first type entry must still be accepted")
	}
}

func TestParseTypeSection_InputsOverflow(t *testing.T) {
	code := buildEOF(
		[]TypeEntry{{Inputs: 0x80, Outputs: 0, MaxStack: 0}},
		[][]byte{{byte(STOP)}},
		nil,
	)
	if Validate(code, DefaultOpcodeDefined) {
		t.Error("type entry with inputs above 0x7F must be rejected")
	}
}

func TestParseTypeSection_OutputsOverflow(t *testing.T) {
	code := buildEOF(
		[]TypeEntry{{Inputs: 0, Outputs: 0x80, MaxStack: 0}},
		[][]byte{{byte(STOP)}},
		nil,
	)
	if Validate(code, DefaultOpcodeDefined) {
		t.Error("type entry with outputs above 0x7F must be rejected")
	}
}
