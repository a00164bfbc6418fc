package vm

import "fmt"

// Stats holds structural diagnostics for an already-validated EOF
// container. It exists for the advisory surface §7 invites ("worth
// exposing as structured diagnostics in a rewrite") — none of these
// fields affect the accept/reject verdict.
type Stats struct {
	NumCodeSections int
	CodeSectionSize []int
	TotalCodeBytes  int
	TotalDataBytes  int
	ImmediateBytes  int
	JumpCount       int
	OpcodeFrequency map[OpCode]int
}

// CollectStats re-validates code and, on success, walks each code
// section once more to tally opcode frequency, immediate-byte counts and
// jump counts. It returns an error (not a bool) since a caller asking
// for stats on rejected input made a usage mistake, not an expected
// branch.
func CollectStats(code []byte, isDefined OpcodeDefinedFunc) (*Stats, error) {
	h, err := ValidateDetailed(code, isDefined)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("eof: CollectStats requires an EOF container, got legacy code")
	}

	st := &Stats{
		NumCodeSections: int(h.NumCodeSections),
		TotalDataBytes:  int(h.DataSectionSize),
		OpcodeFrequency: make(map[OpCode]int),
	}

	allowed := allowedOpcodes(isDefined)
	secStart := h.Length + int(h.NumCodeSections)*TypeEntrySize
	for _, size := range h.CodeSectionSizes {
		section := code[secStart : secStart+int(size)]
		st.CodeSectionSize = append(st.CodeSectionSize, len(section))
		st.TotalCodeBytes += len(section)

		scan, verr := scanSection(section, allowed)
		if verr != nil {
			// Already validated by ValidateDetailed above; a mismatch here
			// would mean scanSection is non-deterministic.
			return nil, verr
		}
		st.ImmediateBytes += int(scan.Immediates.Count())
		st.JumpCount += len(scan.Edges)
		for i := 0; i < len(section); i++ {
			if scan.Immediates.Test(uint(i)) {
				continue
			}
			st.OpcodeFrequency[OpCode(section[i])]++
		}

		secStart += int(size)
	}

	return st, nil
}
