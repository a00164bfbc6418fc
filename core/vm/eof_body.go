package vm

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
)

// newBitset allocates a dense bitmap over byte offsets within a single
// code section, sized up front to avoid the growth path entirely — the
// section length is always known before the opcode pass starts. It
// backs both the immediates set and the jump-targets set (§9 design
// note: "two bitmaps of length len(code) — O(n) memory, O(1)
// operations").
func newBitset(n int) *bitset.BitSet {
	return bitset.New(uint(n))
}

// jumpEdge is one relative-jump edge discovered during the opcode pass:
// the offset of the jump instruction itself and the absolute offset it
// targets within the same section. Diagnostics (CollectStats, JumpGraph)
// consume these; the validator itself only needs the target side.
type jumpEdge struct {
	From int
	To   int
}

// sectionScan is the result of one opcode pass over a code section:
// the two bitmaps from the component design plus the raw edge list the
// jump-into-immediate check consumes. Offsets are local to the section.
type sectionScan struct {
	Immediates  *bitset.BitSet
	JumpTargets *bitset.BitSet
	Edges       []jumpEdge
}

// validateBody implements phase B. It first checks the declared body
// length against the actual remainder (the layout check), then runs the
// per-section opcode pass described in §4.4.
//
// Per the Open Question resolution recorded in DESIGN.md, each code
// section is scanned independently from its own declared start for its
// own declared length: the terminator rule and the jump/immediate
// cross-check both apply within a single section, and a relative jump
// may never target a different section.
func validateBody(code []byte, h *Header, isDefined OpcodeDefinedFunc) *ValidationError {
	bodyStart := h.Length
	typeBytes := int(h.NumCodeSections) * TypeEntrySize
	codeTotal := h.CodeTotal()

	declared := typeBytes + codeTotal + int(h.DataSectionSize)
	actual := len(code) - bodyStart
	if declared != actual {
		return fail(ErrLengthMismatch, bodyStart)
	}

	allowed := allowedOpcodes(isDefined)

	secStart := bodyStart + typeBytes
	for _, size := range h.CodeSectionSizes {
		section := code[secStart : secStart+int(size)]
		if _, err := scanSection(section, allowed); err != nil {
			err.Offset += secStart
			return err
		}
		secStart += int(size)
	}

	return nil
}

// scanSection runs the opcode pass over a single code section: every
// byte not consumed as an immediate must be a legal opcode (SELFDESTRUCT
// excepted when it is the section's final byte), PUSH and relative-jump
// immediates must not run past the section end, every relative-jump
// target must land inside the section and outside any immediate, and
// the section's last decoded opcode must be a terminating opcode ending
// exactly at the section boundary. Offsets on the returned error are
// local to section; the caller translates them to container-absolute
// offsets.
//
// On success it also returns the section's scan so that callers wanting
// more than a verdict — CollectStats, JumpGraph — don't have to re-walk
// the bytecode themselves.
func scanSection(section []byte, allowed OpcodeSet) (*sectionScan, *ValidationError) {
	n := len(section)
	scan := &sectionScan{
		Immediates:  newBitset(n),
		JumpTargets: newBitset(n),
	}

	p := 0
	lastOpStart := -1
	for p < n {
		op := OpCode(section[p])
		opStart := p
		// SELFDESTRUCT is removed from the in-body legal set but permitted
		// as the terminating byte of a section (§4.4/§9 asymmetry): accept
		// it here only when it is the section's final byte, and let the
		// terminator check below enforce that it actually ends the section
		// rather than being landed on mid-stream by some other opcode.
		if !allowed.Has(op) && !(op == SELFDESTRUCT && opStart == n-1) {
			return nil, fail(ErrUndefinedOpcode, p)
		}
		p++
		lastOpStart = opStart

		switch {
		case op >= PUSH1 && op <= PUSH32:
			operandLen := int(op) - int(PUSH1) + 1
			if p+operandLen > n {
				return nil, fail(ErrImmediateOverrun, opStart)
			}
			for i := p; i < p+operandLen; i++ {
				scan.Immediates.Set(uint(i))
			}
			p += operandLen

		case op == RJUMP || op == RJUMPI:
			if p+2 > n {
				return nil, fail(ErrImmediateOverrun, opStart)
			}
			scan.Immediates.Set(uint(p))
			scan.Immediates.Set(uint(p + 1))
			offset := int(int16(binary.BigEndian.Uint16(section[p : p+2])))
			target := offset + p + 2
			if target < 0 || target >= n {
				return nil, fail(ErrJumpOutOfBounds, opStart)
			}
			scan.JumpTargets.Set(uint(target))
			scan.Edges = append(scan.Edges, jumpEdge{From: opStart, To: target})
			p += 2

		case op == RJUMPV:
			if p >= n {
				return nil, fail(ErrImmediateOverrun, opStart)
			}
			tableSize := int(section[p])
			if tableSize == 0 {
				return nil, fail(ErrEmptyJumpTable, opStart)
			}
			tableLen := 2 * tableSize
			if p+1+tableLen > n {
				return nil, fail(ErrImmediateOverrun, opStart)
			}
			scan.Immediates.Set(uint(p))
			afterTable := p + 1 + tableLen
			for i := 0; i < tableSize; i++ {
				entryPos := p + 1 + 2*i
				scan.Immediates.Set(uint(entryPos))
				scan.Immediates.Set(uint(entryPos + 1))
				offset := int(int16(binary.BigEndian.Uint16(section[entryPos : entryPos+2])))
				target := offset + afterTable
				if target < 0 || target >= n {
					return nil, fail(ErrJumpOutOfBounds, opStart)
				}
				scan.JumpTargets.Set(uint(target))
				scan.Edges = append(scan.Edges, jumpEdge{From: opStart, To: target})
			}
			p = afterTable

		default:
			// Any other opcode consumes only its single byte.
		}
	}

	// The terminator rule applies to the last decoded *opcode*, not merely
	// the last byte value: a section ending mid-immediate (e.g. a PUSH
	// operand whose value happens to equal a terminating opcode) must be
	// rejected even though section[n-1] looks terminator-shaped.
	if n == 0 || lastOpStart != n-1 || !terminatingOpcodes.Has(OpCode(section[lastOpStart])) {
		return nil, fail(ErrBadTerminatorOpcode, n-1)
	}

	for _, e := range scan.Edges {
		if scan.Immediates.Test(uint(e.To)) {
			return nil, fail(ErrJumpIntoImmediate, e.To)
		}
	}

	return scan, nil
}
